package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"

	"partscatalog/models"
)

// Message is one outbound notification.
type Message struct {
	Subject string
	Body    string
}

// Sender delivers a message. Delivery is best-effort; no confirmation
// flows back to the request that triggered it.
type Sender interface {
	Send(msg Message) error
}

// SMTPSender delivers messages over plain-auth SMTP.
type SMTPSender struct {
	addr string
	host string
	user string
	pass string
	from string
	to   string
}

func NewSMTPSender(addr, host, user, pass, from, to string) *SMTPSender {
	return &SMTPSender{addr: addr, host: host, user: user, pass: pass, from: from, to: to}
}

func (s *SMTPSender) Send(msg Message) error {
	e := email.NewEmail()
	e.From = s.from
	e.To = []string{s.to}
	e.Subject = msg.Subject
	e.Text = []byte(msg.Body)

	var auth smtp.Auth
	if s.user != "" {
		auth = smtp.PlainAuth("", s.user, s.pass, s.host)
	}
	return e.Send(s.addr, auth)
}

// InquiryNotification renders the operator notification for a newly
// created inquiry.
func InquiryNotification(inq *models.Inquiry) Message {
	return Message{
		Subject: "New Inquiry",
		Body: fmt.Sprintf(
			"New inquiry received:\n\nProduct Name: %s\nName: %s\nEmail: %s\nNumber: %d\nMessage: %s",
			inq.ProductName, inq.Name, inq.Email, inq.Number, inq.Message,
		),
	}
}
