package mailer

import (
	"sync"

	"github.com/rs/zerolog"
)

// Dispatcher decouples notification delivery from the request/response
// lifecycle. Enqueue never blocks: when the queue is full the message
// is dropped and logged. Send failures are logged and discarded; they
// never reach the caller.
type Dispatcher struct {
	sender Sender
	logger zerolog.Logger
	tasks  chan Message

	closeOnce sync.Once
	done      chan struct{}
}

func NewDispatcher(sender Sender, logger zerolog.Logger, buffer int) *Dispatcher {
	if buffer < 1 {
		buffer = 16
	}
	d := &Dispatcher{
		sender: sender,
		logger: logger,
		tasks:  make(chan Message, buffer),
		done:   make(chan struct{}),
	}
	go d.run()
	return d
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for msg := range d.tasks {
		if err := d.sender.Send(msg); err != nil {
			d.logger.Error().Err(err).Str("subject", msg.Subject).Msg("error sending email")
			continue
		}
		d.logger.Info().Str("subject", msg.Subject).Msg("email sent")
	}
}

// Enqueue hands a message to the worker without blocking.
func (d *Dispatcher) Enqueue(msg Message) {
	select {
	case d.tasks <- msg:
	default:
		d.logger.Warn().Str("subject", msg.Subject).Msg("mail queue full, notification dropped")
	}
}

// Close drains queued messages and stops the worker.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.tasks)
	})
	<-d.done
}
