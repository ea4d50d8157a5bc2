package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"partscatalog/mailer"
	"partscatalog/models"
	"partscatalog/repository"
)

// Notifier hands a notification to the async mail worker. A nil
// notifier disables notifications without affecting inquiry handling.
type Notifier interface {
	Enqueue(msg mailer.Message)
}

type InquiryController struct {
	repo     repository.InquiryRepository
	notifier Notifier
	logger   zerolog.Logger
}

func NewInquiryController(repo repository.InquiryRepository, notifier Notifier, logger zerolog.Logger) *InquiryController {
	return &InquiryController{repo: repo, notifier: notifier, logger: logger}
}

// Create persists the inquiry, then hands the operator notification to
// the mail worker. The response is 201 on successful persistence
// regardless of the notification outcome.
func (ic *InquiryController) Create(c *gin.Context) {
	var inquiry models.Inquiry
	if err := c.ShouldBindJSON(&inquiry); err != nil {
		respondError(c, http.StatusBadRequest, "All fields are required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), queryTimeout)
	defer cancel()

	if err := ic.repo.Insert(ctx, &inquiry); err != nil {
		if errors.Is(err, repository.ErrValidation) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		ic.logger.Error().Err(err).Msg("failed to create inquiry")
		respondInternal(c)
		return
	}

	if ic.notifier != nil {
		ic.notifier.Enqueue(mailer.InquiryNotification(&inquiry))
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Inquiry sent successfully",
	})
}

func (ic *InquiryController) GetAll(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), queryTimeout)
	defer cancel()

	inquiries, err := ic.repo.FindAll(ctx)
	if err != nil {
		ic.logger.Error().Err(err).Msg("failed to list inquiries")
		respondInternal(c)
		return
	}

	c.JSON(http.StatusOK, inquiries)
}
