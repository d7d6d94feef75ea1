package ticket

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/smartwings/booking-system/internal/models"
	"github.com/smartwings/booking-system/internal/validate"
)

var ErrInvalidEmail = errors.New("invalid email address")

// EmailSender dispatches the e-ticket by email. No mail provider is
// wired in this system; the dispatch is logged so the boundary failure
// is never silently swallowed.
type EmailSender struct {
	log logrus.FieldLogger
}

// NewEmailSender creates a sender logging to log.
func NewEmailSender(log logrus.FieldLogger) *EmailSender {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &EmailSender{log: log}
}

// Send validates the address and records the dispatch for a confirmed
// booking.
func (s *EmailSender) Send(ctx context.Context, email string, record *models.BookingRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !validate.IsValidEmail(email) {
		return ErrInvalidEmail
	}
	if !record.Confirmed() {
		return ErrNotConfirmed
	}

	s.log.WithFields(logrus.Fields{
		"email":        email,
		"confirmation": record.Confirmation.Code,
		"flight":       record.Confirmation.FlightNumber,
	}).Info("e-ticket email dispatched")

	return nil
}
