// Package contact handles contact-form submissions: field validation,
// a simulated processing delay, and reference-ID issuance.
package contact

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/smartwings/booking-system/internal/validate"
)

// Submission is one contact-form payload.
type Submission struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Subject    string `json:"subject"`
	BookingRef string `json:"bookingRef,omitempty"`
	Message    string `json:"message"`
	Newsletter bool   `json:"newsletter"`
}

// ValidationError names the failing field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Service accepts submissions. There is no backing inbox; accepted
// submissions are logged with their reference ID.
type Service struct {
	log     logrus.FieldLogger
	latency time.Duration
}

// NewService creates a contact service. latency simulates the submit
// round trip; zero disables it.
func NewService(log logrus.FieldLogger, latency time.Duration) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{log: log, latency: latency}
}

// Submit validates the form and returns a reference ID of the form
// SW-XXXXXXXX.
func (s *Service) Submit(ctx context.Context, sub Submission) (string, error) {
	if err := validateSubmission(sub); err != nil {
		return "", err
	}

	if s.latency > 0 {
		timer := time.NewTimer(s.latency)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	ref := referenceID()
	s.log.WithFields(logrus.Fields{
		"reference": ref,
		"email":     sub.Email,
		"subject":   sub.Subject,
	}).Info("contact submission received")

	return ref, nil
}

func validateSubmission(sub Submission) error {
	if !validate.IsValidName(sub.FirstName) {
		return &ValidationError{Field: "firstName", Message: "name must be at least 2 letters"}
	}
	if !validate.IsValidName(sub.LastName) {
		return &ValidationError{Field: "lastName", Message: "name must be at least 2 letters"}
	}
	if !validate.IsValidEmail(sub.Email) {
		return &ValidationError{Field: "email", Message: "please enter a valid email address"}
	}
	if sub.Phone != "" && !validate.IsValidPhone(sub.Phone) {
		return &ValidationError{Field: "phone", Message: "please enter a valid phone number"}
	}
	if !validate.IsRequired(sub.Subject) {
		return &ValidationError{Field: "subject", Message: "subject is required"}
	}
	if !validate.IsRequired(sub.Message) {
		return &ValidationError{Field: "message", Message: "message is required"}
	}
	return nil
}

// referenceID builds a short uppercase reference with the carrier
// prefix, e.g. SW-1A2B3C4D.
func referenceID() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return "SW-" + raw[:8]
}
