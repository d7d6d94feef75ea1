package contact

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSubmission() Submission {
	return Submission{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Phone:     "+1 (555) 123-4567",
		Subject:   "Baggage question",
		Message:   "How many bags can I check?",
	}
}

func TestService_Submit(t *testing.T) {
	logger, hook := test.NewNullLogger()
	svc := NewService(logger, 0)

	ref, err := svc.Submit(context.Background(), validSubmission())
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^SW-[0-9A-F]{8}$`), ref)

	require.Len(t, hook.Entries, 1)
	assert.Equal(t, ref, hook.LastEntry().Data["reference"])
}

func TestService_SubmitValidation(t *testing.T) {
	svc := NewService(nil, 0)

	tests := []struct {
		name      string
		mutate    func(*Submission)
		wantField string
	}{
		{"short first name", func(s *Submission) { s.FirstName = "J" }, "firstName"},
		{"bad email", func(s *Submission) { s.Email = "jane@example" }, "email"},
		{"bad phone", func(s *Submission) { s.Phone = "123" }, "phone"},
		{"missing subject", func(s *Submission) { s.Subject = " " }, "subject"},
		{"missing message", func(s *Submission) { s.Message = "" }, "message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := validSubmission()
			tt.mutate(&sub)

			_, err := svc.Submit(context.Background(), sub)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestService_SubmitOptionalPhone(t *testing.T) {
	svc := NewService(nil, 0)
	sub := validSubmission()
	sub.Phone = ""

	_, err := svc.Submit(context.Background(), sub)
	assert.NoError(t, err)
}

func TestService_SubmitCancelledDuringDelay(t *testing.T) {
	svc := NewService(nil, 5*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := svc.Submit(ctx, validSubmission())
		done <- err
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled submission did not return promptly")
	}
}
