package booking

import "fmt"

// FormValidationError is a field-level, recoverable failure: the user
// corrects the named field and resubmits the same stage.
type FormValidationError struct {
	Field   string
	Message string
}

func (e *FormValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// GuardViolation blocks a stage advance. The message names the unmet
// condition.
type GuardViolation struct {
	Stage   Stage
	Message string
}

func (e *GuardViolation) Error() string {
	return fmt.Sprintf("stage %s: %s", e.Stage, e.Message)
}

// NotFoundError means a selection referenced an offer that is not in
// the current result set. The selection is terminal; the user must
// re-search.
type NotFoundError struct {
	OfferID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("flight not found: %s", e.OfferID)
}
