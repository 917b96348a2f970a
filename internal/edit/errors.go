package edit

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput matches any *ValidationError.
	ErrInvalidInput = errors.New("invalid input")
	// ErrActive is returned by Open while another transaction holds the slot.
	ErrActive = errors.New("an edit is already in progress")
	// ErrInFlight is returned when a save is already running.
	ErrInFlight = errors.New("save in progress")
	// ErrNotEditable is returned when there is no open transaction to change.
	ErrNotEditable = errors.New("no open edit")
)

// Messages shown inline in the edit form.
const (
	MsgFillAllFields  = "Please fill in all fields"
	MsgInvalidCountry = "Please select a valid country"
	MsgSaveFailed     = "Failed to save changes. Please try again."
)

// ValidationError is a local, pre-submission failure. It never reaches the network.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// SaveError wraps the remote failure of a submitted transaction.
type SaveError struct {
	RecordID string
	Err      error
}

// Error implements the error interface
func (e *SaveError) Error() string {
	return fmt.Sprintf("save record %s: %v", e.RecordID, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *SaveError) Unwrap() error {
	return e.Err
}
