// Package edit holds the single-record edit transaction: open a record,
// change its name and country, validate, submit once, and either close on
// success or return to the form with the typed input intact.
package edit

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/gravitrone/taxdesk/internal/api"
)

// State is the lifecycle position of the transaction slot.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateSubmitting:
		return "submitting"
	default:
		return "closed"
	}
}

// Transaction is the working copy of one record being edited.
type Transaction struct {
	Snapshot api.Record
	Name     string
	Country  string
	// Error is the inline message for the form, empty when there is none.
	Error string
}

// Submission is what BeginSubmit hands to the caller to send.
type Submission struct {
	RecordID string
	Input    api.UpdateRecordInput
}

// Updater performs the remote replace. *api.Client satisfies it.
type Updater interface {
	UpdateRecord(ctx context.Context, id string, input api.UpdateRecordInput) (*api.Record, error)
}

// Controller owns the one transaction slot. The zero value is Closed.
// It holds no pointers into shared state, so copies are independent.
type Controller struct {
	tx         Transaction
	active     bool
	submitting bool
	countries  []string
}

// State reports the current lifecycle state.
func (c *Controller) State() State {
	switch {
	case !c.active:
		return StateClosed
	case c.submitting:
		return StateSubmitting
	default:
		return StateOpen
	}
}

// Active reports whether the slot is held (Open or Submitting).
func (c *Controller) Active() bool {
	return c.active
}

// Submitting reports whether a save is in flight.
func (c *Controller) Submitting() bool {
	return c.active && c.submitting
}

// Transaction returns a copy of the current transaction.
func (c *Controller) Transaction() (Transaction, bool) {
	if !c.active {
		return Transaction{}, false
	}
	return c.tx, true
}

// Countries returns the choice set the transaction validates against.
func (c *Controller) Countries() []string {
	return slices.Clone(c.countries)
}

// Open starts editing rec. Working fields start at the record's values.
func (c *Controller) Open(rec api.Record, countries []api.Country) error {
	if c.active {
		return ErrActive
	}
	c.tx = Transaction{
		Snapshot: rec,
		Name:     rec.Name,
		Country:  rec.Country,
	}
	c.active = true
	c.submitting = false
	c.countries = api.CountryNames(countries)
	return nil
}

// SetName changes the working name and clears any stale error.
func (c *Controller) SetName(name string) error {
	if err := c.editable(); err != nil {
		return err
	}
	c.tx.Name = name
	c.tx.Error = ""
	return nil
}

// SetCountry changes the working country and clears any stale error.
func (c *Controller) SetCountry(country string) error {
	if err := c.editable(); err != nil {
		return err
	}
	c.tx.Country = country
	c.tx.Error = ""
	return nil
}

// CycleCountry moves the working country delta steps through the choice
// set, wrapping at either end. An unknown current value starts from the
// first (delta > 0) or last (delta < 0) entry.
func (c *Controller) CycleCountry(delta int) error {
	if err := c.editable(); err != nil {
		return err
	}
	n := len(c.countries)
	if n == 0 || delta == 0 {
		return nil
	}
	idx := slices.Index(c.countries, c.tx.Country)
	switch {
	case idx < 0 && delta > 0:
		idx = 0
	case idx < 0:
		idx = n - 1
	default:
		idx = ((idx+delta)%n + n) % n
	}
	return c.SetCountry(c.countries[idx])
}

// Cancel discards the transaction. Not allowed while a save is in flight.
func (c *Controller) Cancel() error {
	if !c.active {
		return ErrNotEditable
	}
	if c.submitting {
		return ErrInFlight
	}
	c.close()
	return nil
}

// BeginSubmit moves Open to Submitting when the working fields are valid
// and returns the request to send. A validation failure stays Open with
// the message set. A second call while Submitting has no effect.
func (c *Controller) BeginSubmit() (Submission, error) {
	if !c.active {
		return Submission{}, ErrNotEditable
	}
	if c.submitting {
		return Submission{}, ErrInFlight
	}
	if err := validate(c.tx.Name, c.tx.Country, c.countries); err != nil {
		if ve, ok := err.(*ValidationError); ok {
			c.tx.Error = ve.Message
		}
		return Submission{}, err
	}
	c.tx.Error = ""
	c.submitting = true
	return Submission{
		RecordID: c.tx.Snapshot.ID,
		Input: api.UpdateRecordInput{
			Name:    c.tx.Name,
			Country: c.tx.Country,
		},
	}, nil
}

// Resolve finishes a submission. On success the transaction closes and the
// server's record is returned for reconciliation. On failure it returns to
// Open with a generic message and the working fields untouched.
func (c *Controller) Resolve(updated *api.Record, err error) (api.Record, error) {
	if !c.active || !c.submitting {
		return api.Record{}, ErrNotEditable
	}
	id := c.tx.Snapshot.ID
	if err == nil && updated == nil {
		err = fmt.Errorf("empty response")
	}
	if err == nil && updated.ID != id {
		err = fmt.Errorf("response is for record %q", updated.ID)
	}
	if err != nil {
		c.submitting = false
		c.tx.Error = MsgSaveFailed
		return api.Record{}, &SaveError{RecordID: id, Err: err}
	}
	c.close()
	return *updated, nil
}

// Submit runs BeginSubmit, the remote update and Resolve in one call.
func (c *Controller) Submit(ctx context.Context, u Updater) (api.Record, error) {
	sub, err := c.BeginSubmit()
	if err != nil {
		return api.Record{}, err
	}
	updated, err := u.UpdateRecord(ctx, sub.RecordID, sub.Input)
	return c.Resolve(updated, err)
}

func (c *Controller) close() {
	c.tx = Transaction{}
	c.active = false
	c.submitting = false
	c.countries = nil
}

func (c *Controller) editable() error {
	if !c.active {
		return ErrNotEditable
	}
	if c.submitting {
		return ErrInFlight
	}
	return nil
}

func validate(name, country string, countries []string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Message: MsgFillAllFields}
	}
	if country == "" {
		return &ValidationError{Field: "country", Message: MsgFillAllFields}
	}
	if !slices.Contains(countries, country) {
		return &ValidationError{Field: "country", Message: MsgInvalidCountry}
	}
	return nil
}
