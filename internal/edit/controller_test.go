package edit

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/taxdesk/internal/api"
)

var testCountries = []api.Country{
	{ID: "1", Name: "US"},
	{ID: "2", Name: "CA"},
	{ID: "3", Name: "DE"},
}

var alice = api.Record{ID: "1", Name: "Alice", Country: "US"}

type fakeUpdater struct {
	calls  atomic.Int32
	result *api.Record
	err    error
	input  api.UpdateRecordInput
}

func (f *fakeUpdater) UpdateRecord(_ context.Context, id string, input api.UpdateRecordInput) (*api.Record, error) {
	f.calls.Add(1)
	f.input = input
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &api.Record{ID: id, Name: input.Name, Country: input.Country}, nil
}

func openController(t *testing.T) *Controller {
	t.Helper()
	var c Controller
	require.NoError(t, c.Open(alice, testCountries))
	return &c
}

func TestZeroControllerIsClosed(t *testing.T) {
	var c Controller
	assert.Equal(t, StateClosed, c.State())
	assert.False(t, c.Active())
	_, ok := c.Transaction()
	assert.False(t, ok)
	assert.ErrorIs(t, c.Cancel(), ErrNotEditable)
	assert.ErrorIs(t, c.SetName("x"), ErrNotEditable)
	_, err := c.BeginSubmit()
	assert.ErrorIs(t, err, ErrNotEditable)
	_, err = c.Resolve(&alice, nil)
	assert.ErrorIs(t, err, ErrNotEditable)
}

func TestOpenInitializesWorkingFields(t *testing.T) {
	c := openController(t)
	assert.Equal(t, StateOpen, c.State())

	tx, ok := c.Transaction()
	require.True(t, ok)
	assert.Equal(t, alice, tx.Snapshot)
	assert.Equal(t, "Alice", tx.Name)
	assert.Equal(t, "US", tx.Country)
	assert.Empty(t, tx.Error)
	assert.Equal(t, []string{"US", "CA", "DE"}, c.Countries())
}

func TestOpenWhileActiveIsRejected(t *testing.T) {
	c := openController(t)
	err := c.Open(api.Record{ID: "2", Name: "Bob", Country: "CA"}, testCountries)
	assert.ErrorIs(t, err, ErrActive)

	tx, _ := c.Transaction()
	assert.Equal(t, "1", tx.Snapshot.ID)
}

func TestCancelDiscardsWorkingState(t *testing.T) {
	c := openController(t)
	require.NoError(t, c.SetName("Changed"))
	require.NoError(t, c.Cancel())
	assert.Equal(t, StateClosed, c.State())

	require.NoError(t, c.Open(alice, testCountries))
	tx, _ := c.Transaction()
	assert.Equal(t, "Alice", tx.Name)
}

func TestValidationGateEmptyName(t *testing.T) {
	for _, name := range []string{"", "   ", "\t\n"} {
		c := openController(t)
		require.NoError(t, c.SetName(name))
		u := &fakeUpdater{}

		_, err := c.Submit(context.Background(), u)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInput)

		var ve *ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, "name", ve.Field)

		assert.Equal(t, int32(0), u.calls.Load())
		assert.Equal(t, StateOpen, c.State())
		tx, _ := c.Transaction()
		assert.Equal(t, MsgFillAllFields, tx.Error)
	}
}

func TestValidationGateMissingCountry(t *testing.T) {
	c := openController(t)
	require.NoError(t, c.SetCountry(""))

	_, err := c.BeginSubmit()
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, StateOpen, c.State())
	tx, _ := c.Transaction()
	assert.Equal(t, MsgFillAllFields, tx.Error)
}

func TestValidationGateUnknownCountry(t *testing.T) {
	c := openController(t)
	require.NoError(t, c.SetCountry("Atlantis"))

	_, err := c.BeginSubmit()
	assert.ErrorIs(t, err, ErrInvalidInput)
	tx, _ := c.Transaction()
	assert.Equal(t, MsgInvalidCountry, tx.Error)

	_, err = c.BeginSubmit()
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, StateOpen, c.State())
}

func TestValidationErrorClearedOnNextEdit(t *testing.T) {
	c := openController(t)
	require.NoError(t, c.SetName(""))
	_, err := c.BeginSubmit()
	require.Error(t, err)

	require.NoError(t, c.SetName("A"))
	tx, _ := c.Transaction()
	assert.Empty(t, tx.Error)

	require.NoError(t, c.SetName(""))
	_, _ = c.BeginSubmit()
	require.NoError(t, c.CycleCountry(1))
	tx, _ = c.Transaction()
	assert.Empty(t, tx.Error)
}

func TestSubmitSuccessClosesAndReturnsServerRecord(t *testing.T) {
	c := openController(t)
	require.NoError(t, c.SetName("Alicia"))
	require.NoError(t, c.SetCountry("CA"))
	u := &fakeUpdater{result: &api.Record{ID: "1", Name: "ALICIA", Country: "CA"}}

	rec, err := c.Submit(context.Background(), u)
	require.NoError(t, err)
	assert.Equal(t, api.Record{ID: "1", Name: "ALICIA", Country: "CA"}, rec)
	assert.Equal(t, api.UpdateRecordInput{Name: "Alicia", Country: "CA"}, u.input)
	assert.Equal(t, int32(1), u.calls.Load())
	assert.Equal(t, StateClosed, c.State())
}

func TestSingleFlight(t *testing.T) {
	c := openController(t)

	sub, err := c.BeginSubmit()
	require.NoError(t, err)
	assert.Equal(t, "1", sub.RecordID)
	assert.Equal(t, StateSubmitting, c.State())
	assert.True(t, c.Submitting())

	_, err = c.BeginSubmit()
	assert.ErrorIs(t, err, ErrInFlight)
	assert.Equal(t, StateSubmitting, c.State())

	u := &fakeUpdater{}
	_, err = c.Submit(context.Background(), u)
	assert.ErrorIs(t, err, ErrInFlight)
	assert.Equal(t, int32(0), u.calls.Load())
}

func TestNoEditsOrCancelWhileSubmitting(t *testing.T) {
	c := openController(t)
	_, err := c.BeginSubmit()
	require.NoError(t, err)

	assert.ErrorIs(t, c.Cancel(), ErrInFlight)
	assert.ErrorIs(t, c.SetName("x"), ErrInFlight)
	assert.ErrorIs(t, c.SetCountry("CA"), ErrInFlight)
	assert.ErrorIs(t, c.CycleCountry(1), ErrInFlight)
	assert.ErrorIs(t, c.Open(alice, testCountries), ErrActive)
	assert.Equal(t, StateSubmitting, c.State())
}

func TestFailurePreservesInput(t *testing.T) {
	c := openController(t)
	require.NoError(t, c.SetName("Alicia"))
	require.NoError(t, c.SetCountry("DE"))
	u := &fakeUpdater{err: &api.TransportError{Method: "PUT", URL: "/taxes/1", StatusCode: 500, Message: "boom"}}

	_, err := c.Submit(context.Background(), u)
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrTransport)

	var se *SaveError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "1", se.RecordID)

	assert.Equal(t, StateOpen, c.State())
	tx, _ := c.Transaction()
	assert.Equal(t, "Alicia", tx.Name)
	assert.Equal(t, "DE", tx.Country)
	assert.Equal(t, MsgSaveFailed, tx.Error)

	// The user can retry without retyping.
	u.err = nil
	rec, err := c.Submit(context.Background(), u)
	require.NoError(t, err)
	assert.Equal(t, "Alicia", rec.Name)
	assert.Equal(t, int32(2), u.calls.Load())
}

func TestResolveRejectsMismatchedRecord(t *testing.T) {
	c := openController(t)
	_, err := c.BeginSubmit()
	require.NoError(t, err)

	_, err = c.Resolve(&api.Record{ID: "2", Name: "Bob", Country: "CA"}, nil)
	require.Error(t, err)
	assert.Equal(t, StateOpen, c.State())
}

func TestResolveNilRecordIsFailure(t *testing.T) {
	c := openController(t)
	_, err := c.BeginSubmit()
	require.NoError(t, err)

	_, err = c.Resolve(nil, nil)
	require.Error(t, err)
	tx, _ := c.Transaction()
	assert.Equal(t, MsgSaveFailed, tx.Error)
}

func TestCycleCountry(t *testing.T) {
	c := openController(t)

	require.NoError(t, c.CycleCountry(1))
	tx, _ := c.Transaction()
	assert.Equal(t, "CA", tx.Country)

	require.NoError(t, c.CycleCountry(-2))
	tx, _ = c.Transaction()
	assert.Equal(t, "DE", tx.Country)

	require.NoError(t, c.SetCountry(""))
	require.NoError(t, c.CycleCountry(1))
	tx, _ = c.Transaction()
	assert.Equal(t, "US", tx.Country)

	require.NoError(t, c.SetCountry("Atlantis"))
	require.NoError(t, c.CycleCountry(-1))
	tx, _ = c.Transaction()
	assert.Equal(t, "DE", tx.Country)
}

func TestCycleCountryWithoutChoices(t *testing.T) {
	var c Controller
	require.NoError(t, c.Open(alice, nil))
	require.NoError(t, c.CycleCountry(1))
	tx, _ := c.Transaction()
	assert.Equal(t, "US", tx.Country)

	// The record's country is not in an empty choice set.
	_, err := c.BeginSubmit()
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestControllerCopiesAreIndependent(t *testing.T) {
	c := openController(t)
	snapshot := *c
	require.NoError(t, c.SetName("Changed"))

	tx, _ := snapshot.Transaction()
	assert.Equal(t, "Alice", tx.Name)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "submitting", StateSubmitting.String())
}
