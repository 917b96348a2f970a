// Package session owns the collection state of a client session: the
// records shown in the table and the countries offered when editing one.
package session

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/gravitrone/taxdesk/internal/api"
	"github.com/gravitrone/taxdesk/internal/logging"
)

// Source is the read side of the record store. *api.Client satisfies it.
type Source interface {
	ListRecords(ctx context.Context) ([]api.Record, error)
	ListCountries(ctx context.Context) ([]api.Country, error)
}

// Phase is where the session is in its load lifecycle.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	default:
		return "loading"
	}
}

// Snapshot is the result of a successful load.
type Snapshot struct {
	Records   []api.Record
	Countries []api.Country
}

// Load fetches both collections concurrently. It returns both or neither:
// the first failure cancels the sibling request and no data is returned.
func Load(ctx context.Context, src Source) (Snapshot, error) {
	var records []api.Record
	var countries []api.Country

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := src.ListRecords(gctx)
		if err != nil {
			return fmt.Errorf("load records: %w", err)
		}
		records = items
		return nil
	})
	g.Go(func() error {
		items, err := src.ListCountries(gctx)
		if err != nil {
			return fmt.Errorf("load countries: %w", err)
		}
		countries = items
		return nil
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Records: records, Countries: countries}, nil
}

// Session is the in-memory collection state. Only ApplyLoad and Reconcile
// change Records.
type Session struct {
	Phase     Phase
	Records   []api.Record
	Countries []api.Country
	Err       error
}

// New returns a session waiting for its first load.
func New() Session {
	return Session{Phase: PhaseLoading}
}

// BeginLoad clears the collections and enters Loading, for the first load
// and for a user retry after failure.
func (s *Session) BeginLoad() {
	s.Phase = PhaseLoading
	s.Records = nil
	s.Countries = nil
	s.Err = nil
}

// ApplyLoad stores a load result. On error both collections stay empty.
func (s *Session) ApplyLoad(snap Snapshot, err error) {
	if err != nil {
		s.Phase = PhaseFailed
		s.Records = nil
		s.Countries = nil
		s.Err = err
		return
	}
	s.Phase = PhaseReady
	s.Records = snap.Records
	s.Countries = snap.Countries
	s.Err = nil
}

// Ready reports whether both collections are loaded.
func (s *Session) Ready() bool {
	return s.Phase == PhaseReady
}

// Record looks up a record by id, the snapshot handed to an edit.
func (s *Session) Record(id string) (api.Record, bool) {
	for _, r := range s.Records {
		if r.ID == id {
			return r, true
		}
	}
	return api.Record{}, false
}

// ErrUnknownRecord is returned by EditIntent for an id not in the collection.
var ErrUnknownRecord = errors.New("record not found")

// EditIntent returns the snapshot of the record the user asked to edit.
func (s *Session) EditIntent(id string) (api.Record, error) {
	if !s.Ready() {
		return api.Record{}, fmt.Errorf("edit %s: session not ready", id)
	}
	rec, ok := s.Record(id)
	if !ok {
		return api.Record{}, fmt.Errorf("edit %s: %w", id, ErrUnknownRecord)
	}
	return rec, nil
}

// Reconcile replaces the record with the same id as updated. It reports
// false, leaving the collection untouched, when no such record exists.
func (s *Session) Reconcile(ctx context.Context, updated api.Record) bool {
	next, ok := Replace(s.Records, updated)
	if !ok {
		logging.FromContext(ctx).Debug().Str("record_id", updated.ID).Msg("reconcile skipped: record no longer present")
		return false
	}
	s.Records = next
	return true
}

// Replace returns a copy of records with the element whose id matches
// updated swapped for updated. Length and order are preserved.
func Replace(records []api.Record, updated api.Record) ([]api.Record, bool) {
	idx := -1
	for i, r := range records {
		if r.ID == updated.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return records, false
	}
	next := make([]api.Record, len(records))
	copy(next, records)
	next[idx] = updated
	return next, true
}
