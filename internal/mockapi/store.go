// Package mockapi serves the taxes and countries resources from memory.
// It backs `taxdesk mock-server` and the integration tests.
package mockapi

import (
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gravitrone/taxdesk/internal/api"
)

// ErrRecordNotFound is returned when updating an id the store does not hold.
var ErrRecordNotFound = errors.New("record not found")

// Store is a concurrency-safe in-memory copy of both collections.
type Store struct {
	mu        sync.RWMutex
	records   []api.Record
	countries []api.Country
}

// NewStore copies the given collections into a new store.
func NewStore(records []api.Record, countries []api.Country) *Store {
	return &Store{
		records:   slices.Clone(records),
		countries: slices.Clone(countries),
	}
}

// NewSeededStore returns a store holding the sample data set.
func NewSeededStore() *Store {
	return NewStore(SeedRecords(), SeedCountries())
}

// Records returns a snapshot of the records collection.
func (s *Store) Records() []api.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.records)
}

// Countries returns a snapshot of the countries collection.
func (s *Store) Countries() []api.Country {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.countries)
}

// Update replaces name and country of one record. The name is stored
// trimmed, the way the hosted service normalizes it.
func (s *Store) Update(id string, input api.UpdateRecordInput) (api.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].ID != id {
			continue
		}
		s.records[i].Name = strings.TrimSpace(input.Name)
		s.records[i].Country = input.Country
		return s.records[i], nil
	}
	return api.Record{}, ErrRecordNotFound
}

// SeedCountries is the sample country list.
func SeedCountries() []api.Country {
	return []api.Country{
		{ID: "1", Name: "United States", Code: "US"},
		{ID: "2", Name: "Canada", Code: "CA"},
		{ID: "3", Name: "Germany", Code: "DE"},
		{ID: "4", Name: "India", Code: "IN"},
		{ID: "5", Name: "Japan", Code: "JP"},
		{ID: "6", Name: "Brazil", Code: "BR"},
	}
}

// SeedRecords is the sample records collection.
func SeedRecords() []api.Record {
	created := func(day int) api.Timestamp {
		return api.Timestamp(time.Date(2025, time.June, day, 9, 30, 0, 0, time.UTC).Format(time.RFC3339))
	}
	return []api.Record{
		{ID: "1", Name: "Harriet Ross", Country: "United States", CreatedAt: created(1)},
		{ID: "2", Name: "Omar Haddad", Country: "Canada", CreatedAt: created(2)},
		{ID: "3", Name: "Lena Vogel", Country: "Germany", CreatedAt: created(3)},
		{ID: "4", Name: "Priya Nair", Country: "India", CreatedAt: created(5)},
		{ID: "5", Name: "Kenji Mori", Country: "Japan", CreatedAt: created(8)},
		{ID: "6", Name: "Ana Souza", Country: "Brazil", CreatedAt: created(13)},
	}
}
