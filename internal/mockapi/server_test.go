package mockapi

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/taxdesk/internal/api"
)

func testServer(t *testing.T, opts ...Option) (*Server, *api.Client) {
	t.Helper()
	srv := NewServer(NewSeededStore(), opts...)
	hs := httptest.NewServer(srv)
	t.Cleanup(hs.Close)
	return srv, api.NewClient(hs.URL)
}

func TestListRecordsAndCountries(t *testing.T) {
	_, client := testServer(t)

	records, err := client.ListRecords(context.Background())
	require.NoError(t, err)
	require.Len(t, records, len(SeedRecords()))
	for i, want := range SeedRecords() {
		assert.Equal(t, want.ID, records[i].ID)
		assert.Equal(t, want.Name, records[i].Name)
		assert.Equal(t, want.Country, records[i].Country)
		assert.Equal(t, want.CreatedAt, records[i].CreatedAt)
	}

	countries, err := client.ListCountries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SeedCountries(), countries)
}

func TestUpdateRecordRoundTrip(t *testing.T) {
	_, client := testServer(t)

	rec, err := client.UpdateRecord(context.Background(), "2", api.UpdateRecordInput{Name: "  Omar H.  ", Country: "Germany"})
	require.NoError(t, err)
	assert.Equal(t, "2", rec.ID)
	assert.Equal(t, "Omar H.", rec.Name)
	assert.Equal(t, "Germany", rec.Country)

	records, err := client.ListRecords(context.Background())
	require.NoError(t, err)
	require.Len(t, records, len(SeedRecords()))
	assert.Equal(t, "Omar H.", records[1].Name)
	assert.Equal(t, "Harriet Ross", records[0].Name)
}

func TestUpdateRecordNotFound(t *testing.T) {
	_, client := testServer(t)

	_, err := client.UpdateRecord(context.Background(), "999", api.UpdateRecordInput{Name: "x", Country: "Canada"})
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrNotFound)
	assert.Contains(t, err.Error(), "Not found")
}

func TestUpdateRecordBadBody(t *testing.T) {
	srv := NewServer(NewSeededStore())
	req := httptest.NewRequest(http.MethodPut, "/taxes/1", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"invalid body"}`, rec.Body.String())
}

func TestFaultInjection(t *testing.T) {
	srv, client := testServer(t)

	srv.Fail("countries", http.StatusServiceUnavailable)
	_, err := client.ListCountries(context.Background())
	require.Error(t, err)
	var te *api.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.StatusServiceUnavailable, te.StatusCode)
	assert.Equal(t, "countries unavailable", te.Message)

	_, err = client.ListRecords(context.Background())
	assert.NoError(t, err)

	srv.Fail("countries", 0)
	_, err = client.ListCountries(context.Background())
	assert.NoError(t, err)
}

func TestCustomPaths(t *testing.T) {
	srv := NewServer(NewSeededStore(), WithPaths("v1/records/", "/v1/countries"))
	hs := httptest.NewServer(srv)
	t.Cleanup(hs.Close)

	client := api.NewClient(hs.URL, api.WithPaths("/v1/records", "/v1/countries"))
	records, err := client.ListRecords(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, records)

	_, err = api.NewClient(hs.URL).ListRecords(context.Background())
	assert.ErrorIs(t, err, api.ErrNotFound)
}

func TestRequestLoggerWritesOneLinePerRequest(t *testing.T) {
	var buf bytes.Buffer
	_, client := testServer(t, WithLogger(zerolog.New(&buf)))

	_, err := client.ListRecords(context.Background())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"method":"GET"`)
	assert.Contains(t, out, `"path":"/taxes"`)
	assert.Contains(t, out, `"status":200`)
	assert.Contains(t, out, `"request_id"`)
}

func TestStoreConcurrentUpdates(t *testing.T) {
	store := NewSeededStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.Update("1", api.UpdateRecordInput{Name: "n", Country: "Japan"})
			_ = store.Records()
		}()
	}
	wg.Wait()

	records := store.Records()
	assert.Len(t, records, len(SeedRecords()))
	assert.Equal(t, "Japan", records[0].Country)
}

func TestStoreSnapshotsAreCopies(t *testing.T) {
	store := NewSeededStore()
	records := store.Records()
	records[0].Name = "mutated"

	assert.Equal(t, "Harriet Ross", store.Records()[0].Name)
}
