package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCountries(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/countries", r.URL.Path)
		w.Write(jsonResponse([]map[string]any{
			{"id": "1", "name": "US", "code": "us"},
			{"id": "2", "name": "CA"},
		}))
	})

	countries, err := client.ListCountries(context.Background())
	require.NoError(t, err)
	require.Len(t, countries, 2)
	assert.Equal(t, "us", countries[0].Code)
	assert.Equal(t, []string{"US", "CA"}, CountryNames(countries))
}

func TestListCountriesRejectsNamelessEntries(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"1"}]`))
	})

	_, err := client.ListCountries(context.Background())
	assert.ErrorIs(t, err, ErrDecode)
}

func TestCountryNamesEmpty(t *testing.T) {
	assert.Empty(t, CountryNames(nil))
}
