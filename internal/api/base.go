package api

import "time"

// DefaultBaseURL is the service the tax and country collections are served from.
const DefaultBaseURL = "https://685013d7e7c42cfd17974a33.mockapi.io"

const (
	DefaultRecordsPath   = "/taxes"
	DefaultCountriesPath = "/countries"
	DefaultTimeout       = 30 * time.Second
)

// Version is reported in the User-Agent header.
var Version = "dev"

// NewDefaultClient builds a client pointed at the default service URL.
func NewDefaultClient(opts ...Option) *Client {
	return NewClient(DefaultBaseURL, opts...)
}
