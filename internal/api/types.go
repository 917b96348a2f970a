package api

import (
	"bytes"
	"encoding/json"
)

// --- Record ---

// Record is one tax record as served by the records resource. CreatedAt is
// service metadata kept verbatim; its format is not guaranteed.
type Record struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Country   string     `json:"country"`
	CreatedAt Timestamp `json:"createdAt,omitempty"`
	Avatar    string     `json:"avatar,omitempty"`
}

// RowID returns the stable identity used for table rows.
func (r Record) RowID() string {
	return r.ID
}

// Field returns the display value of a named field, or "" if unknown.
func (r Record) Field(key string) string {
	switch key {
	case "id":
		return r.ID
	case "name":
		return r.Name
	case "country":
		return r.Country
	case "createdAt":
		return string(r.CreatedAt)
	case "avatar":
		return r.Avatar
	default:
		return ""
	}
}

// Timestamp is an opaque creation time. It decodes from a JSON string or a
// number (epoch values) and keeps the text as sent.
type Timestamp string

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Timestamp(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*t = Timestamp(n.String())
	return nil
}

// UpdateRecordInput is the full replacement body for the two mutable fields.
type UpdateRecordInput struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

// --- Country ---

// Country is a read-only choice for Record.Country.
type Country struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
}

// CountryNames returns the names in order, the values a Record may carry.
func CountryNames(countries []Country) []string {
	names := make([]string, 0, len(countries))
	for _, c := range countries {
		names = append(names, c.Name)
	}
	return names
}
