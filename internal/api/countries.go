package api

import (
	"context"
	"fmt"
)

// ListCountries fetches the country reference collection.
func (c *Client) ListCountries(ctx context.Context) ([]Country, error) {
	data, err := c.get(ctx, c.countriesPath)
	if err != nil {
		return nil, err
	}
	items, err := decodeList[Country]("countries", data)
	if err != nil {
		return nil, err
	}
	for i, item := range items {
		if item.Name == "" {
			return nil, &DecodeError{Resource: "countries", Err: fmt.Errorf("item %d has no name", i)}
		}
	}
	return items, nil
}
