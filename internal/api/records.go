package api

import (
	"context"
	"fmt"
	"net/url"
)

// --- Record Methods ---

// ListRecords fetches the full records collection.
func (c *Client) ListRecords(ctx context.Context) ([]Record, error) {
	data, err := c.get(ctx, c.recordsPath)
	if err != nil {
		return nil, err
	}
	items, err := decodeList[Record]("records", data)
	if err != nil {
		return nil, err
	}
	for i, item := range items {
		if item.ID == "" {
			return nil, &DecodeError{Resource: "records", Err: fmt.Errorf("item %d has no id", i)}
		}
	}
	return items, nil
}

// UpdateRecord replaces the mutable fields of one record and returns the
// server's representation of it. A single attempt is made.
func (c *Client) UpdateRecord(ctx context.Context, id string, input UpdateRecordInput) (*Record, error) {
	data, err := c.put(ctx, c.recordsPath+"/"+url.PathEscape(id), input)
	if err != nil {
		return nil, err
	}
	rec, err := decodeOne[Record]("record", data)
	if err != nil {
		return nil, err
	}
	if rec.ID == "" {
		return nil, &DecodeError{Resource: "record", Err: fmt.Errorf("response has no id")}
	}
	return rec, nil
}
