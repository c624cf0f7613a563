package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrUnavailable is returned by every operation while the store connection
// could not be established at startup.
var ErrUnavailable = errors.New("document store is not available")

// Document is one stored record as returned by List. The store identifier is
// always exposed as text under the "id" key.
type Document map[string]any

// DocumentRepository defines the interface for document data access.
type DocumentRepository interface {
	// Insert writes record as a new document and returns its generated id.
	Insert(ctx context.Context, collection string, record any) (string, error)
	// List returns at most limit documents from collection.
	List(ctx context.Context, collection string, limit int64) ([]Document, error)
	// CollectionNames lists the collections that currently exist.
	CollectionNames(ctx context.Context) ([]string, error)
	// Available reports whether a live connection is held.
	Available() bool
	Close(ctx context.Context) error
}

// StoreError wraps a failed store operation.
type StoreError struct {
	Op         string
	Collection string
	Err        error
}

func (e *StoreError) Error() string {
	if e.Collection == "" {
		return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %v", e.Op, e.Collection, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeError(op, collection string, err error) error {
	if err == nil {
		return nil
	}
	var serr *StoreError
	if errors.As(err, &serr) {
		return err
	}
	return &StoreError{Op: op, Collection: collection, Err: err}
}

// encodeDocument turns a record into a generic document through its JSON
// representation and stamps creation times.
func encodeDocument(record any, now time.Time) (Document, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	doc := Document{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("record must encode to a JSON object: %w", err)
	}
	stamp := now.UTC().Format(time.RFC3339Nano)
	doc["created_at"] = stamp
	doc["updated_at"] = stamp
	return doc, nil
}

func (d Document) clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}
