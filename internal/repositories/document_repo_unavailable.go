package repositories

import (
	"context"
	"fmt"
)

// UnavailableDocumentRepository stands in for a store that could not be
// reached at startup. Every operation fails immediately; there is no
// reconnection.
type UnavailableDocumentRepository struct {
	cause error
}

// NewUnavailableDocumentRepository records why the store is unavailable.
func NewUnavailableDocumentRepository(cause error) *UnavailableDocumentRepository {
	return &UnavailableDocumentRepository{cause: cause}
}

func (r *UnavailableDocumentRepository) err(op, collection string) error {
	if r.cause == nil {
		return &StoreError{Op: op, Collection: collection, Err: ErrUnavailable}
	}
	return &StoreError{Op: op, Collection: collection, Err: fmt.Errorf("%w: %v", ErrUnavailable, r.cause)}
}

// Insert always fails with ErrUnavailable.
func (r *UnavailableDocumentRepository) Insert(_ context.Context, collection string, _ any) (string, error) {
	return "", r.err("insert", collection)
}

// List always fails with ErrUnavailable.
func (r *UnavailableDocumentRepository) List(_ context.Context, collection string, _ int64) ([]Document, error) {
	return nil, r.err("list", collection)
}

// CollectionNames always fails with ErrUnavailable.
func (r *UnavailableDocumentRepository) CollectionNames(context.Context) ([]string, error) {
	return nil, r.err("list collections", "")
}

// Available always reports false.
func (r *UnavailableDocumentRepository) Available() bool { return false }

// Close is a no-op.
func (r *UnavailableDocumentRepository) Close(context.Context) error { return nil }

// Cause is the startup error that put the repository in degraded mode.
func (r *UnavailableDocumentRepository) Cause() error { return r.cause }
