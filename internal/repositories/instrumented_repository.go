package repositories

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// OperationObserver receives the outcome of every store call.
type OperationObserver interface {
	ObserveStoreOperation(operation, collection string, duration time.Duration, err error)
}

// InstrumentedRepository logs and observes calls to another repository.
type InstrumentedRepository struct {
	next     DocumentRepository
	log      *zap.Logger
	observer OperationObserver
}

// NewInstrumentedRepository wraps next. observer may be nil.
func NewInstrumentedRepository(next DocumentRepository, log *zap.Logger, observer OperationObserver) *InstrumentedRepository {
	return &InstrumentedRepository{next: next, log: log, observer: observer}
}

func (r *InstrumentedRepository) observe(op, collection string, start time.Time, err error) {
	d := time.Since(start)
	if r.observer != nil {
		r.observer.ObserveStoreOperation(op, collection, d, err)
	}
	fields := []zap.Field{
		zap.String("operation", op),
		zap.String("collection", collection),
		zap.Duration("duration", d),
	}
	if err != nil {
		r.log.Error("Document store operation failed", append(fields, zap.Error(err))...)
		return
	}
	r.log.Debug("Document store operation completed", fields...)
}

// Insert delegates to the wrapped repository.
func (r *InstrumentedRepository) Insert(ctx context.Context, collection string, record any) (string, error) {
	start := time.Now()
	id, err := r.next.Insert(ctx, collection, record)
	r.observe("insert", collection, start, err)
	return id, err
}

// List delegates to the wrapped repository.
func (r *InstrumentedRepository) List(ctx context.Context, collection string, limit int64) ([]Document, error) {
	start := time.Now()
	docs, err := r.next.List(ctx, collection, limit)
	r.observe("list", collection, start, err)
	return docs, err
}

// CollectionNames delegates to the wrapped repository.
func (r *InstrumentedRepository) CollectionNames(ctx context.Context) ([]string, error) {
	start := time.Now()
	names, err := r.next.CollectionNames(ctx)
	r.observe("list_collections", "", start, err)
	return names, err
}

// Available reports whether the wrapped repository is usable.
func (r *InstrumentedRepository) Available() bool { return r.next.Available() }

// Close closes the wrapped repository.
func (r *InstrumentedRepository) Close(ctx context.Context) error { return r.next.Close(ctx) }
