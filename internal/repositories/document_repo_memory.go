package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryDocumentRepository is an in-memory implementation of DocumentRepository.
type MemoryDocumentRepository struct {
	collections map[string][]Document
	mu          sync.RWMutex
}

// NewMemoryDocumentRepository creates a new instance of MemoryDocumentRepository.
func NewMemoryDocumentRepository() *MemoryDocumentRepository {
	return &MemoryDocumentRepository{
		collections: make(map[string][]Document),
	}
}

// Insert adds a new document.
func (r *MemoryDocumentRepository) Insert(_ context.Context, collection string, record any) (string, error) {
	doc, err := encodeDocument(record, time.Now())
	if err != nil {
		return "", storeError("insert", collection, err)
	}
	id := uuid.New().String()
	doc["id"] = id

	r.mu.Lock()
	defer r.mu.Unlock()
	r.collections[collection] = append(r.collections[collection], doc)
	return id, nil
}

// List returns documents in insertion order.
func (r *MemoryDocumentRepository) List(_ context.Context, collection string, limit int64) ([]Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	docs := r.collections[collection]
	if limit > 0 && int64(len(docs)) > limit {
		docs = docs[:limit]
	}
	out := make([]Document, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.clone())
	}
	return out, nil
}

// CollectionNames returns the names of non-empty collections, sorted.
func (r *MemoryDocumentRepository) CollectionNames(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.collections))
	for name := range r.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Count returns the number of documents stored in collection.
func (r *MemoryDocumentRepository) Count(collection string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.collections[collection])
}

// Available always reports true.
func (r *MemoryDocumentRepository) Available() bool { return true }

// Close is a no-op.
func (r *MemoryDocumentRepository) Close(context.Context) error { return nil }
