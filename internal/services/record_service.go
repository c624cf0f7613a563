package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sirwa/internal/models"
	"sirwa/internal/repositories"

	"go.uber.org/zap"
)

// EventPublisher delivers submission events to a broker.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// PublishObserver is told about every publish attempt.
type PublishObserver interface {
	ObservePublish(routingKey string, err error)
}

// RecordEvent is published after a record has been stored.
type RecordEvent struct {
	Event      string    `json:"event"`
	Collection string    `json:"collection"`
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
}

// RecordService handles persistence of one kind of record.
type RecordService[T models.Record] struct {
	repo      repositories.DocumentRepository
	publisher EventPublisher
	observer  PublishObserver
	log       *zap.Logger
}

// NewRecordService creates a new RecordService. publisher and observer may be nil.
func NewRecordService[T models.Record](repo repositories.DocumentRepository, publisher EventPublisher, observer PublishObserver, log *zap.Logger) *RecordService[T] {
	return &RecordService[T]{
		repo:      repo,
		publisher: publisher,
		observer:  observer,
		log:       log,
	}
}

// Collection is the collection records of type T are stored in.
func (s *RecordService[T]) Collection() string {
	var zero T
	return zero.CollectionName()
}

// Create stores a validated record and returns its new id.
func (s *RecordService[T]) Create(ctx context.Context, record T) (string, error) {
	collection := s.Collection()
	id, err := s.repo.Insert(ctx, collection, record)
	if err != nil {
		return "", err
	}

	s.publishCreated(collection, id)
	return id, nil
}

// List returns at most limit stored records.
func (s *RecordService[T]) List(ctx context.Context, limit int64) ([]repositories.Document, error) {
	if limit < 1 {
		return nil, fmt.Errorf("limit must be at least 1, got %d", limit)
	}
	return s.repo.List(ctx, s.Collection(), limit)
}

// publishCreated emits a "<collection>.created" event. Failures are logged
// and never affect the stored record.
func (s *RecordService[T]) publishCreated(collection, id string) {
	if s.publisher == nil {
		return
	}

	routingKey := collection + ".created"
	body, err := json.Marshal(RecordEvent{
		Event:      routingKey,
		Collection: collection,
		ID:         id,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		s.log.Warn("Failed to marshal event", zap.String("routing_key", routingKey), zap.Error(err))
		return
	}

	err = s.publisher.Publish(routingKey, body)
	if s.observer != nil {
		s.observer.ObservePublish(routingKey, err)
	}
	if err != nil {
		s.log.Warn("Failed to publish event", zap.String("routing_key", routingKey), zap.String("id", id), zap.Error(err))
	}
}
