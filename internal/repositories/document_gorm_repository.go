package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// documentRow is the single table backing every collection in SQL stores.
type documentRow struct {
	ID             string    `gorm:"primaryKey;type:varchar(36)"`
	CollectionName string    `gorm:"column:collection_name;type:varchar(100);not null;index"`
	Body           string    `gorm:"type:text;not null"`
	CreatedAt      time.Time `gorm:"index"`
}

func (documentRow) TableName() string { return "documents" }

// GORMDocumentRepository is a GORM implementation of DocumentRepository.
// Documents are kept as JSON text, one row per document.
type GORMDocumentRepository struct {
	db *gorm.DB
}

// NewGORMDocumentRepository creates a new instance of GORMDocumentRepository
// and makes sure the documents table exists.
func NewGORMDocumentRepository(db *gorm.DB) (*GORMDocumentRepository, error) {
	if err := db.AutoMigrate(&documentRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate documents table: %w", err)
	}
	return &GORMDocumentRepository{
		db: db,
	}, nil
}

// Insert creates a new document row.
func (r *GORMDocumentRepository) Insert(ctx context.Context, collection string, record any) (string, error) {
	now := time.Now()
	doc, err := encodeDocument(record, now)
	if err != nil {
		return "", storeError("insert", collection, err)
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return "", storeError("insert", collection, fmt.Errorf("failed to encode document: %w", err))
	}

	row := documentRow{
		ID:             uuid.New().String(),
		CollectionName: collection,
		Body:           string(body),
		CreatedAt:      now,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", storeError("insert", collection, fmt.Errorf("failed to create document: %w", err))
	}
	return row.ID, nil
}

// List returns at most limit documents in insertion order.
func (r *GORMDocumentRepository) List(ctx context.Context, collection string, limit int64) ([]Document, error) {
	query := r.db.WithContext(ctx).
		Where("collection_name = ?", collection).
		Order("created_at").
		Order("id")
	if limit > 0 {
		query = query.Limit(int(limit))
	}

	var rows []documentRow
	if err := query.Find(&rows).Error; err != nil {
		return nil, storeError("list", collection, fmt.Errorf("failed to list documents: %w", err))
	}

	docs := make([]Document, 0, len(rows))
	for _, row := range rows {
		doc := Document{}
		if err := json.Unmarshal([]byte(row.Body), &doc); err != nil {
			return nil, storeError("list", collection, fmt.Errorf("failed to decode document %s: %w", row.ID, err))
		}
		doc["id"] = row.ID
		docs = append(docs, doc)
	}
	return docs, nil
}

// CollectionNames returns the distinct collections that hold documents.
func (r *GORMDocumentRepository) CollectionNames(ctx context.Context) ([]string, error) {
	names := []string{}
	err := r.db.WithContext(ctx).
		Model(&documentRow{}).
		Distinct("collection_name").
		Order("collection_name").
		Pluck("collection_name", &names).Error
	if err != nil {
		return nil, storeError("list collections", "", err)
	}
	return names, nil
}

// Available always reports true once connected.
func (r *GORMDocumentRepository) Available() bool { return true }

// Close closes the underlying connection pool.
func (r *GORMDocumentRepository) Close(context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.Close()
}
