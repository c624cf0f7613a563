package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoDocumentRepository is a MongoDB implementation of DocumentRepository.
type MongoDocumentRepository struct {
	client   *mongo.Client
	database *mongo.Database
}

// NewMongoDocumentRepository connects to MongoDB and verifies the connection
// with a ping. The returned repository holds the client for the lifetime of
// the process.
func NewMongoDocumentRepository(ctx context.Context, uri, database string) (*MongoDocumentRepository, error) {
	if database == "" {
		return nil, fmt.Errorf("database name is required")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &MongoDocumentRepository{
		client:   client,
		database: client.Database(database),
	}, nil
}

// Insert stores the BSON form of record with creation timestamps.
func (r *MongoDocumentRepository) Insert(ctx context.Context, collection string, record any) (string, error) {
	doc, err := toBSON(record, time.Now())
	if err != nil {
		return "", storeError("insert", collection, err)
	}

	result, err := r.database.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return "", storeError("insert", collection, fmt.Errorf("failed to create document: %w", err))
	}
	return idString(result.InsertedID), nil
}

// List returns at most limit documents in natural order.
func (r *MongoDocumentRepository) List(ctx context.Context, collection string, limit int64) ([]Document, error) {
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.database.Collection(collection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, storeError("list", collection, fmt.Errorf("failed to list documents: %w", err))
	}
	defer cursor.Close(ctx)

	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, storeError("list", collection, fmt.Errorf("failed to decode documents: %w", err))
	}

	docs := make([]Document, 0, len(raw))
	for _, m := range raw {
		docs = append(docs, fromBSON(m))
	}
	return docs, nil
}

// CollectionNames lists the collections of the configured database.
func (r *MongoDocumentRepository) CollectionNames(ctx context.Context) ([]string, error) {
	names, err := r.database.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, storeError("list collections", "", err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// Available always reports true once connected.
func (r *MongoDocumentRepository) Available() bool { return true }

// Close disconnects the client.
func (r *MongoDocumentRepository) Close(ctx context.Context) error {
	if err := r.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}
	return nil
}

// toBSON encodes record with its bson tags and appends the timestamps.
func toBSON(record any, now time.Time) (bson.D, error) {
	raw, err := bson.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	var doc bson.D
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	stamp := now.UTC()
	doc = append(doc,
		bson.E{Key: "created_at", Value: stamp},
		bson.E{Key: "updated_at", Value: stamp},
	)
	return doc, nil
}

// fromBSON replaces the native _id with a text id.
func fromBSON(m bson.M) Document {
	doc := Document(m)
	if v, ok := doc["_id"]; ok {
		doc["id"] = idString(v)
		delete(doc, "_id")
	}
	return doc
}

func idString(v any) string {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	default:
		return fmt.Sprint(id)
	}
}
