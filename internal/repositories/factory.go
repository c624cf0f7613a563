package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Options selects and configures the document store backend.
type Options struct {
	Driver         string // mongo, postgres, sqlite or memory
	URL            string
	Database       string
	ConnectTimeout time.Duration
}

// Open connects to the configured backend once. A missing URL or a failed
// connection does not stop the process: the returned repository is in
// degraded mode and fails every call. Only an unknown driver is an error.
func Open(ctx context.Context, opts Options, log *zap.Logger) (DocumentRepository, error) {
	if opts.Driver == "memory" {
		log.Info("Using in-memory document store")
		return NewMemoryDocumentRepository(), nil
	}

	switch opts.Driver {
	case "", "mongo", "mongodb", "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("unknown store driver: %q (supported: mongo, postgres, sqlite, memory)", opts.Driver)
	}

	if opts.URL == "" {
		log.Warn("DATABASE_URL is not set, document store disabled")
		return NewUnavailableDocumentRepository(errors.New("DATABASE_URL is not set")), nil
	}

	if opts.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.ConnectTimeout)
		defer cancel()
	}

	var (
		repo DocumentRepository
		err  error
	)
	switch opts.Driver {
	case "postgres":
		repo, err = openGORM(ctx, postgres.Open(opts.URL))
	case "sqlite":
		repo, err = openGORM(ctx, sqlite.Open(opts.URL))
	default:
		repo, err = NewMongoDocumentRepository(ctx, opts.URL, opts.Database)
	}
	if err != nil {
		log.Warn("Document store unavailable, running in degraded mode",
			zap.String("driver", opts.Driver), zap.Error(err))
		return NewUnavailableDocumentRepository(err), nil
	}

	log.Info("Connected to document store", zap.String("driver", opts.Driver))
	return repo, nil
}

func openGORM(ctx context.Context, dialector gorm.Dialector) (*GORMDocumentRepository, error) {
	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return NewGORMDocumentRepository(db)
}
