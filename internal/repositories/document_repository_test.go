package repositories_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"sirwa/internal/models"
	"sirwa/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func strPtr(s string) *string { return &s }

// exerciseRepository checks the contract shared by every live backend.
func exerciseRepository(t *testing.T, repo repositories.DocumentRepository) {
	t.Helper()
	ctx := context.Background()

	assert.True(t, repo.Available())

	ids := map[string]bool{}
	for i := 0; i < 3; i++ {
		id, err := repo.Insert(ctx, "wardrobeitem", models.WardrobeItem{
			Title: fmt.Sprintf("Item %d", i),
			Color: strPtr("red"),
			Tags:  []string{"summer"},
		})
		require.NoError(t, err)
		require.NotEmpty(t, id)
		assert.False(t, ids[id], "id %s issued twice", id)
		ids[id] = true
	}
	_, err := repo.Insert(ctx, "review", models.Review{Name: "Sara", Comment: "Lovely"})
	require.NoError(t, err)

	docs, err := repo.List(ctx, "wardrobeitem", 2)
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	docs, err = repo.List(ctx, "wardrobeitem", 50)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	for _, d := range docs {
		id, ok := d["id"].(string)
		require.True(t, ok)
		assert.True(t, ids[id])
		assert.NotContains(t, d, "_id")
		assert.Equal(t, "red", d["color"])
		assert.Contains(t, d, "created_at")
		assert.Contains(t, d, "description")
		assert.Nil(t, d["description"])
	}

	again, err := repo.List(ctx, "wardrobeitem", 50)
	require.NoError(t, err)
	assert.ElementsMatch(t, docs, again)

	empty, err := repo.List(ctx, "pickuprequest", 10)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	names, err := repo.CollectionNames(ctx)
	require.NoError(t, err)
	assert.Subset(t, names, []string{"review", "wardrobeitem"})
}

func TestMemoryDocumentRepository(t *testing.T) {
	repo := repositories.NewMemoryDocumentRepository()
	exerciseRepository(t, repo)
	assert.Equal(t, 3, repo.Count("wardrobeitem"))
	assert.NoError(t, repo.Close(context.Background()))
}

func TestMemoryDocumentRepository_ListReturnsCopies(t *testing.T) {
	repo := repositories.NewMemoryDocumentRepository()
	ctx := context.Background()
	_, err := repo.Insert(ctx, "review", models.Review{Name: "Sara", Comment: "Lovely"})
	require.NoError(t, err)

	docs, err := repo.List(ctx, "review", 1)
	require.NoError(t, err)
	docs[0]["name"] = "changed"

	docs, err = repo.List(ctx, "review", 1)
	require.NoError(t, err)
	assert.Equal(t, "Sara", docs[0]["name"])
}

func TestGORMDocumentRepository_SQLite(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:gorm_repo_test?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	repo, err := repositories.NewGORMDocumentRepository(db)
	require.NoError(t, err)
	defer repo.Close(context.Background())

	exerciseRepository(t, repo)
}

func TestUnavailableDocumentRepository(t *testing.T) {
	cause := errors.New("connection refused")
	repo := repositories.NewUnavailableDocumentRepository(cause)
	ctx := context.Background()

	assert.False(t, repo.Available())
	assert.Equal(t, cause, repo.Cause())

	_, err := repo.Insert(ctx, "review", models.Review{})
	var serr *repositories.StoreError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, "insert", serr.Op)
	assert.Equal(t, "review", serr.Collection)
	assert.ErrorIs(t, err, repositories.ErrUnavailable)
	assert.Contains(t, err.Error(), "connection refused")

	_, err = repo.List(ctx, "wardrobeitem", 5)
	assert.ErrorIs(t, err, repositories.ErrUnavailable)

	_, err = repo.CollectionNames(ctx)
	assert.ErrorIs(t, err, repositories.ErrUnavailable)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	log := zap.NewNop()

	repo, err := repositories.Open(ctx, repositories.Options{Driver: "memory"}, log)
	require.NoError(t, err)
	assert.True(t, repo.Available())

	repo, err = repositories.Open(ctx, repositories.Options{Driver: "mongo"}, log)
	require.NoError(t, err)
	assert.False(t, repo.Available(), "missing URL must degrade")

	_, err = repositories.Open(ctx, repositories.Options{Driver: "cassandra", URL: "x"}, log)
	assert.Error(t, err)

	repo, err = repositories.Open(ctx, repositories.Options{
		Driver: "sqlite",
		URL:    "file:open_test?mode=memory&cache=shared",
	}, log)
	require.NoError(t, err)
	assert.True(t, repo.Available())
	_, err = repo.Insert(ctx, "review", models.Review{Name: "Sara", Comment: "Lovely"})
	assert.NoError(t, err)
}

func TestOpen_UnreachableMongoDegrades(t *testing.T) {
	repo, err := repositories.Open(context.Background(), repositories.Options{
		Driver:         "mongo",
		URL:            "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=200&connectTimeoutMS=200",
		Database:       "sirwa",
		ConnectTimeout: 2 * time.Second,
	}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, repo.Available())

	_, err = repo.Insert(context.Background(), "review", models.Review{})
	assert.ErrorIs(t, err, repositories.ErrUnavailable)
}

type mockObserver struct {
	mock.Mock
}

func (m *mockObserver) ObserveStoreOperation(operation, collection string, duration time.Duration, err error) {
	m.Called(operation, collection, err != nil)
}

func TestInstrumentedRepository(t *testing.T) {
	observer := new(mockObserver)
	ctx := context.Background()

	observer.On("ObserveStoreOperation", "insert", "review", false).Return().Once()
	observer.On("ObserveStoreOperation", "list", "review", false).Return().Once()
	repo := repositories.NewInstrumentedRepository(repositories.NewMemoryDocumentRepository(), zap.NewNop(), observer)

	_, err := repo.Insert(ctx, "review", models.Review{Name: "Sara", Comment: "Lovely"})
	require.NoError(t, err)
	_, err = repo.List(ctx, "review", 10)
	require.NoError(t, err)
	assert.True(t, repo.Available())
	observer.AssertExpectations(t)

	failing := repositories.NewInstrumentedRepository(repositories.NewUnavailableDocumentRepository(nil), zap.NewNop(), observer)
	observer.On("ObserveStoreOperation", "insert", "review", true).Return().Once()
	_, err = failing.Insert(ctx, "review", models.Review{})
	assert.ErrorIs(t, err, repositories.ErrUnavailable)
	assert.False(t, failing.Available())
	observer.AssertExpectations(t)
}
