package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"sirwa/internal/config"
	"sirwa/internal/metrics"
	"sirwa/internal/repositories"
	"sirwa/internal/server"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(routingKey string, body []byte) error {
	return m.Called(routingKey, body).Error(0)
}

func testConfig() *config.Config {
	return &config.Config{
		Port:             "8000",
		DatabaseURL:      "mongodb://localhost:27017",
		StoreDriver:      "memory",
		DefaultListLimit: 50,
	}
}

func newApp(t *testing.T, deps server.Deps) *fiber.App {
	t.Helper()
	if deps.Config == nil {
		deps.Config = testConfig()
	}
	if deps.Repository == nil {
		deps.Repository = repositories.NewMemoryDocumentRepository()
	}
	deps.Logger = zap.NewNop()
	return server.New(deps)
}

func TestCORSAllowsAnyOriginWithCredentials(t *testing.T) {
	app := newApp(t, server.Deps{})

	req := httptest.NewRequest(http.MethodOptions, "/api/wardrobe", nil)
	req.Header.Set("Origin", "https://sirwa.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type, X-Custom")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "https://sirwa.example", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), http.MethodPost)
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Headers"), "X-Custom")

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestRequestIDHeader(t *testing.T) {
	app := newApp(t, server.Deps{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
}

func TestUnknownRouteReturnsDetail(t *testing.T) {
	app := newApp(t, server.Deps{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/unknown", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body["detail"])
}

func TestMetricsEndpointAndRequestCounting(t *testing.T) {
	m := metrics.New("sirwa")
	app := newApp(t, server.Deps{Metrics: m})

	req := httptest.NewRequest(http.MethodPost, "/api/reviews", bytes.NewReader([]byte(`{"name":"Sara","rating":9,"comment":"x"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/api/reviews", "422")))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "sirwa_http_requests_total")
}

func TestSubmissionPublishesEvent(t *testing.T) {
	publisher := new(MockPublisher)
	publisher.On("Publish", "review.created", mock.Anything).Return(nil).Once()
	m := metrics.New("sirwa")
	app := newApp(t, server.Deps{Publisher: publisher, Metrics: m})

	req := httptest.NewRequest(http.MethodPost, "/api/reviews", bytes.NewReader([]byte(`{"name":"Sara","rating":5,"comment":"Great"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	publisher.AssertExpectations(t)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.EventsPublishedTotal.WithLabelValues("review.created", "success")))
}

func TestDegradedStoreKeepsDiagnosticsUp(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	repo, err := repositories.Open(ctx, repositories.Options{Driver: "mongo"}, zap.NewNop())
	require.NoError(t, err)
	cfg := testConfig()
	cfg.DatabaseURL = ""
	app := newApp(t, server.Deps{Config: cfg, Repository: repo})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/test", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["database"], "Not Available")
	assert.Equal(t, "❌ Not Set", body["database_url"])
	assert.Equal(t, "❌ Not Set", body["database_name"])
}
