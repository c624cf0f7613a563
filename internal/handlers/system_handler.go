package handlers

import (
	"fmt"
	"time"

	"sirwa/internal/repositories"

	"github.com/gofiber/fiber/v2"
)

// diagnosticErrorLength bounds store errors echoed by /test.
const diagnosticErrorLength = 80

// SystemHandler serves liveness and diagnostic endpoints.
type SystemHandler struct {
	repo            repositories.DocumentRepository
	databaseURLSet  bool
	databaseNameSet bool
}

// NewSystemHandler creates a new SystemHandler. The two flags report whether
// the store connection settings were present at startup.
func NewSystemHandler(repo repositories.DocumentRepository, databaseURLSet, databaseNameSet bool) *SystemHandler {
	return &SystemHandler{
		repo:            repo,
		databaseURLSet:  databaseURLSet,
		databaseNameSet: databaseNameSet,
	}
}

// RegisterRoutes registers the system routes with the Fiber app.
func (h *SystemHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleRoot)
	router.Get("/test", h.HandleDiagnostics)
	router.Get("/health", h.HandleHealth)
}

// HandleRoot is the liveness message.
func (h *SystemHandler) HandleRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Sirwa API running"})
}

// DiagnosticsResponse is the body of GET /test.
type DiagnosticsResponse struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

// HandleDiagnostics reports configuration presence and store connectivity.
// It always answers 200; store failures are described in the body.
func (h *SystemHandler) HandleDiagnostics(c *fiber.Ctx) error {
	return c.JSON(h.diagnose(c))
}

func (h *SystemHandler) diagnose(c *fiber.Ctx) (resp DiagnosticsResponse) {
	resp = DiagnosticsResponse{
		Backend:          "✅ Running",
		Database:         "❌ Not Available",
		DatabaseURL:      setStatus(h.databaseURLSet),
		DatabaseName:     setStatus(h.databaseNameSet),
		ConnectionStatus: "Not Connected",
		Collections:      []string{},
	}

	defer func() {
		if r := recover(); r != nil {
			resp.Database = "❌ Error: " + truncate(fmt.Sprint(r), diagnosticErrorLength)
		}
	}()

	if h.repo == nil || !h.repo.Available() {
		return resp
	}

	resp.Database = "✅ Available"
	names, err := h.repo.CollectionNames(c.UserContext())
	if err != nil {
		resp.Database = "⚠️ Connected but Error: " + truncate(err.Error(), diagnosticErrorLength)
		return resp
	}
	if names != nil {
		resp.Collections = names
	}
	resp.Database = "✅ Connected & Working"
	resp.ConnectionStatus = "Connected"
	return resp
}

// HandleHealth is a lightweight health probe.
func (h *SystemHandler) HandleHealth(c *fiber.Ctx) error {
	database := "unavailable"
	if h.repo != nil && h.repo.Available() {
		database = "available"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":   "healthy",
		"time":     time.Now().Format(time.RFC3339),
		"database": database,
	})
}

func setStatus(set bool) string {
	if set {
		return "✅ Set"
	}
	return "❌ Not Set"
}
