package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"porttariff/internal/service"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	rules service.RulesService
	db    *sqlx.DB
}

// NewHealthHandler creates a new HealthHandler. db is nil unless rules are
// stored in Postgres.
func NewHealthHandler(rules service.RulesService, db *sqlx.DB) *HealthHandler {
	return &HealthHandler{rules: rules, db: db}
}

// Liveness handles GET / and GET /healthz
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// Readiness handles GET /readyz
// @Summary Readiness probe
// @Description Reports whether the rules store is reachable and whether rules are cached.
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	loaded := h.rules.Loaded()
	if h.db != nil {
		if err := h.db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, HealthResponse{
				Status:      "unavailable",
				RulesLoaded: &loaded,
				Error:       "database not reachable",
			})
			return
		}
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", RulesLoaded: &loaded})
}
