package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
)

// readyTimeout bounds the readiness ping against the store.
const readyTimeout = 2 * time.Second

// HealthHandler serves the liveness and readiness endpoints used by load
// balancers and monitoring.
type HealthHandler struct {
	client *mongo.Client
}

// NewHealthHandler constructs a HealthHandler over the mongo client.
func NewHealthHandler(client *mongo.Client) *HealthHandler {
	return &HealthHandler{client: client}
}

// Health handles GET /health. It only reports that the process is up.
func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Ready handles GET /ready. It pings the document store and reports 503
// when the store does not answer within the timeout.
func (h *HealthHandler) Ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readyTimeout)
	defer cancel()

	if err := h.client.Ping(ctx, nil); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}
