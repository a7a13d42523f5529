package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"storefront-service/internal/service"
	"storefront-service/pkg/logger"
)

// AdminHandler exposes the stats dashboard and the one-time catalog
// seeding endpoint.
type AdminHandler struct {
	stats *service.StatsService
	seed  *service.SeedService
}

func NewAdminHandler(stats *service.StatsService, seed *service.SeedService) *AdminHandler {
	return &AdminHandler{stats: stats, seed: seed}
}

// Stats handles the admin dashboard aggregate
func (h *AdminHandler) Stats(c echo.Context) error {
	log := logger.FromContext(c)

	stats, err := h.stats.Compute(c.Request().Context())
	if err != nil {
		log.Error("Failed to compute admin stats", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to compute stats",
		})
	}

	log.Info("Admin stats computed",
		zap.Int64("total_products", stats.TotalProducts),
		zap.Int64("total_orders", stats.TotalOrders),
		zap.Int64("pending_orders", stats.PendingOrders))
	return c.JSON(http.StatusOK, stats)
}

// InitializeData handles idempotent catalog seeding
func (h *AdminHandler) InitializeData(c echo.Context) error {
	log := logger.FromContext(c)

	inserted, err := h.seed.Initialize(c.Request().Context())
	if err != nil {
		if errors.Is(err, service.ErrAlreadySeeded) {
			log.Info("Sample data already exists, nothing inserted")
			return c.JSON(http.StatusOK, echo.Map{
				"message": "Sample data already exists",
			})
		}
		log.Error("Failed to seed sample data", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to initialize sample data",
		})
	}

	log.Info("Sample data inserted", zap.Int("count", inserted))
	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("Inserted %d sample products", inserted),
	})
}
