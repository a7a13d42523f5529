package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"storefront-service/internal/model"
	"storefront-service/internal/service"
	"storefront-service/pkg/logger"
	"storefront-service/prometheus"
)

// OrderStatusUpdate is the body for admin status changes.
type OrderStatusUpdate struct {
	Status model.OrderStatus `json:"status"`
}

// OrderHandler exposes checkout and fulfillment over HTTP. Checkout
// and reads are public; status changes sit behind the admin guard.
type OrderHandler struct {
	orders *service.OrderService
}

func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// Create handles customer checkout
func (h *OrderHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var req model.OrderCreate
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	order, err := h.orders.Create(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			log.Warn("Rejected order", zap.Error(err))
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": err.Error(),
			})
		}
		log.Error("Failed to create order",
			zap.String("customer_name", req.CustomerName),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create order",
		})
	}

	prometheus.RecordOrderOperation("create")
	prometheus.RecordOrderTotal(order.Total)
	log.Info("Order created successfully",
		zap.String("order_id", order.ID),
		zap.String("customer_name", order.CustomerName),
		zap.Int("items", len(order.CartItems)),
		zap.Float64("total", order.Total))
	return c.JSON(http.StatusCreated, order)
}

// List handles retrieving all orders, newest first
func (h *OrderHandler) List(c echo.Context) error {
	log := logger.FromContext(c)

	orders, err := h.orders.List(c.Request().Context())
	if err != nil {
		log.Error("Failed to list orders", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve orders",
		})
	}

	log.Info("Orders retrieved successfully", zap.Int("count", len(orders)))
	return c.JSON(http.StatusOK, orders)
}

// Get handles retrieving a single order by ID
func (h *OrderHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	order, err := h.orders.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			log.Warn("Order not found", zap.String("order_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Order not found",
			})
		}
		log.Error("Failed to get order",
			zap.String("order_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve order",
		})
	}

	return c.JSON(http.StatusOK, order)
}

// UpdateStatus handles admin status changes
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req OrderStatusUpdate
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data",
			zap.String("order_id", id),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	if err := h.orders.UpdateStatus(c.Request().Context(), id, req.Status); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			log.Warn("Order not found for status update", zap.String("order_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Order not found",
			})
		}
		if errors.Is(err, service.ErrInvalidInput) {
			log.Warn("Rejected status update",
				zap.String("order_id", id),
				zap.Error(err))
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": err.Error(),
			})
		}
		log.Error("Failed to update order status",
			zap.String("order_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update order status",
		})
	}

	prometheus.RecordOrderOperation("status_update")
	log.Info("Order status updated",
		zap.String("order_id", id),
		zap.String("status", string(req.Status)))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Order status updated",
		"status":  req.Status,
	})
}

// ListByStatus handles retrieving orders in one status, newest first
func (h *OrderHandler) ListByStatus(c echo.Context) error {
	log := logger.FromContext(c)
	status := model.OrderStatus(c.Param("status"))

	orders, err := h.orders.ListByStatus(c.Request().Context(), status)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			log.Warn("Unknown order status filter", zap.String("status", string(status)))
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": err.Error(),
			})
		}
		log.Error("Failed to list orders by status",
			zap.String("status", string(status)),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve orders",
		})
	}

	log.Info("Orders retrieved by status",
		zap.String("status", string(status)),
		zap.Int("count", len(orders)))
	return c.JSON(http.StatusOK, orders)
}
