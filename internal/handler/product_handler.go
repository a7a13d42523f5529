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

// ProductHandler exposes the catalog over HTTP.
type ProductHandler struct {
	products *service.ProductService
}

func NewProductHandler(products *service.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// List handles retrieving all products
func (h *ProductHandler) List(c echo.Context) error {
	log := logger.FromContext(c)

	products, err := h.products.List(c.Request().Context())
	if err != nil {
		log.Error("Failed to list products", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve products",
		})
	}

	log.Info("Products retrieved successfully", zap.Int("count", len(products)))
	return c.JSON(http.StatusOK, products)
}

// ListByCategory handles retrieving products with an exact category match
func (h *ProductHandler) ListByCategory(c echo.Context) error {
	log := logger.FromContext(c)
	category := c.Param("category")

	products, err := h.products.ListByCategory(c.Request().Context(), category)
	if err != nil {
		log.Error("Failed to list products by category",
			zap.String("category", category),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve products",
		})
	}

	log.Info("Products retrieved by category",
		zap.String("category", category),
		zap.Int("count", len(products)))
	return c.JSON(http.StatusOK, products)
}

// Get handles retrieving a single product by ID
func (h *ProductHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	product, err := h.products.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			log.Warn("Product not found", zap.String("product_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Product not found",
			})
		}
		log.Error("Failed to get product",
			zap.String("product_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve product",
		})
	}

	return c.JSON(http.StatusOK, product)
}

// Create handles creating a new product
func (h *ProductHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var req model.ProductCreate
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	product, err := h.products.Create(c.Request().Context(), req)
	if err != nil {
		log.Error("Failed to create product",
			zap.String("name", req.Name),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create product",
		})
	}

	prometheus.RecordProductOperation("create")
	log.Info("Product created successfully",
		zap.String("product_id", product.ID),
		zap.String("name", product.Name),
		zap.Float64("price", product.Price))
	return c.JSON(http.StatusCreated, product)
}

// Update handles a partial update of an existing product
func (h *ProductHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var patch model.ProductPatch
	if err := c.Bind(&patch); err != nil {
		log.Error("Invalid request data",
			zap.String("product_id", id),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	product, err := h.products.Update(c.Request().Context(), id, patch)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			log.Warn("Product not found for update", zap.String("product_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Product not found",
			})
		}
		log.Error("Failed to update product",
			zap.String("product_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update product",
		})
	}

	prometheus.RecordProductOperation("update")
	log.Info("Product updated successfully",
		zap.String("product_id", id),
		zap.String("name", product.Name))
	return c.JSON(http.StatusOK, product)
}

// Delete handles deleting a product
func (h *ProductHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	if err := h.products.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			log.Warn("Product not found for deletion", zap.String("product_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Product not found",
			})
		}
		log.Error("Failed to delete product",
			zap.String("product_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete product",
		})
	}

	prometheus.RecordProductOperation("delete")
	log.Info("Product deleted successfully", zap.String("product_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Product deleted successfully",
	})
}

// ToggleFavorite flips the customer-facing favorite flag. No
// credential required; this is a public endpoint by design.
func (h *ProductHandler) ToggleFavorite(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	favorite, err := h.products.ToggleFavorite(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			log.Warn("Product not found for favorite toggle", zap.String("product_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Product not found",
			})
		}
		log.Error("Failed to toggle favorite",
			zap.String("product_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update favorite status",
		})
	}

	prometheus.RecordProductOperation("favorite")
	log.Info("Favorite status updated",
		zap.String("product_id", id),
		zap.Bool("isFavorite", favorite))
	return c.JSON(http.StatusOK, echo.Map{
		"message":    "Favorite status updated",
		"isFavorite": favorite,
	})
}
