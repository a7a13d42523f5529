package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"storefront-service/internal/service"
	"storefront-service/pkg/logger"
	"storefront-service/prometheus"
)

// GalleryHandler exposes image upload and management over HTTP.
type GalleryHandler struct {
	gallery *service.GalleryService
}

func NewGalleryHandler(gallery *service.GalleryService) *GalleryHandler {
	return &GalleryHandler{gallery: gallery}
}

// Upload handles a multipart image upload from the admin
func (h *GalleryHandler) Upload(c echo.Context) error {
	log := logger.FromContext(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		log.Warn("Missing file in upload request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "File is required",
		})
	}

	src, err := fileHeader.Open()
	if err != nil {
		log.Error("Failed to open uploaded file", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to read uploaded file",
		})
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		log.Error("Failed to read uploaded file", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to read uploaded file",
		})
	}

	contentType := fileHeader.Header.Get("Content-Type")
	img, err := h.gallery.Upload(c.Request().Context(), data, contentType, fileHeader.Filename)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			log.Warn("Rejected non-image upload",
				zap.String("content_type", contentType),
				zap.String("filename", fileHeader.Filename))
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "File must be an image",
			})
		}
		log.Error("Failed to store uploaded image",
			zap.String("filename", fileHeader.Filename),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to upload image",
		})
	}

	prometheus.RecordGalleryOperation("upload")
	log.Info("Image uploaded successfully",
		zap.String("image_id", img.ID),
		zap.String("filename", img.Filename),
		zap.Int("size_bytes", len(data)))
	return c.JSON(http.StatusOK, echo.Map{
		"url":      img.URL,
		"filename": img.Filename,
	})
}

// List handles retrieving all gallery images, newest first
func (h *GalleryHandler) List(c echo.Context) error {
	log := logger.FromContext(c)

	images, err := h.gallery.List(c.Request().Context())
	if err != nil {
		log.Error("Failed to list gallery images", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve gallery images",
		})
	}

	log.Info("Gallery images retrieved", zap.Int("count", len(images)))
	return c.JSON(http.StatusOK, images)
}

// Delete handles removing an image record and its backing file
func (h *GalleryHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	if err := h.gallery.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			log.Warn("Gallery image not found", zap.String("image_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Image not found",
			})
		}
		log.Error("Failed to delete gallery image",
			zap.String("image_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete image",
		})
	}

	prometheus.RecordGalleryOperation("delete")
	log.Info("Gallery image deleted", zap.String("image_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Image deleted successfully",
	})
}
