package handlers

import (
	"io"
	"net/http"

	"github.com/juniel999/angular-nestjs-freedamn-sub000/internal/storage"
	"github.com/labstack/echo/v4"
)

const maxUploadBytes = 8 << 20 // 8 MiB

// UploadHandler handles image uploads for posts
type UploadHandler struct {
	blobs storage.BlobStore
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(blobs storage.BlobStore) *UploadHandler {
	return &UploadHandler{blobs: blobs}
}

// RegisterUploadRoutes registers upload-related routes
func (h *UploadHandler) RegisterUploadRoutes(g *echo.Group) {
	g.POST("/uploads/images", h.UploadImage)
}

// UploadImage accepts a multipart "image" file and stores it, returning
// the public URL callers attach to posts.
func (h *UploadHandler) UploadImage(c echo.Context) error {
	file, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing image file")
	}
	if file.Size > maxUploadBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "Image too large")
	}

	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to open image file")
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxUploadBytes+1))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to read image file")
	}
	if int64(len(data)) > maxUploadBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "Image too large")
	}

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	url, err := h.blobs.Upload(c.Request().Context(), data, contentType, "posts")
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store image")
	}
	return c.JSON(http.StatusCreated, echo.Map{"url": url})
}
