package handlers

import (
	"net/http"

	"github.com/juniel999/angular-nestjs-freedamn-sub000/internal/models"
	"github.com/juniel999/angular-nestjs-freedamn-sub000/internal/service"
	"github.com/labstack/echo/v4"
)

// TagHandler handles HTTP requests related to the tag vocabulary
type TagHandler struct {
	tagService *service.TagService
}

// NewTagHandler creates a new TagHandler
func NewTagHandler(tagService *service.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// RegisterPublicTagRoutes registers tag routes that do not require auth
func (h *TagHandler) RegisterPublicTagRoutes(g *echo.Group) {
	g.GET("/tags", h.ListTags)
	g.GET("/tags/:name", h.GetTag)
}

// RegisterTagRoutes registers authenticated tag routes
func (h *TagHandler) RegisterTagRoutes(g *echo.Group) {
	g.POST("/tags", h.EnsureTags)
	g.PUT("/tags/:id", h.RenameTag)
	g.PUT("/tags/:id/featured", h.SetFeatured)
	g.DELETE("/tags/:id", h.DeleteTag)
}

// ListTags returns all tags ordered by usage
func (h *TagHandler) ListTags(c echo.Context) error {
	tags, err := h.tagService.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, tags)
}

// GetTag looks up a single tag by name
func (h *TagHandler) GetTag(c echo.Context) error {
	tag, err := h.tagService.FindByName(c.Request().Context(), c.Param("name"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, tag)
}

type ensureTagsRequest struct {
	Names []string `json:"names" validate:"required,min=1,dive,min=1,max=40"`
}

// EnsureTags registers a batch of tag names, creating any that are new
func (h *TagHandler) EnsureTags(c echo.Context) error {
	var req ensureTagsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	tags, err := h.tagService.EnsureExists(c.Request().Context(), req.Names)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, tags)
}

// RenameTag renames a tag, rejecting names already taken by another tag
func (h *TagHandler) RenameTag(c echo.Context) error {
	var req models.RenameTagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	tag, err := h.tagService.Rename(c.Request().Context(), c.Param("id"), req.Name)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, tag)
}

type setFeaturedRequest struct {
	Featured *bool `json:"featured" validate:"required"`
}

// SetFeatured toggles a tag's featured flag
func (h *TagHandler) SetFeatured(c echo.Context) error {
	var req setFeaturedRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	tag, err := h.tagService.SetFeatured(c.Request().Context(), c.Param("id"), *req.Featured)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, tag)
}

// DeleteTag removes a tag from the vocabulary
func (h *TagHandler) DeleteTag(c echo.Context) error {
	if err := h.tagService.Remove(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
