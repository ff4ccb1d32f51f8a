package handlers

import (
	"net/http"
	"strings"

	"github.com/juniel999/angular-nestjs-freedamn-sub000/internal/service"
	"github.com/labstack/echo/v4"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	feedService *service.FeedService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feedService *service.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feeds/for-you", h.GetForYouFeed)
	g.GET("/feeds/following", h.GetFollowingFeed)
	g.GET("/feeds/explore", h.GetExploreFeed)
	g.GET("/feeds/tag/:name", h.GetTagFeed)
}

// GetForYouFeed returns the personalized tag feed. A "tags" query parameter
// overrides the caller's stored preference.
func (h *FeedHandler) GetForYouFeed(c echo.Context) error {
	var override []string
	if raw := c.QueryParam("tags"); raw != "" {
		override = strings.Split(raw, ",")
	}

	page, err := h.feedService.ForYou(c.Request().Context(), userIDFromContext(c), override, paginationFromQuery(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, page)
}

// GetFollowingFeed returns posts authored by users the caller follows
func (h *FeedHandler) GetFollowingFeed(c echo.Context) error {
	page, err := h.feedService.Following(c.Request().Context(), userIDFromContext(c), paginationFromQuery(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, page)
}

// GetExploreFeed returns a random discovery page of published posts
func (h *FeedHandler) GetExploreFeed(c echo.Context) error {
	page, err := h.feedService.Explore(c.Request().Context(), paginationFromQuery(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, page)
}

// GetTagFeed returns all published posts under one canonical tag
func (h *FeedHandler) GetTagFeed(c echo.Context) error {
	page, err := h.feedService.ByTag(c.Request().Context(), c.Param("name"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, page)
}
