package handlers

import (
	"net/http"

	"github.com/juniel999/angular-nestjs-freedamn-sub000/internal/models"
	"github.com/juniel999/angular-nestjs-freedamn-sub000/internal/repositories"
	"github.com/juniel999/angular-nestjs-freedamn-sub000/internal/service"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postService *service.PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.GetPosts)
	g.GET("/posts/:id", h.GetPost)
	g.GET("/posts/mine", h.GetOwnPosts)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
}

// CreatePost creates a new post
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.postService.CreatePost(c.Request().Context(), userIDFromContext(c), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, post)
}

// GetPost retrieves a post by ID, counting the read as a view
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postService.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// GetPosts lists published posts with optional tag filter and sort order
func (h *PostHandler) GetPosts(c echo.Context) error {
	sort := repositories.PostSort(c.QueryParam("sort"))
	switch sort {
	case repositories.SortNewest, repositories.SortOldest, repositories.SortPopular:
	case "":
		sort = repositories.SortNewest
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid sort parameter")
	}

	posts, total, err := h.postService.ListPublished(c.Request().Context(), sort, c.QueryParam("filter"), paginationFromQuery(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"posts": posts,
		"total": total,
		"page":  paginationFromQuery(c).Page,
	})
}

// GetOwnPosts lists every post by the caller, drafts included
func (h *PostHandler) GetOwnPosts(c echo.Context) error {
	posts, err := h.postService.ListByAuthor(c.Request().Context(), userIDFromContext(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// UpdatePost updates an existing post
func (h *PostHandler) UpdatePost(c echo.Context) error {
	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.postService.UpdatePost(c.Request().Context(), c.Param("id"), userIDFromContext(c), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost deletes a post
func (h *PostHandler) DeletePost(c echo.Context) error {
	if err := h.postService.DeletePost(c.Request().Context(), c.Param("id"), userIDFromContext(c)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
