package handlers

import (
	"net/http"
	"strconv"

	"github.com/juniel999/angular-nestjs-freedamn-sub000/internal/models"
	"github.com/juniel999/angular-nestjs-freedamn-sub000/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles HTTP requests related to the social graph
type FollowHandler struct {
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		userRepository:   userRepo,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.Follow)
	g.DELETE("/users/:id/follow", h.Unfollow)
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
}

func (h *FollowHandler) targetUserID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	return uint(id), nil
}

// Follow makes the caller follow another user
func (h *FollowHandler) Follow(c echo.Context) error {
	targetID, err := h.targetUserID(c)
	if err != nil {
		return err
	}
	callerID := userIDFromContext(c)
	if callerID == targetID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot follow yourself")
	}

	if _, err := h.userRepository.GetUserByID(targetID); err != nil {
		return httpError(err)
	}

	following, err := h.followRepository.IsFollowing(callerID, targetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if following {
		return echo.NewHTTPError(http.StatusConflict, "Already following this user")
	}

	follow := &models.Follow{FollowerID: callerID, FollowingID: targetID}
	if err := h.followRepository.CreateFollow(follow); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, follow)
}

// Unfollow makes the caller unfollow another user
func (h *FollowHandler) Unfollow(c echo.Context) error {
	targetID, err := h.targetUserID(c)
	if err != nil {
		return err
	}

	if err := h.followRepository.DeleteFollow(userIDFromContext(c), targetID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetFollowers lists the users following the given user
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	targetID, err := h.targetUserID(c)
	if err != nil {
		return err
	}

	users, err := h.followRepository.GetFollowers(targetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, compactUsers(users))
}

// GetFollowing lists the users the given user follows
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	targetID, err := h.targetUserID(c)
	if err != nil {
		return err
	}

	users, err := h.followRepository.GetFollowing(targetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, compactUsers(users))
}

func compactUsers(users []models.User) []models.UserCompact {
	out := make([]models.UserCompact, len(users))
	for i := range users {
		out[i] = users[i].ToCompact()
	}
	return out
}
