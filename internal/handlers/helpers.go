package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/juniel999/angular-nestjs-freedamn-sub000/internal/models"
	"github.com/juniel999/angular-nestjs-freedamn-sub000/internal/service"
	"github.com/labstack/echo/v4"
)

// userIDFromContext extracts the authenticated user id set by the JWT
// middleware.
func userIDFromContext(c echo.Context) uint {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return 0
	}
	return claims.UserID
}

// paginationFromQuery reads page/limit query parameters with their defaults.
func paginationFromQuery(c echo.Context) service.Pagination {
	page, _ := strconv.ParseInt(c.QueryParam("page"), 10, 64)
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	if limit > 50 {
		limit = 50
	}
	return service.Pagination{Page: page, Limit: limit}.Normalize()
}

// httpError translates a domain error into the HTTP status its code maps to.
func httpError(err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case models.CodeNotFound:
			return echo.NewHTTPError(http.StatusNotFound, appErr.Message)
		case models.CodeForbidden:
			return echo.NewHTTPError(http.StatusForbidden, appErr.Message)
		case models.CodeConflict:
			return echo.NewHTTPError(http.StatusConflict, appErr.Message)
		case models.CodeInvalidState:
			return echo.NewHTTPError(http.StatusBadRequest, appErr.Message)
		case models.CodeValidation:
			return echo.NewHTTPError(http.StatusBadRequest, appErr.Message)
		}
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
