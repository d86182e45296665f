package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mbayedev/partstore-api/pkg/pagination"
)

// GetUserID extracts the authenticated user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserRoles extracts the user roles from the Gin context
func GetUserRoles(c *gin.Context) []string {
	roles, exists := c.Get("user_roles")
	if !exists {
		return nil
	}
	return roles.([]string)
}

// parsePagination reads page/per_page query parameters
func parsePagination(c *gin.Context) *pagination.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{Page: page, PerPage: perPage}
	params.Validate()
	return params
}

// parseCursor reads cursor/direction/limit query parameters
func parseCursor(c *gin.Context) *pagination.CursorParams {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "15"))

	params := &pagination.CursorParams{
		Cursor:    c.Query("cursor"),
		Direction: pagination.CursorDirection(c.DefaultQuery("direction", "next")),
		Limit:     limit,
	}
	params.Validate()
	return params
}

// parseDate parses a query parameter in YYYY-MM-DD format
func parseDate(c *gin.Context, name string) *time.Time {
	value := c.Query(name)
	if value == "" {
		return nil
	}
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &date
}

// parseUUIDQuery parses a query parameter as a UUID
func parseUUIDQuery(c *gin.Context, name string) *uuid.UUID {
	value := c.Query(name)
	if value == "" {
		return nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil
	}
	return &id
}
