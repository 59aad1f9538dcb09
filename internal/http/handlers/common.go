package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"warehouse/internal/domain"
	"warehouse/internal/http/middleware"
	"warehouse/internal/utils"

	"github.com/gin-gonic/gin"
)

// RespondError sends the standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	reqID := middleware.GetRequestID(c)
	payload := gin.H{
		"message":    message,
		"request_id": reqID,
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "empty body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}

// pageParams reads page/limit query params with the dashboard defaults.
func pageParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 200 {
		limit = 10
	}
	return page, limit
}

// paginationMeta is the meta block of every list response.
func paginationMeta(page, limit, total int) gin.H {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return gin.H{
		"current_page":   page,
		"items_per_page": limit,
		"total_items":    total,
		"total_pages":    totalPages,
	}
}

// dateQuery reads a YYYY-MM-DD query param; empty is fine, malformed is not.
func dateQuery(c *gin.Context, name string) (string, error) {
	raw := utils.TrimOrEmpty(c.Query(name))
	if raw == "" {
		return "", nil
	}
	if _, err := utils.ParseDate(raw); err != nil {
		return "", domain.ValidationError{Field: name, Msg: "must be YYYY-MM-DD"}
	}
	return raw, nil
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid id", err)
		return 0, false
	}
	return id, true
}
