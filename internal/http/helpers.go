package http

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/meninleo/goodreads/internal/auth"
	"github.com/meninleo/goodreads/internal/entities"
)

// --- Response Types ---

// ErrorBody is the single error envelope every endpoint uses; Code mirrors
// the HTTP status.
type ErrorBody struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// WorkflowResponse reports the outcome of a workflow action (invitations,
// merges) that produces no resource body.
type WorkflowResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// PaginatedResponse wraps paginated data with metadata.
type PaginatedResponse struct {
	Data    any   `json:"data"`
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"has_more"`
}

// --- Error Response Helpers ---

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: ErrorBody{Message: message, Code: status}})
}

func respondBadRequest(c *gin.Context, message string) {
	respondError(c, http.StatusBadRequest, message)
}

func respondNotFound(c *gin.Context, resource string) {
	respondError(c, http.StatusNotFound, resource+" not found")
}

func respondForbidden(c *gin.Context) {
	respondError(c, http.StatusForbidden, "forbidden")
}

func respondNotImplemented(c *gin.Context) {
	respondError(c, http.StatusNotImplemented, "not implemented")
}

// respondInternalError logs the error and sends a generic 500; internals
// are never leaked to the caller.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	respondError(c, http.StatusInternalServerError, "internal server error")
}

// --- Success Response Helpers ---

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

func respondWorkflowSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, WorkflowResponse{Status: "success", Message: message})
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL
// parameters. Responds with 400 and returns false on malformed input.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// parsePagination reads limit/offset query parameters with the usual
// defaults (limit 50, capped at 100).
func parsePagination(c *gin.Context) (limit, offset int) {
	limit = 50
	offset = 0

	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}
	return limit, offset
}

// parseDate parses a YYYY-MM-DD value into a date-only column type.
func parseDate(value string) (*datatypes.Date, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	date := datatypes.Date(t)
	return &date, nil
}

// currentProfile returns the authenticated profile, responding 401 when the
// context carries none.
func currentProfile(c *gin.Context) (*entities.UserProfile, bool) {
	profile := auth.CurrentProfile(c)
	if profile == nil {
		respondError(c, http.StatusUnauthorized, "authentication required")
		return nil, false
	}
	return profile, true
}
