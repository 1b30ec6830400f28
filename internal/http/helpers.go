package http

import (
	"bytes"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/wordbook/internal/database/vocabulary"
	"github.com/mrlokans/wordbook/internal/entities"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context (validation errors, etc.)
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// PaginatedResponse wraps paginated data with metadata.
type PaginatedResponse struct {
	Data    any   `json:"data"`
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"hasMore"`
}

// Error codes reported in ErrorResponse.Code.
const (
	CodeInvalidRequest      = "invalid_request"
	CodeNotFound            = "not_found"
	CodeAlreadyExists       = "already_exists"
	CodeConstraintViolation = "constraint_violation"
	CodeUnknownEnumValue    = "unknown_enum_value"
	CodeStoreUnavailable    = "store_unavailable"
)

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message, Code: CodeInvalidRequest})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found", Code: CodeNotFound})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondStoreError maps repository errors onto status codes: constraint
// problems are the client's fault (422), data access failures mean the store
// is unavailable (503).
func respondStoreError(c *gin.Context, err error, context string) {
	var enumErr *entities.UnknownEnumValueError
	var constraintErr *entities.ConstraintError

	switch {
	case errors.Is(err, vocabulary.ErrAlreadyExists):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error(), Code: CodeAlreadyExists})
	case errors.As(err, &enumErr):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   err.Error(),
			Code:    CodeUnknownEnumValue,
			Details: gin.H{"enum": enumErr.Enum, "value": enumErr.Value},
		})
	case errors.As(err, &constraintErr):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   err.Error(),
			Code:    CodeConstraintViolation,
			Details: gin.H{"entity": constraintErr.Entity, "field": constraintErr.Field},
		})
	case errors.Is(err, entities.ErrConstraintViolation):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Code: CodeConstraintViolation})
	case errors.Is(err, entities.ErrDataAccess):
		log.Printf("Store unavailable (%s): %v", context, err)
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "store unavailable", Code: CodeStoreUnavailable})
	default:
		respondInternalError(c, err, context)
	}
}

// bindJSON decodes the request body into dst. Unknown enum literals are
// constraint violations, anything else that fails to decode is a bad
// request. It reports whether the handler may continue.
func bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	if errors.Is(err, entities.ErrConstraintViolation) {
		respondStoreError(c, err, "decode request")
		return false
	}
	respondBadRequest(c, "invalid JSON: "+err.Error())
	return false
}

// bindOptionalJSON is bindJSON for endpoints whose body may be omitted. The
// body is read rather than trusting ContentLength, which is -1 for chunked
// requests.
func bindOptionalJSON(c *gin.Context, dst any) bool {
	if c.Request.Body == nil {
		return true
	}
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondBadRequest(c, "failed to read request body")
		return false
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return true
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(data))
	return bindJSON(c, dst)
}

// --- Success Response Helpers ---

// respondSuccess sends a 200 OK response with a message.
func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, SuccessResponse{Message: message})
}

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// respondAccepted sends a 202 Accepted response (for async operations).
func respondAccepted(c *gin.Context, message string, data any) {
	c.JSON(http.StatusAccepted, SuccessResponse{Message: message, Data: data})
}

// --- Parameter Parsing ---

// requireIDParam returns the opaque string id from the URL. Ids are never
// parsed; only emptiness is rejected.
func requireIDParam(c *gin.Context, paramName string) (string, bool) {
	id := strings.TrimSpace(c.Param(paramName))
	if id == "" {
		respondBadRequest(c, paramName+" is required")
		return "", false
	}
	return id, true
}

// parsePagination reads limit and offset, falling back to the defaults for
// missing or out-of-range values.
func parsePagination(c *gin.Context, defaultLimit, maxLimit int) (limit, offset int) {
	limit = defaultLimit
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= maxLimit {
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

// parseOptionalBool returns nil when the query parameter is absent.
func parseOptionalBool(c *gin.Context, name string) (*bool, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		respondBadRequest(c, "invalid "+name)
		return nil, false
	}
	return &v, true
}

// parseOptionalInt returns nil when the query parameter is absent.
func parseOptionalInt(c *gin.Context, name string) (*int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		respondBadRequest(c, "invalid "+name)
		return nil, false
	}
	return &v, true
}
