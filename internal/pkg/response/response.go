package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mx-space/folio/internal/pkg/apperr"
)

// Pagination metadata returned with paginated responses.
type Pagination struct {
	Total       int64 `json:"total"`
	CurrentPage int   `json:"currentPage"`
	TotalPage   int   `json:"totalPage"`
	Size        int   `json:"size"`
	HasNextPage bool  `json:"hasNextPage"`
}

// pagedResponse is the envelope for paginated list responses.
type pagedResponse struct {
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// OK sends a 200 response with data as the body. A nil pointer is sent as
// JSON null, which is how an absent singleton is reported.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Paged sends a paginated response.
func Paged(c *gin.Context, data interface{}, pagination Pagination) {
	c.JSON(http.StatusOK, pagedResponse{
		Data:       data,
		Pagination: pagination,
	})
}

// Success acknowledges a mutation that has no resource to return.
func Success(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"ok": 0, "code": status, "message": message})
}

// BadRequest sends a 400 error response.
func BadRequest(c *gin.Context, message string) {
	abort(c, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 error response.
func Unauthorized(c *gin.Context) {
	abort(c, http.StatusUnauthorized, "Unauthorized")
}

// UnauthorizedMsg sends a 401 error response with a custom message.
func UnauthorizedMsg(c *gin.Context, message string) {
	abort(c, http.StatusUnauthorized, message)
}

// NotFound sends a 404 error response.
func NotFound(c *gin.Context) {
	abort(c, http.StatusNotFound, "Not Found")
}

// NotFoundMsg sends a 404 error with a custom message.
func NotFoundMsg(c *gin.Context, message string) {
	abort(c, http.StatusNotFound, message)
}

// MethodNotAllowed sends a 405 error response.
func MethodNotAllowed(c *gin.Context) {
	abort(c, http.StatusMethodNotAllowed, "Method Not Allowed")
}

// Conflict sends a 409 error response.
func Conflict(c *gin.Context, message string) {
	abort(c, http.StatusConflict, message)
}

// TooManyRequests sends a 429 error response.
func TooManyRequests(c *gin.Context) {
	abort(c, http.StatusTooManyRequests, "Too Many Requests")
}

// InternalError sends a 500 with a generic message. err is attached to the
// gin context so the request logger records it.
func InternalError(c *gin.Context, err error, message string) {
	if err != nil {
		_ = c.Error(err)
	}
	if message == "" {
		message = "Internal Server Error"
	}
	abort(c, http.StatusInternalServerError, message)
}

// Error maps err onto the status its kind calls for. fallback is the message
// used for unexpected failures.
func Error(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		BadRequest(c, apperr.Message(err, "Bad Request"))
	case errors.Is(err, apperr.ErrAuth):
		UnauthorizedMsg(c, apperr.Message(err, "Unauthorized"))
	case errors.Is(err, apperr.ErrNotFound):
		NotFoundMsg(c, apperr.Message(err, "Not Found"))
	case errors.Is(err, apperr.ErrConflict):
		Conflict(c, apperr.Message(err, "Conflict"))
	default:
		InternalError(c, err, fallback)
	}
}
