package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// OK sends a 200 JSON response with data.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 JSON response with data.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// NoContent sends 204.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends 400 with error message and optional details.
func BadRequest(c *gin.Context, err string, details ...string) {
	c.JSON(http.StatusBadRequest, body(err, details))
}

// Unauthorized sends 401.
func Unauthorized(c *gin.Context, err string, details ...string) {
	c.JSON(http.StatusUnauthorized, body(err, details))
}

// Forbidden sends 403.
func Forbidden(c *gin.Context, err string, details ...string) {
	c.JSON(http.StatusForbidden, body(err, details))
}

// NotFound sends 404.
func NotFound(c *gin.Context, err string, details ...string) {
	c.JSON(http.StatusNotFound, body(err, details))
}

// Conflict sends 409.
func Conflict(c *gin.Context, err string, details ...string) {
	c.JSON(http.StatusConflict, body(err, details))
}

// Internal sends 500.
func Internal(c *gin.Context, err string, details ...string) {
	c.JSON(http.StatusInternalServerError, body(err, details))
}

func body(err string, details []string) ErrorBody {
	b := ErrorBody{Error: err}
	if len(details) > 0 {
		b.Details = details[0]
	}
	return b
}
