package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hodgins-insurance/quoteserver/config"
)

// The API speaks one envelope: {"success": true, "message": ..., ...} on the
// happy path and {"success": false, "error": ..., "details": ...} otherwise.

// Success sends a 200 response with the given message and extra fields.
func Success(c *gin.Context, message string, extra gin.H) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// Created sends a 201 response with the given message and extra fields.
func Created(c *gin.Context, message string, extra gin.H) {
	body := gin.H{"success": true, "message": message}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusCreated, body)
}

// Error sends an error response with the standard envelope.
func Error(c *gin.Context, statusCode int, errMsg string, details interface{}) {
	body := gin.H{"success": false, "error": errMsg}
	if details != nil {
		body["details"] = details
	}
	c.JSON(statusCode, body)
}

// BadRequest sends a 400 Bad Request response.
func BadRequest(c *gin.Context, errMsg string, details interface{}) {
	Error(c, http.StatusBadRequest, errMsg, details)
}

// NotFound sends a 404 Not Found response.
func NotFound(c *gin.Context, errMsg string) {
	Error(c, http.StatusNotFound, errMsg, nil)
}

// InternalServerError sends a 500 response. The underlying error detail is
// only exposed outside production mode.
func InternalServerError(c *gin.Context, errMsg string, err error) {
	if err != nil && config.App != nil && !config.App.IsProduction() {
		Error(c, http.StatusInternalServerError, errMsg, err.Error())
		return
	}
	Error(c, http.StatusInternalServerError, errMsg, nil)
}
