package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fundfigures/internal/domain/dto"
	"github.com/guttosm/fundfigures/internal/logger"
)

// ErrorHandler converts errors attached to the Gin context via c.Error(...)
// into a standardized JSON error response.
//
// Behavior:
//   - Runs after the handler chain completes.
//   - If no errors were recorded, does nothing.
//   - Otherwise logs each recorded error and, if no response was written yet,
//     responds with 500 and a dto.ErrorResponse built from the last error.
//
// Handlers that already wrote a response (e.g. via AbortWithError) are left
// untouched; this middleware only covers errors that slipped through.
var ErrorHandler gin.HandlerFunc = func(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 {
		return
	}

	for _, ginErr := range c.Errors {
		logger.L().Error().
			Err(ginErr.Err).
			Str("path", c.Request.URL.Path).
			Msg("request error")
	}

	if !c.Writer.Written() {
		last := c.Errors.Last().Err
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", last))
	}
}

// AbortWithError records err on the context, logs it, and aborts the request
// with the given status and a standardized dto.ErrorResponse body.
//
// Parameters:
//   - c (*gin.Context): The request context.
//   - status (int): HTTP status code to respond with.
//   - message (string): Human-readable message for the response body.
//   - err (error): The underlying error; recorded on the context and logged.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	_ = c.Error(err)

	logger.L().Error().
		Err(err).
		Int("status", status).
		Str("path", c.Request.URL.Path).
		Msg(message)

	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
