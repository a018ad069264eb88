// Package middleware holds the gin middleware shared by every route.
package middleware

import (
	"net/http"

	"jobs-radius-api/internal/errs"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ErrorHandler writes the response for errors handlers attached with c.Error.
// Request errors are answered with their own status and message, anything else with a 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		if reqErr, ok := errs.AsRequestError(err); ok {
			c.JSON(reqErr.Status, gin.H{"error": reqErr.Message})
			return
		}

		log.Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
