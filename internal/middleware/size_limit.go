package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"actualize-backend/internal/utilities"
)

var multipartOverhead = int64(8 * 1024) // rough padding

// SizeLimit function is a middleware that check if request body is larger than maxBodyBytes or not.
// A declared Content-Length over the limit is refused straight away, otherwise reads past the
// limit fail with http.MaxBytesError and the handler usually responds with 413 request entity too large.
func SizeLimit(maxBodyBytes int64) gin.HandlerFunc {
	limit := maxBodyBytes + multipartOverhead
	return func(c *gin.Context) {
		if c.Request.ContentLength > limit {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, utilities.ErrorResponse{
				Error: "Request body too large",
			})
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

		c.Next()
	}
}
