// README: Request id middleware; propagates X-Request-ID into the request context.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"smartdrive/internal/observability"
)

const HeaderRequestID = "X-Request-ID"

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Header(HeaderRequestID, id)
		c.Request = c.Request.WithContext(observability.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}
