package middleware

import (
	"net/http"
	"strings"

	"movi/internal/domain"

	"github.com/gin-gonic/gin"
)

const (
	roleKey     = "userRole"
	operatorKey = "operator"
)

// TokenParser validates a bearer token.
type TokenParser func(raw string) (domain.RequestContext, error)

// Auth reads "Authorization: Bearer <token>". When required is false a
// missing or invalid token is ignored and the request continues
// anonymously; otherwise it is rejected with 401.
func Auth(parse TokenParser, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c.GetHeader("Authorization"))
		if raw != "" && parse != nil {
			if rc, err := parse(raw); err == nil {
				c.Set(roleKey, rc.Role)
				c.Set(operatorKey, rc)
				c.Next()
				return
			}
		}
		if required {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "unauthorized: token tidak valid atau tidak ada",
				"code":       "unauthorized",
				"request_id": GetRequestID(c),
			})
			return
		}
		c.Next()
	}
}

// GetOperator returns the authenticated operator, if any.
func GetOperator(c *gin.Context) (domain.RequestContext, bool) {
	v, ok := c.Get(operatorKey)
	if !ok {
		return domain.RequestContext{}, false
	}
	rc, ok := v.(domain.RequestContext)
	return rc, ok
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
