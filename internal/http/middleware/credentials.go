package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// Credential is an opaque access credential, regardless of whether it
// arrived in a cookie or a bearer header.
type Credential string

// ExtractCredential is the single extraction step at the top of the guard:
// the access cookie wins, then the Authorization header. The transport never
// leaks past this function.
func ExtractCredential(c *gin.Context, cookieName string) (Credential, bool) {
	if cookieName != "" {
		if value, err := c.Cookie(cookieName); err == nil && value != "" {
			return Credential(value), true
		}
	}

	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return Credential(parts[1]), true
}
