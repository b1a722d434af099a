package middleware

import (
	"github.com/gin-gonic/gin"
)

// CSRFProtection is intentionally a pass-through. The check was disabled in
// production after the token handshake broke the client, and the disabled
// state is preserved here so the gap stays visible instead of silently
// dropped.
//
// TODO: replace with a stateless double-submit token signed with the JWT
// secret, then re-enable verification for POST/PUT/DELETE.
func CSRFProtection() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
	}
}
