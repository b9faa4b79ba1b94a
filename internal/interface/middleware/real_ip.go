package middleware

import (
	"github.com/gin-gonic/gin"
)

// RealIP stores the client address under "real_ip". It comes from
// c.ClientIP, so X-Forwarded-For and X-Real-IP only count when the TCP peer
// is one of the engine's trusted proxies (see gin.Engine.SetTrustedProxies).
// Engines must set that list explicitly: gin trusts every peer by default.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("real_ip", c.ClientIP())
		c.Next()
	}
}
