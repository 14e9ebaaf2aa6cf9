package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hodgins-insurance/quoteserver/config"
)

// CORS restricts cross-origin requests to the configured frontend origins.
// Requests without an Origin header (curl, server-to-server) pass through,
// and development mode allows any origin.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		cfg := config.App

		allowed := origin == "" || cfg == nil || !cfg.IsProduction()
		if !allowed {
			for _, u := range cfg.FrontendURLs {
				if stripScheme(origin) == stripScheme(u) {
					allowed = true
					break
				}
			}
		}

		if !allowed {
			c.AbortWithStatusJSON(403, gin.H{
				"success": false,
				"error":   "Not allowed by CORS",
			})
			return
		}

		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func stripScheme(url string) string {
	url = strings.TrimPrefix(url, "https://")
	url = strings.TrimPrefix(url, "http://")
	return strings.TrimSuffix(url, "/")
}
