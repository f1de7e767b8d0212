// Package handler provides HTTP handlers for platform-level endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MarketCounter reports how many markets are held in memory.
type MarketCounter interface {
	Loaded() int
}

// Health returns the /healthz handler. GET responses carry the number of loaded
// markets when counter is not nil. Responses are never cached.
func Health(counter MarketCounter) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")

		switch c.Request.Method {
		case http.MethodHead:
			c.Status(http.StatusOK)
		case http.MethodOptions:
			c.Status(http.StatusNoContent)
		default:
			body := gin.H{"status": "ok"}
			if counter != nil {
				body["markets"] = counter.Loaded()
			}
			c.JSON(http.StatusOK, body)
		}
	}
}
