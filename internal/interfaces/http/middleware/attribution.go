package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	attributiondomain "rosmarino/internal/domain/attribution"
	"rosmarino/internal/infrastructure/attribution"
)

// Attribution captures the visitor acquisition record on page requests
// carrying a recognized parameter (ref or utm_source). First write wins: an
// existing non-expired record is never overwritten. Capture is best-effort
// and never blocks the request.
func Attribution(store attribution.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == "GET" {
			rec := attributiondomain.FromQuery(c.Request.URL.Query(), c.Request.URL.Path, time.Now())
			if rec != nil && store.Read(c) == nil {
				store.Write(c, rec)
			}
		}
		c.Next()
	}
}
