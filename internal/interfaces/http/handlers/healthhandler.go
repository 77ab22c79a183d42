package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type HealthHandler struct {
	redisClient *redis.Client
}

func NewHealthHandler(redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{redisClient: redisClient}
}

// Check reports liveness plus redis reachability. Redis being down degrades
// caching and rate limiting but does not take the site down, so the endpoint
// still returns 200.
func (h *HealthHandler) Check(c *gin.Context) {
	redisStatus := "disabled"
	if h.redisClient != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()

		redisStatus = "up"
		if err := h.redisClient.Ping(ctx).Err(); err != nil {
			redisStatus = "down"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"redis":  redisStatus,
	})
}
