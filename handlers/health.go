package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mattilda/billing_backend/config"
	"github.com/mattilda/billing_backend/middlewares"
)

// Health reports liveness of the process plus reachability of the database
// and the cache store. A degraded dependency does not fail the endpoint.
func (h *Handler) Health(c *gin.Context) {
	databaseStatus := "ok"
	redisStatus := "ok"

	if db := config.GetDB(); db != nil {
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			databaseStatus = "error"
		}
	} else {
		databaseStatus = "error"
	}

	if rdb := config.GetRedisDB(); rdb != nil {
		if err := rdb.Ping(c.Request.Context()).Err(); err != nil {
			redisStatus = "error"
		}
	} else {
		redisStatus = "error"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"database":       databaseStatus,
		"redis":          redisStatus,
		"requests_total": middlewares.RequestsTotal(),
	})
}

func (h *Handler) Metrics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"requests_total": middlewares.RequestsTotal()})
}
