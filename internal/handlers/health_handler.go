package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/evandrht/festipass/config"
)

func HealthCheck(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    cfg.ServiceName,
			"version": cfg.Version,
			"db": gin.H{
				"host":   cfg.DBHost,
				"port":   cfg.DBPort,
				"dbName": cfg.DBName,
				"usn":    cfg.DBUser,
			},
			"time": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
