package server

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/evandrht/festipass/config"
	"github.com/evandrht/festipass/internal/handlers"
	"github.com/evandrht/festipass/internal/middleware"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	rdb := config.InitRedis(cfg)

	r := gin.Default()

	setupRoutes(r, db, rdb, cfg)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return r.Run(":" + port)
}

func setupRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {
	r.Use(middleware.DatabaseMiddleware(db))

	public := r.Group("/v1")
	{
		public.GET("/health", handlers.HealthCheck(cfg))
		public.POST("/register", handlers.Register)
		public.POST("/login", handlers.Login)

		eventPublic := public.Group("/events")
		{
			eventPublic.GET("", handlers.ListEvents)
			eventPublic.GET("/:id", handlers.GetEvent)
		}
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware())
	{
		eventProtected := protected.Group("/events")
		{
			eventProtected.POST("", handlers.CreateEvent)
			eventProtected.PUT("/:id", handlers.UpdateEvent)
			eventProtected.GET("/:id/tickets", handlers.GetEventTickets)
		}

		protected.PUT("/ticket-categories/:id", handlers.UpdateTicketCategory)
		protected.GET("/users/:id/tickets", handlers.GetUserPurchasedTickets)

		ticketProtected := protected.Group("/tickets")
		{
			ticketProtected.POST("/purchase", middleware.RateLimitMiddleware(rdb, 10, time.Minute), handlers.PurchaseTicket)
			ticketProtected.GET("/:id/qr", handlers.GenerateTicketQR)
		}
	}
}
