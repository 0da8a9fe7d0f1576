package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/evandrht/festipass/internal/middleware"
	"github.com/evandrht/festipass/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.TicketCategory{},
		&models.Ticket{},
		&models.AccessToken{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	user := models.User{
		Email:        fmt.Sprintf("%s@example.com", uuid.NewString()),
		PasswordHash: "hash",
		FirstName:    "Test",
		LastName:     "User",
		PhoneNumber:  "+1234567890",
		Country:      "US",
		IsActive:     true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedEvent(t *testing.T, db *gorm.DB, creator uuid.UUID) models.Event {
	t.Helper()
	event := models.Event{
		Name:        "Summer Fest",
		Description: "an outdoor festival",
		StartTime:   time.Now().Add(24 * time.Hour),
		EndTime:     time.Now().Add(30 * time.Hour),
		Venue:       "Main Arena",
		CreatedBy:   creator,
	}
	require.NoError(t, db.Create(&event).Error)
	return event
}

func seedCategory(t *testing.T, db *gorm.DB, eventID uuid.UUID, maxCount int) models.TicketCategory {
	t.Helper()
	category := models.TicketCategory{
		EventID:  eventID,
		Category: models.CategoryGeneralAdmission,
		MaxCount: maxCount,
		Price:    decimal.NewFromFloat(49.99),
	}
	require.NoError(t, db.Create(&category).Error)
	return category
}

// newTestRouter wires the handlers behind the real database middleware and a
// stub auth layer that injects the given user id.
func newTestRouter(db *gorm.DB, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.DatabaseMiddleware(db))
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})

	r.GET("/v1/events", ListEvents)
	r.GET("/v1/events/:id", GetEvent)
	r.POST("/v1/events", CreateEvent)
	r.PUT("/v1/events/:id", UpdateEvent)
	r.GET("/v1/events/:id/tickets", GetEventTickets)
	r.GET("/v1/users/:id/tickets", GetUserPurchasedTickets)
	r.PUT("/v1/ticket-categories/:id", UpdateTicketCategory)
	r.POST("/v1/tickets/purchase", PurchaseTicket)
	r.GET("/v1/tickets/:id/qr", GenerateTicketQR)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
