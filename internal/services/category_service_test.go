package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/evandrht/festipass/internal/models"
)

func TestBulkCreateCategories(t *testing.T) {
	db := setupTestDB(t)
	organizer := seedUser(t, db)
	event := models.Event{
		Name:      "Launch Party",
		StartTime: time.Now().Add(24 * time.Hour),
		EndTime:   time.Now().Add(28 * time.Hour),
		Venue:     "Warehouse 12",
		CreatedBy: organizer.ID,
	}
	require.NoError(t, db.Create(&event).Error)

	svc := NewCategoryService(db)
	created, err := svc.BulkCreate(context.Background(), event.ID, []CategoryInput{
		{Category: models.CategoryVIP, MaxCount: 20, Price: decimal.NewFromInt(200)},
		{Category: models.CategoryGeneralAdmission, MaxCount: 100, Price: decimal.NewFromInt(80)},
		{Category: models.CategoryEarlyBird, MaxCount: 50, Price: decimal.NewFromInt(60)},
	})
	require.NoError(t, err)
	require.Len(t, created, 3)

	for _, category := range created {
		assert.Equal(t, event.ID, category.EventID)
		assert.NotEqual(t, uuid.Nil, category.ID)
	}

	var count int64
	require.NoError(t, db.Model(&models.TicketCategory{}).Where("event_id = ?", event.ID).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestUpdateCategoryPartialFields(t *testing.T) {
	db := setupTestDB(t)
	category := seedCategory(t, db, 10)
	svc := NewCategoryService(db)

	newCount := 25
	updated, err := svc.Update(context.Background(), category.ID, &newCount, nil)
	require.NoError(t, err)
	assert.Equal(t, 25, updated.MaxCount)
	assert.True(t, updated.Price.Equal(category.Price), "price must be untouched")

	newPrice := decimal.NewFromFloat(59.99)
	updated, err = svc.Update(context.Background(), category.ID, nil, &newPrice)
	require.NoError(t, err)
	assert.Equal(t, 25, updated.MaxCount)
	assert.True(t, updated.Price.Equal(newPrice))
}

func TestUpdateCategoryNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCategoryService(db)

	newCount := 5
	_, err := svc.Update(context.Background(), uuid.New(), &newCount, nil)
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestGetByID(t *testing.T) {
	db := setupTestDB(t)
	category := seedCategory(t, db, 3)
	svc := NewCategoryService(db)

	found, err := svc.GetByID(context.Background(), category.ID)
	require.NoError(t, err)
	assert.Equal(t, category.ID, found.ID)

	_, err = svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestDecrementAvailableStopsAtZero(t *testing.T) {
	db := setupTestDB(t)
	category := seedCategory(t, db, 2)
	svc := NewCategoryService(db)

	err := db.Transaction(func(tx *gorm.DB) error {
		return svc.DecrementAvailableTx(tx, category.ID)
	})
	require.NoError(t, err)
	err = db.Transaction(func(tx *gorm.DB) error {
		return svc.DecrementAvailableTx(tx, category.ID)
	})
	require.NoError(t, err)

	err = db.Transaction(func(tx *gorm.DB) error {
		return svc.DecrementAvailableTx(tx, category.ID)
	})
	assert.ErrorIs(t, err, ErrSoldOut)

	// Never negative.
	assert.Equal(t, 0, remainingCount(t, db, category.ID))
}
