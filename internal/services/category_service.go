package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/evandrht/festipass/internal/models"
)

// CategoryService owns the ticket category ledger: reads, bulk creation at
// event setup, administrative edits and the conditional inventory decrement
// used by the purchase path.
type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*models.TicketCategory, error) {
	var category models.TicketCategory
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCategory
		}
		return nil, err
	}
	return &category, nil
}

type CategoryInput struct {
	Category models.CategoryLabel `json:"category" binding:"required"`
	MaxCount int                  `json:"max_count" binding:"min=0"`
	Price    decimal.Decimal      `json:"price" binding:"required"`
}

// BulkCreate inserts the categories for a freshly created event. Not
// concurrency-sensitive; runs on whatever handle it is given so event
// creation can wrap it in a transaction.
func (s *CategoryService) BulkCreate(ctx context.Context, eventID uuid.UUID, inputs []CategoryInput) ([]models.TicketCategory, error) {
	categories := make([]models.TicketCategory, 0, len(inputs))
	for _, in := range inputs {
		categories = append(categories, models.TicketCategory{
			ID:       uuid.New(),
			EventID:  eventID,
			Category: in.Category,
			MaxCount: in.MaxCount,
			Price:    in.Price,
		})
	}
	if err := s.db.WithContext(ctx).Create(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Update applies an administrative correction to price and/or remaining
// count. This bypasses the purchase path on purpose: it is the only
// legitimate way a count may increase.
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, maxCount *int, price *decimal.Decimal) (*models.TicketCategory, error) {
	var category models.TicketCategory
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCategory
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if maxCount != nil {
		updates["max_count"] = *maxCount
	}
	if price != nil {
		updates["price"] = *price
	}
	if len(updates) == 0 {
		return &category, nil
	}

	if err := s.db.WithContext(ctx).Model(&category).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// DecrementAvailableTx performs the atomic conditional decrement inside an
// existing transaction. Zero rows affected means the inventory was already
// exhausted and the caller must abort; the guard makes the check-then-act
// race impossible regardless of how many processes run concurrently.
func (s *CategoryService) DecrementAvailableTx(tx *gorm.DB, id uuid.UUID) error {
	result := tx.Model(&models.TicketCategory{}).
		Where("id = ? AND max_count > 0", id).
		UpdateColumn("max_count", gorm.Expr("max_count - 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSoldOut
	}
	return nil
}
