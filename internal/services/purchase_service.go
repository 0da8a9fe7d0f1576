package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/evandrht/festipass/internal/models"
)

// PurchaseService executes a ticket purchase as a single all-or-nothing
// transaction: duplicate check, category lookup, ticket insert and the
// conditional inventory decrement either all apply or none do.
//
// Correctness under concurrent callers does not rely on in-process locks.
// Two guards at the storage layer close the races left by naive sequential
// checks: the unique index on (ticket_category_id, user_id) rejects a
// duplicate that slips past the read, and the decrement only succeeds while
// max_count > 0, so the last seat can never be sold twice.
type PurchaseService struct {
	db         *gorm.DB
	categories *CategoryService
}

func NewPurchaseService(db *gorm.DB) *PurchaseService {
	return &PurchaseService{db: db, categories: NewCategoryService(db)}
}

// Purchase reserves one ticket in the given category for the given buyer.
// It returns ErrAlreadyPurchased, ErrInvalidCategory or ErrSoldOut as typed
// rejections with no partial writes; storage errors propagate unmodified.
func (s *PurchaseService) Purchase(ctx context.Context, categoryID, buyerID uuid.UUID) (*models.Ticket, error) {
	var purchased *models.Ticket

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Ticket
		err := tx.Where("ticket_category_id = ? AND user_id = ?", categoryID, buyerID).First(&existing).Error
		if err == nil {
			return ErrAlreadyPurchased
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var category models.TicketCategory
		if err := tx.Where("id = ?", categoryID).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidCategory
			}
			return err
		}

		if category.MaxCount <= 0 {
			return ErrSoldOut
		}

		ticket := models.Ticket{
			ID:               uuid.New(),
			EventID:          category.EventID,
			UserID:           buyerID,
			TicketCategoryID: categoryID,
			Price:            category.Price,
			PurchasedAt:      time.Now().UTC(),
		}
		if err := tx.Create(&ticket).Error; err != nil {
			// A concurrent purchase by the same buyer committed between our
			// read and this insert; the unique index catches it.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyPurchased
			}
			return err
		}

		if err := s.categories.DecrementAvailableTx(tx, categoryID); err != nil {
			return err
		}

		purchased = &ticket
		return nil
	})
	if err != nil {
		return nil, err
	}
	return purchased, nil
}
