package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CategoryLabel string

const (
	CategoryVIP              CategoryLabel = "VIP"
	CategoryGeneralAdmission CategoryLabel = "General Admissions"
	CategoryEarlyBird        CategoryLabel = "Early Bird"
)

func (l CategoryLabel) Valid() bool {
	switch l {
	case CategoryVIP, CategoryGeneralAdmission, CategoryEarlyBird:
		return true
	}
	return false
}

// TicketCategory is the inventory ledger row for one purchasable class of
// ticket. MaxCount is the remaining (unsold) count and must never go
// negative; it only decreases through the purchase path.
type TicketCategory struct {
	ID       uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	EventID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"eventId"`
	Category CategoryLabel   `gorm:"not null" json:"category"`
	MaxCount int             `gorm:"not null;check:max_count >= 0" json:"maxCount"`
	Price    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
}

func (TicketCategory) TableName() string {
	return "ticket_categories"
}

func (category *TicketCategory) BeforeCreate(tx *gorm.DB) (err error) {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	return
}
