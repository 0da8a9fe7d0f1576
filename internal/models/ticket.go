package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Ticket is an immutable purchase record. The unique index on
// (ticket_category_id, user_id) enforces one ticket per buyer per category
// at the storage layer, independent of any in-process checks.
type Ticket struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	EventID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"eventId"`
	UserID           uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_tickets_category_user" json:"userId"`
	TicketCategoryID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_tickets_category_user" json:"ticketCategoryId"`
	Price            decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	PurchasedAt      time.Time       `gorm:"not null" json:"purchasedAt"`
}

func (Ticket) TableName() string {
	return "tickets"
}

func (ticket *Ticket) BeforeCreate(tx *gorm.DB) (err error) {
	if ticket.ID == uuid.Nil {
		ticket.ID = uuid.New()
	}
	return
}
