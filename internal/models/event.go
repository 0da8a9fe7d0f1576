package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Event struct {
	ID               uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	Name             string           `gorm:"not null" json:"name"`
	Description      string           `json:"description"`
	StartTime        time.Time        `gorm:"not null" json:"startTime"`
	EndTime          time.Time        `gorm:"not null" json:"endTime"`
	Venue            string           `gorm:"not null" json:"venue"`
	CreatedBy        uuid.UUID        `gorm:"type:uuid;not null;index" json:"createdBy"`
	Creator          *User            `gorm:"foreignKey:CreatedBy" json:"-"`
	TicketCategories []TicketCategory `gorm:"foreignKey:EventID" json:"ticketCategories,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

func (Event) TableName() string {
	return "events"
}

func (event *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	return
}
