package models

import (
	"time"

	"github.com/google/uuid"
)

// AccessToken persists issued bearer tokens so they can be invalidated
// server-side. A user is intended to hold at most one non-invalidated token;
// login invalidates the previous one before inserting a replacement.
type AccessToken struct {
	Token                string    `gorm:"primary_key" json:"token"`
	UserID               uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	Expiry               time.Time `gorm:"not null" json:"expiry"`
	Invalidated          bool      `gorm:"not null;default:false" json:"invalidated"`
	UserAgent            string    `json:"userAgent"`
	RegistrationDatetime time.Time `gorm:"autoCreateTime" json:"registrationDatetime"`
}

func (AccessToken) TableName() string {
	return "access_token"
}
