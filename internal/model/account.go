package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account represents a registered journal user and its credentials.
type Account struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name         string    `json:"name" gorm:"size:100;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Gender       string    `json:"gender" gorm:"size:64;not null"`
	Timezone     string    `json:"timezone" gorm:"size:64;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	CreatedAt    time.Time `json:"createdAt" gorm:"not null"`

	// Relations
	Messages []Message `json:"userMessages" gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets UUID and creation time before creating the record.
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	return nil
}

// AccountView is the sanitized representation returned to clients.
type AccountView struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Gender       string    `json:"gender"`
	Timezone     string    `json:"timezone"`
	UserMessages []Message `json:"userMessages"`
	CreatedAt    time.Time `json:"createdAt"`
}

// View strips the password hash from the account.
func (a *Account) View() *AccountView {
	messages := a.Messages
	if messages == nil {
		messages = []Message{}
	}
	return &AccountView{
		ID:           a.ID,
		Name:         a.Name,
		Email:        a.Email,
		Gender:       a.Gender,
		Timezone:     a.Timezone,
		UserMessages: messages,
		CreatedAt:    a.CreatedAt,
	}
}
