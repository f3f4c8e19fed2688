package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is a journal entry owned by an Account.
// Order drives display ordering only; it is neither unique nor contiguous.
// Position is the entry's index in the owning account's list and breaks Order ties.
type Message struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	AccountID uuid.UUID `json:"-" gorm:"type:char(36);not null;index"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	Order     int       `json:"order" gorm:"column:sort_order;not null;default:0"`
	Position  int       `json:"-" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"createdAt"`
}

// BeforeCreate sets UUID before creating the record.
func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
