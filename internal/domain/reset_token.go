package domain

import (
	"time"

	"github.com/google/uuid"
)

// PasswordResetToken is a single-use, time-boxed credential for resetting an
// account password. Expiry is checked at read time; no background sweeper is
// needed for correctness.
type PasswordResetToken struct {
	Token     string    `json:"-" gorm:"primary_key"`
	AccountID uuid.UUID `json:"-" gorm:"type:uuid;index;not null"`
	ExpiresAt time.Time `json:"-" gorm:"not null"`
	CreatedAt time.Time `json:"-"`

	// Relations
	Account *Account `json:"-" gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
}

func (t *PasswordResetToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
