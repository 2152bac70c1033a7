package domain

import (
	"time"

	"github.com/google/uuid"
)

// Account is the game-master identity. It owns the roster and the campaign
// notes; deleting one takes its characters, notes and roll history with it.
type Account struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	IsMaster     bool      `json:"is_master" gorm:"not null;default:true"`
	CreatedAt    time.Time `json:"created_at"`

	// Relations
	Characters []Character `json:"-" gorm:"foreignKey:MasterID;constraint:OnDelete:CASCADE"`
	Notes      []Note      `json:"-" gorm:"foreignKey:MasterID;constraint:OnDelete:CASCADE"`
	DiceRolls  []DiceRoll  `json:"-" gorm:"foreignKey:MasterID;constraint:OnDelete:CASCADE"`
}
