package domain

import (
	"time"

	"github.com/google/uuid"
)

// ValidDiceTypes is the closed set of supported dice.
var ValidDiceTypes = []int{4, 20, 100}

// Special effect labels for d20 rolls.
const (
	EffectCriticalSuccess = "critical_success"
	EffectCriticalFailure = "critical_failure"
)

// DiceRoll is an immutable record of one roll. There is no update or delete
// path; rows only ever disappear by cascade.
type DiceRoll struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	DiceType    int        `json:"dice_type" gorm:"not null"`
	Result      int        `json:"result" gorm:"not null"`
	MasterID    uuid.UUID  `json:"-" gorm:"type:uuid;index;not null"`
	CharacterID *uuid.UUID `json:"character_id" gorm:"type:uuid;index"`
	CreatedAt   time.Time  `json:"created_at"`
}

// IsValidDiceType reports whether d is one of the supported dice.
func IsValidDiceType(d int) bool {
	for _, v := range ValidDiceTypes {
		if v == d {
			return true
		}
	}
	return false
}

// SpecialEffect derives the critical label for a roll. Only a d20 can crit.
func SpecialEffect(diceType, result int) string {
	if diceType != 20 {
		return ""
	}
	switch result {
	case 20:
		return EffectCriticalSuccess
	case 1:
		return EffectCriticalFailure
	}
	return ""
}
