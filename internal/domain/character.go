package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Stat bounds enforced on every update path. Creation trusts the caller's
// seed values as-is; only updates clamp.
const (
	StatMin = 0
	StatMax = 100
)

// Character is a player-controlled sheet owned by a master Account. It
// carries an optional login sub-identity (player_username + hashed password)
// so the human behind the sheet can sign in independently.
type Character struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string         `json:"name" gorm:"not null"`
	Age       *int           `json:"age"`
	Money     int            `json:"money" gorm:"not null;default:0"`
	Health    int            `json:"health" gorm:"not null;default:100"`
	Mana      int            `json:"mana" gorm:"not null;default:50"`
	Vigor     int            `json:"vigor" gorm:"not null;default:75"`
	Items     datatypes.JSON `json:"items" gorm:"type:jsonb;default:'[]'"`
	Debuffs   datatypes.JSON `json:"debuffs" gorm:"type:jsonb;default:'[]'"`
	AvatarURL *string        `json:"avatar_url"`
	MasterID  uuid.UUID      `json:"master_id" gorm:"type:uuid;index;not null"`
	CreatedAt time.Time      `json:"created_at"`

	// Player login sub-identity. Username is unique across all characters
	// when set; postgres unique indexes ignore NULLs.
	PlayerUsername     *string `json:"player_username" gorm:"uniqueIndex"`
	PlayerPasswordHash string  `json:"-"`

	// Relations
	DiceRolls []DiceRoll `json:"-" gorm:"foreignKey:CharacterID;constraint:OnDelete:CASCADE"`
}

// SetItems replaces the item list wholesale.
func (c *Character) SetItems(items []string) error {
	if items == nil {
		items = []string{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	c.Items = datatypes.JSON(raw)
	return nil
}

// ItemList decodes the stored item list. Malformed or empty storage reads
// as an empty list, never an error.
func (c *Character) ItemList() []string {
	return decodeStringList(c.Items)
}

// SetDebuffs replaces the debuff list wholesale.
func (c *Character) SetDebuffs(debuffs []string) error {
	if debuffs == nil {
		debuffs = []string{}
	}
	raw, err := json.Marshal(debuffs)
	if err != nil {
		return err
	}
	c.Debuffs = datatypes.JSON(raw)
	return nil
}

// DebuffList decodes the stored debuff list.
func (c *Character) DebuffList() []string {
	return decodeStringList(c.Debuffs)
}

func decodeStringList(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil || list == nil {
		return []string{}
	}
	return list
}

// ClampStat forces a stat value into [StatMin, StatMax].
func ClampStat(v int) int {
	if v < StatMin {
		return StatMin
	}
	if v > StatMax {
		return StatMax
	}
	return v
}
