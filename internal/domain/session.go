package domain

import (
	"time"

	"github.com/google/uuid"
)

type SessionKind string

const (
	SessionKindMaster SessionKind = "master"
	SessionKindPlayer SessionKind = "player"
)

// Session is a server-held authenticated identity, exactly one of master or
// player. Logging in as either kind issues a brand-new row and replaces the
// cookie, so a session never carries both identities at once.
type Session struct {
	ID          uuid.UUID   `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Kind        SessionKind `json:"kind" gorm:"not null"`
	AccountID   uuid.UUID   `json:"account_id" gorm:"type:uuid;index;not null"`
	CharacterID *uuid.UUID  `json:"character_id" gorm:"type:uuid"`
	ExpiresAt   time.Time   `json:"expires_at" gorm:"not null"`
	CreatedAt   time.Time   `json:"created_at"`

	// Relations
	Account *Account `json:"-" gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
}

func (s *Session) IsMaster() bool {
	return s != nil && s.Kind == SessionKindMaster
}

func (s *Session) IsPlayer() bool {
	return s != nil && s.Kind == SessionKindPlayer
}

func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// CanAccessCharacter reports whether this session may read the character or
// touch its status fields: the owning master, or the character itself.
func (s *Session) CanAccessCharacter(c *Character) bool {
	if s == nil || c == nil {
		return false
	}
	if s.IsMaster() {
		return c.MasterID == s.AccountID
	}
	return s.CharacterID != nil && *s.CharacterID == c.ID
}
