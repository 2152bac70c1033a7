package domain

import (
	"time"

	"github.com/google/uuid"
)

// Note is a free-text campaign note. Master-only: no character ever sees
// notes, and lookups are always scoped by (id, master_id) so a foreign note
// is indistinguishable from a missing one.
type Note struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title     string    `json:"title" gorm:"not null"`
	Content   string    `json:"content" gorm:"not null"`
	Theme     string    `json:"theme"`
	MasterID  uuid.UUID `json:"-" gorm:"type:uuid;index;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
