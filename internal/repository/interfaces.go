package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/gdp/rpg-companion/internal/domain"
)

type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	Update(ctx context.Context, account *domain.Account) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CharacterRepository interface {
	Create(ctx context.Context, character *domain.Character) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Character, error)
	GetByIDAndMaster(ctx context.Context, id, masterID uuid.UUID) (*domain.Character, error)
	GetByPlayerUsername(ctx context.Context, username string) (*domain.Character, error)
	ListByMaster(ctx context.Context, masterID uuid.UUID) ([]*domain.Character, error)
	Update(ctx context.Context, character *domain.Character) error
	Delete(ctx context.Context, character *domain.Character) error
}

type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) error
	GetByIDAndMaster(ctx context.Context, id, masterID uuid.UUID) (*domain.Note, error)
	ListByMaster(ctx context.Context, masterID uuid.UUID) ([]*domain.Note, error)
	Update(ctx context.Context, note *domain.Note) error
	Delete(ctx context.Context, note *domain.Note) error
}

type DiceRollRepository interface {
	Create(ctx context.Context, roll *domain.DiceRoll) error
	ListByMaster(ctx context.Context, masterID uuid.UUID, limit int) ([]*domain.DiceRoll, error)
	ListByCharacter(ctx context.Context, characterID uuid.UUID, limit int) ([]*domain.DiceRoll, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ResetTokenRepository interface {
	Create(ctx context.Context, token *domain.PasswordResetToken) error
	Get(ctx context.Context, token string) (*domain.PasswordResetToken, error)
	Delete(ctx context.Context, token string) error
}

type Repositories struct {
	Account    AccountRepository
	Character  CharacterRepository
	Note       NoteRepository
	DiceRoll   DiceRollRepository
	Session    SessionRepository
	ResetToken ResetTokenRepository
}
