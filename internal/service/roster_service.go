package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gdp/rpg-companion/internal/domain"
	"github.com/gdp/rpg-companion/internal/repository"
)

var (
	ErrNameRequired        = errors.New("character name is required")
	ErrPlayerUsernameTaken = errors.New("player username already in use")
)

// usernameRetries bounds the insert-retry loop when a derived player
// username collides. Each retry draws a fresh numeric suffix.
const usernameRetries = 3

type RosterService struct {
	characterRepo repository.CharacterRepository
}

func NewRosterService(characterRepo repository.CharacterRepository) *RosterService {
	return &RosterService{characterRepo: characterRepo}
}

type CreateCharacterInput struct {
	Name           string
	Age            *int
	Money          *int
	Health         *int
	Mana           *int
	Vigor          *int
	Items          []string
	Debuffs        []string
	AvatarURL      *string
	PlayerUsername string
}

type UpdateCharacterInput struct {
	Name           *string
	Age            *int
	Money          *int
	Health         *int
	Mana           *int
	Vigor          *int
	Items          []string
	Debuffs        []string
	AvatarURL      *string
	PlayerUsername *string
	PlayerPassword *string
}

type StatusInput struct {
	Health *int
	Mana   *int
	Vigor  *int
}

func (s *RosterService) List(ctx context.Context, masterID uuid.UUID) ([]*domain.Character, error) {
	return s.characterRepo.ListByMaster(ctx, masterID)
}

// Create builds a character with a player login sub-identity. The generated
// password is returned in plaintext exactly once; only its hash is stored.
// Seed stats are trusted as-is — clamping applies to updates only.
func (s *RosterService) Create(ctx context.Context, masterID uuid.UUID, input CreateCharacterInput) (*domain.Character, string, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, "", ErrNameRequired
	}

	username := strings.TrimSpace(input.PlayerUsername)
	if username == "" {
		username = strings.ReplaceAll(strings.ToLower(name), " ", "_")
	}

	password, err := randomString(playerPasswordLength)
	if err != nil {
		return nil, "", err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	character := &domain.Character{
		ID:                 uuid.New(),
		Name:               name,
		Age:                input.Age,
		Money:              valueOr(input.Money, 0),
		Health:             valueOr(input.Health, 100),
		Mana:               valueOr(input.Mana, 50),
		Vigor:              valueOr(input.Vigor, 75),
		AvatarURL:          input.AvatarURL,
		MasterID:           masterID,
		PlayerPasswordHash: string(hashed),
		CreatedAt:          time.Now(),
	}
	if err := character.SetItems(input.Items); err != nil {
		return nil, "", err
	}
	if err := character.SetDebuffs(input.Debuffs); err != nil {
		return nil, "", err
	}

	// The unique index is the arbiter: insert, and on collision retry with
	// a fresh numeric suffix rather than pre-checking.
	candidate := username
	for attempt := 0; ; attempt++ {
		character.PlayerUsername = &candidate
		err := s.characterRepo.Create(ctx, character)
		if err == nil {
			return character, password, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) || attempt >= usernameRetries {
			return nil, "", err
		}
		candidate = fmt.Sprintf("%s_%d", username, rand.IntN(1000))
	}
}

// Get enforces the owner-or-self rule: the owning master may read any of
// its characters, a player session only its own.
func (s *RosterService) Get(ctx context.Context, session *domain.Session, id uuid.UUID) (*domain.Character, error) {
	switch {
	case session.IsMaster():
		character, err := s.characterRepo.GetByIDAndMaster(ctx, id, session.AccountID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, err
		}
		return character, nil
	case session.IsPlayer():
		if session.CharacterID == nil || *session.CharacterID != id {
			return nil, domain.ErrForbidden
		}
		character, err := s.characterRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, err
		}
		return character, nil
	default:
		return nil, domain.ErrForbidden
	}
}

// Update applies only the fields present in the input. Stats are clamped to
// [0,100] here, unlike at creation.
func (s *RosterService) Update(ctx context.Context, masterID, id uuid.UUID, input UpdateCharacterInput) (*domain.Character, error) {
	character, err := s.characterRepo.GetByIDAndMaster(ctx, id, masterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		character.Name = *input.Name
	}
	if input.Age != nil {
		character.Age = input.Age
	}
	if input.Money != nil {
		character.Money = *input.Money
	}
	if input.Health != nil {
		character.Health = domain.ClampStat(*input.Health)
	}
	if input.Mana != nil {
		character.Mana = domain.ClampStat(*input.Mana)
	}
	if input.Vigor != nil {
		character.Vigor = domain.ClampStat(*input.Vigor)
	}
	if input.Items != nil {
		if err := character.SetItems(input.Items); err != nil {
			return nil, err
		}
	}
	if input.Debuffs != nil {
		if err := character.SetDebuffs(input.Debuffs); err != nil {
			return nil, err
		}
	}
	if input.AvatarURL != nil {
		character.AvatarURL = input.AvatarURL
	}

	if input.PlayerUsername != nil {
		existing, err := s.characterRepo.GetByPlayerUsername(ctx, *input.PlayerUsername)
		if err == nil && existing.ID != character.ID {
			return nil, ErrPlayerUsernameTaken
		}
		character.PlayerUsername = input.PlayerUsername
	}
	if input.PlayerPassword != nil && *input.PlayerPassword != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.PlayerPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		character.PlayerPasswordHash = string(hashed)
	}

	if err := s.characterRepo.Update(ctx, character); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrPlayerUsernameTaken
		}
		return nil, err
	}
	return character, nil
}

func (s *RosterService) Delete(ctx context.Context, masterID, id uuid.UUID) error {
	character, err := s.characterRepo.GetByIDAndMaster(ctx, id, masterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	return s.characterRepo.Delete(ctx, character)
}

// UpdateStatus mutates only health/mana/vigor, reachable by the owning
// master or by the character's own player session. Values clamp to [0,100];
// absent fields stay untouched.
func (s *RosterService) UpdateStatus(ctx context.Context, session *domain.Session, id uuid.UUID, input StatusInput) (*domain.Character, error) {
	character, err := s.Get(ctx, session, id)
	if err != nil {
		return nil, err
	}

	if input.Health != nil {
		character.Health = domain.ClampStat(*input.Health)
	}
	if input.Mana != nil {
		character.Mana = domain.ClampStat(*input.Mana)
	}
	if input.Vigor != nil {
		character.Vigor = domain.ClampStat(*input.Vigor)
	}

	if err := s.characterRepo.Update(ctx, character); err != nil {
		return nil, err
	}
	return character, nil
}

func valueOr(v *int, fallback int) int {
	if v != nil {
		return *v
	}
	return fallback
}
