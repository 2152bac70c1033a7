package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/gdp/rpg-companion/internal/domain"
	"github.com/gdp/rpg-companion/internal/repository"
)

var ErrInvalidDiceType = errors.New("invalid dice type: use 4, 20 or 100")

// History window sizes per identity kind.
const (
	masterHistoryLimit = 50
	playerHistoryLimit = 20
)

type DiceService struct {
	diceRollRepo repository.DiceRollRepository
}

func NewDiceService(diceRollRepo repository.DiceRollRepository) *DiceService {
	return &DiceService{diceRollRepo: diceRollRepo}
}

type RollResult struct {
	DiceType      int
	Result        int
	SpecialEffect string
	// RolledAt is set only when the roll was persisted.
	RolledAt *time.Time
}

// Roll produces a uniform result in [1, diceType]. Persistence depends on
// the session: a master stores the caller-supplied character id unvalidated
// (masters may roll on behalf of any character), a player always rolls as
// itself, and anonymous rolls are computed but never stored.
func (s *DiceService) Roll(ctx context.Context, session *domain.Session, diceType int, characterID *uuid.UUID) (*RollResult, error) {
	if !domain.IsValidDiceType(diceType) {
		return nil, ErrInvalidDiceType
	}

	result := rand.IntN(diceType) + 1

	out := &RollResult{
		DiceType:      diceType,
		Result:        result,
		SpecialEffect: domain.SpecialEffect(diceType, result),
	}

	if session == nil {
		return out, nil
	}

	roll := &domain.DiceRoll{
		ID:        uuid.New(),
		DiceType:  diceType,
		Result:    result,
		MasterID:  session.AccountID,
		CreatedAt: time.Now(),
	}
	if session.IsPlayer() {
		roll.CharacterID = session.CharacterID
	} else {
		roll.CharacterID = characterID
	}

	if err := s.diceRollRepo.Create(ctx, roll); err != nil {
		return nil, err
	}
	out.RolledAt = &roll.CreatedAt
	return out, nil
}

// History returns the account's last 50 rolls for a master session, the
// character's last 20 for a player session, newest first.
func (s *DiceService) History(ctx context.Context, session *domain.Session) ([]*domain.DiceRoll, error) {
	switch {
	case session.IsMaster():
		return s.diceRollRepo.ListByMaster(ctx, session.AccountID, masterHistoryLimit)
	case session.IsPlayer():
		return s.diceRollRepo.ListByCharacter(ctx, *session.CharacterID, playerHistoryLimit)
	default:
		return nil, domain.ErrForbidden
	}
}
