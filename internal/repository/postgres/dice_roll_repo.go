package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gdp/rpg-companion/internal/domain"
)

type diceRollRepository struct {
	db *gorm.DB
}

func NewDiceRollRepository(db *gorm.DB) *diceRollRepository {
	return &diceRollRepository{db: db}
}

func (r *diceRollRepository) Create(ctx context.Context, roll *domain.DiceRoll) error {
	return r.db.WithContext(ctx).Create(roll).Error
}

func (r *diceRollRepository) ListByMaster(ctx context.Context, masterID uuid.UUID, limit int) ([]*domain.DiceRoll, error) {
	var rolls []*domain.DiceRoll
	err := r.db.WithContext(ctx).
		Where("master_id = ?", masterID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rolls).Error
	if err != nil {
		return nil, err
	}
	return rolls, nil
}

func (r *diceRollRepository) ListByCharacter(ctx context.Context, characterID uuid.UUID, limit int) ([]*domain.DiceRoll, error) {
	var rolls []*domain.DiceRoll
	err := r.db.WithContext(ctx).
		Where("character_id = ?", characterID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rolls).Error
	if err != nil {
		return nil, err
	}
	return rolls, nil
}
