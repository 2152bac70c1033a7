package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gdp/rpg-companion/internal/domain"
)

type characterRepository struct {
	db *gorm.DB
}

func NewCharacterRepository(db *gorm.DB) *characterRepository {
	return &characterRepository{db: db}
}

func (r *characterRepository) Create(ctx context.Context, character *domain.Character) error {
	return r.db.WithContext(ctx).Create(character).Error
}

func (r *characterRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Character, error) {
	var character domain.Character
	err := r.db.WithContext(ctx).First(&character, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &character, nil
}

func (r *characterRepository) GetByIDAndMaster(ctx context.Context, id, masterID uuid.UUID) (*domain.Character, error) {
	var character domain.Character
	err := r.db.WithContext(ctx).
		First(&character, "id = ? AND master_id = ?", id, masterID).Error
	if err != nil {
		return nil, err
	}
	return &character, nil
}

func (r *characterRepository) GetByPlayerUsername(ctx context.Context, username string) (*domain.Character, error) {
	var character domain.Character
	err := r.db.WithContext(ctx).
		First(&character, "player_username = ?", username).Error
	if err != nil {
		return nil, err
	}
	return &character, nil
}

func (r *characterRepository) ListByMaster(ctx context.Context, masterID uuid.UUID) ([]*domain.Character, error) {
	var characters []*domain.Character
	err := r.db.WithContext(ctx).
		Where("master_id = ?", masterID).
		Order("created_at ASC").
		Find(&characters).Error
	if err != nil {
		return nil, err
	}
	return characters, nil
}

func (r *characterRepository) Update(ctx context.Context, character *domain.Character) error {
	return r.db.WithContext(ctx).Save(character).Error
}

// Delete removes the character; its dice-roll history cascades.
func (r *characterRepository) Delete(ctx context.Context, character *domain.Character) error {
	return r.db.WithContext(ctx).Delete(character).Error
}
