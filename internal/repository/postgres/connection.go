package postgres

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gdp/rpg-companion/internal/domain"
	"github.com/gdp/rpg-companion/internal/repository"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
		// Unique violations surface as gorm.ErrDuplicatedKey so services
		// can retry instead of pre-checking.
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates all tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Account{},
		&domain.Character{},
		&domain.Note{},
		&domain.DiceRoll{},
		&domain.Session{},
		&domain.PasswordResetToken{},
	)
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		Account:    NewAccountRepository(db),
		Character:  NewCharacterRepository(db),
		Note:       NewNoteRepository(db),
		DiceRoll:   NewDiceRollRepository(db),
		Session:    NewSessionRepository(db),
		ResetToken: NewResetTokenRepository(db),
	}
}
