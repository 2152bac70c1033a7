package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gdp/rpg-companion/internal/domain"
	"github.com/gdp/rpg-companion/internal/repository/postgres"
	"github.com/gdp/rpg-companion/internal/testutil"
)

func TestAccountRepository_UniqueConstraints(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	ctx := context.Background()

	account, _ := testutil.NewAccountBuilder().
		WithUsername("taken").
		WithEmail("taken@example.com").
		Build(t, testDB.DB)

	t.Run("duplicate username", func(t *testing.T) {
		err := repos.Account.Create(ctx, &domain.Account{
			ID:           uuid.New(),
			Username:     account.Username,
			Email:        "other@example.com",
			PasswordHash: "x",
			IsMaster:     true,
		})
		assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	})

	t.Run("duplicate email", func(t *testing.T) {
		err := repos.Account.Create(ctx, &domain.Account{
			ID:           uuid.New(),
			Username:     "otheruser",
			Email:        account.Email,
			PasswordHash: "x",
			IsMaster:     true,
		})
		assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	})

	t.Run("duplicate player username", func(t *testing.T) {
		testutil.NewCharacterBuilder(account.ID).WithPlayerUsername("pc_taken").Build(t, testDB.DB)

		username := "pc_taken"
		err := repos.Character.Create(ctx, &domain.Character{
			ID:             uuid.New(),
			Name:           "Copycat",
			MasterID:       account.ID,
			PlayerUsername: &username,
		})
		assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	})
}

// Deleting an account must take every dependent row with it: characters,
// notes, dice rolls, sessions and reset tokens.
func TestAccountRepository_DeleteCascades(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	ctx := context.Background()

	account, _ := testutil.NewAccountBuilder().Build(t, testDB.DB)
	survivor, _ := testutil.NewAccountBuilder().Build(t, testDB.DB)

	character, _ := testutil.NewCharacterBuilder(account.ID).Build(t, testDB.DB)
	survivorChar, _ := testutil.NewCharacterBuilder(survivor.ID).Build(t, testDB.DB)

	require.NoError(t, repos.Note.Create(ctx, &domain.Note{
		ID:       uuid.New(),
		Title:    "doomed",
		Content:  "goes with the account",
		MasterID: account.ID,
	}))
	require.NoError(t, repos.DiceRoll.Create(ctx, &domain.DiceRoll{
		ID:          uuid.New(),
		DiceType:    20,
		Result:      13,
		MasterID:    account.ID,
		CharacterID: &character.ID,
	}))
	require.NoError(t, repos.Session.Create(ctx, &domain.Session{
		ID:        uuid.New(),
		Kind:      domain.SessionKindMaster,
		AccountID: account.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}))
	require.NoError(t, repos.ResetToken.Create(ctx, &domain.PasswordResetToken{
		Token:     "cascade-check-token-cascade-chec",
		AccountID: account.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	require.NoError(t, repos.Account.Delete(ctx, account.ID))

	count := func(model interface{}) int64 {
		var n int64
		require.NoError(t, testDB.DB.Model(model).Count(&n).Error)
		return n
	}

	assert.EqualValues(t, 1, count(&domain.Account{}), "only the survivor account remains")
	assert.EqualValues(t, 1, count(&domain.Character{}))
	assert.EqualValues(t, 0, count(&domain.Note{}))
	assert.EqualValues(t, 0, count(&domain.DiceRoll{}))
	assert.EqualValues(t, 0, count(&domain.Session{}))
	assert.EqualValues(t, 0, count(&domain.PasswordResetToken{}))

	remaining, err := repos.Character.GetByID(ctx, survivorChar.ID)
	require.NoError(t, err)
	assert.Equal(t, survivor.ID, remaining.MasterID)
}
