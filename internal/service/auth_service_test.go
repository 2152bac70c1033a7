package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/gdp/rpg-companion/internal/domain"
	"github.com/gdp/rpg-companion/internal/repository/postgres"
	"github.com/gdp/rpg-companion/internal/service"
	"github.com/gdp/rpg-companion/internal/testutil"
)

func TestAuthService_Register(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	mailer := &testutil.RecordingMailer{}
	authService := service.NewAuthService(repos, mailer, cfg)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   service.RegisterInput
		setup   func()
		wantErr error
	}{
		{
			name: "successful registration",
			input: service.RegisterInput{
				Username: "gm1",
				Email:    "gm1@x.io",
				Password: "pw",
			},
		},
		{
			name: "duplicate username",
			input: service.RegisterInput{
				Username: "existing",
				Email:    "new@example.com",
				Password: "pw",
			},
			setup: func() {
				testutil.NewAccountBuilder().WithUsername("existing").Build(t, testDB.DB)
			},
			wantErr: service.ErrUsernameTaken,
		},
		{
			name: "duplicate email is case-insensitive",
			input: service.RegisterInput{
				Username: "someoneelse",
				Email:    "GM1@X.IO",
				Password: "pw",
			},
			setup: func() {
				testutil.NewAccountBuilder().WithEmail("gm1@x.io").Build(t, testDB.DB)
			},
			wantErr: service.ErrEmailTaken,
		},
		{
			name: "missing username",
			input: service.RegisterInput{
				Email:    "gm1@x.io",
				Password: "pw",
			},
			wantErr: service.ErrMissingFields,
		},
		{
			name: "missing password",
			input: service.RegisterInput{
				Username: "gm1",
				Email:    "gm1@x.io",
			},
			wantErr: service.ErrMissingFields,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testDB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			result, err := authService.Register(ctx, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "gm1", result.Account.Username)
			assert.Equal(t, "gm1@x.io", result.Account.Email)
			assert.True(t, result.Account.IsMaster)
			assert.NotEmpty(t, result.SessionToken)
			assert.True(t, result.Session.IsMaster())

			// Stored credential is a salted hash, never the plaintext
			assert.NotEqual(t, "pw", result.Account.PasswordHash)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(result.Account.PasswordHash), []byte("pw")))
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	authService := service.NewAuthService(repos, &testutil.RecordingMailer{}, testutil.TestConfig())
	ctx := context.Background()

	account, password := testutil.NewAccountBuilder().WithUsername("loginuser").Build(t, testDB.DB)

	t.Run("valid credentials", func(t *testing.T) {
		result, err := authService.Login(ctx, "loginuser", password)
		require.NoError(t, err)
		assert.Equal(t, account.ID, result.Account.ID)
		assert.NotEmpty(t, result.SessionToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := authService.Login(ctx, "loginuser", "wrongpassword")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := authService.Login(ctx, "ghost", password)
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestAuthService_LoginPlayer(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	authService := service.NewAuthService(repos, &testutil.RecordingMailer{}, testutil.TestConfig())
	ctx := context.Background()

	account, _ := testutil.NewAccountBuilder().Build(t, testDB.DB)
	character, playerPassword := testutil.NewCharacterBuilder(account.ID).
		WithPlayerUsername("zara_the_swift").
		Build(t, testDB.DB)

	t.Run("valid credentials establish a player session", func(t *testing.T) {
		result, err := authService.LoginPlayer(ctx, "zara_the_swift", playerPassword)
		require.NoError(t, err)
		assert.Equal(t, character.ID, result.Character.ID)
		require.True(t, result.Session.IsPlayer())
		assert.Equal(t, account.ID, result.Session.AccountID)
		require.NotNil(t, result.Session.CharacterID)
		assert.Equal(t, character.ID, *result.Session.CharacterID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := authService.LoginPlayer(ctx, "zara_the_swift", "nope")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("unknown player username", func(t *testing.T) {
		_, err := authService.LoginPlayer(ctx, "nobody", playerPassword)
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestAuthService_Sessions(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos, &testutil.RecordingMailer{}, cfg)
	ctx := context.Background()

	_, password := testutil.NewAccountBuilder().WithUsername("sessionuser").Build(t, testDB.DB)

	t.Run("issued token resolves to the session", func(t *testing.T) {
		result, err := authService.Login(ctx, "sessionuser", password)
		require.NoError(t, err)

		session, err := authService.GetSession(ctx, result.SessionToken)
		require.NoError(t, err)
		assert.Equal(t, result.Session.ID, session.ID)
		assert.True(t, session.IsMaster())
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		_, err := authService.GetSession(ctx, "not-a-token")
		assert.Error(t, err)
	})

	t.Run("logout invalidates the token", func(t *testing.T) {
		result, err := authService.Login(ctx, "sessionuser", password)
		require.NoError(t, err)

		require.NoError(t, authService.Logout(ctx, result.Session))
		_, err = authService.GetSession(ctx, result.SessionToken)
		assert.Error(t, err)

		// Idempotent: logging out again, or with no session, is fine
		assert.NoError(t, authService.Logout(ctx, result.Session))
		assert.NoError(t, authService.Logout(ctx, nil))
	})

	t.Run("player login replaces the identity wholesale", func(t *testing.T) {
		account, _ := testutil.NewAccountBuilder().Build(t, testDB.DB)
		_, playerPassword := testutil.NewCharacterBuilder(account.ID).
			WithPlayerUsername("variant_check").
			Build(t, testDB.DB)

		result, err := authService.LoginPlayer(ctx, "variant_check", playerPassword)
		require.NoError(t, err)

		session, err := authService.GetSession(ctx, result.SessionToken)
		require.NoError(t, err)
		assert.True(t, session.IsPlayer())
		assert.False(t, session.IsMaster())
		require.NotNil(t, session.CharacterID)
	})
}

func TestAuthService_ForgotPassword(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	mailer := &testutil.RecordingMailer{}
	authService := service.NewAuthService(repos, mailer, testutil.TestConfig())
	ctx := context.Background()

	testutil.NewAccountBuilder().WithEmail("known@example.com").Build(t, testDB.DB)

	t.Run("known email dispatches a 32-char token", func(t *testing.T) {
		require.NoError(t, authService.ForgotPassword(ctx, "Known@Example.com"))
		require.Len(t, mailer.Tokens, 1)
		assert.Equal(t, "known@example.com", mailer.Emails[0])
		assert.Len(t, mailer.Tokens[0], 32)
	})

	t.Run("unknown email succeeds without dispatching", func(t *testing.T) {
		sent := len(mailer.Tokens)
		require.NoError(t, authService.ForgotPassword(ctx, "ghost@example.com"))
		assert.Len(t, mailer.Tokens, sent)
	})
}

func TestAuthService_ResetPassword(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	mailer := &testutil.RecordingMailer{}
	authService := service.NewAuthService(repos, mailer, testutil.TestConfig())
	ctx := context.Background()

	t.Run("token is single-use", func(t *testing.T) {
		testDB.Truncate(t)
		testutil.NewAccountBuilder().
			WithUsername("resetme").
			WithEmail("resetme@example.com").
			Build(t, testDB.DB)

		require.NoError(t, authService.ForgotPassword(ctx, "resetme@example.com"))
		require.NotEmpty(t, mailer.Tokens)
		token := mailer.Tokens[len(mailer.Tokens)-1]

		require.NoError(t, authService.ResetPassword(ctx, token, "newpassword"))

		// Old password rejected, new one accepted
		_, err := authService.Login(ctx, "resetme", "testpassword123")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
		_, err = authService.Login(ctx, "resetme", "newpassword")
		assert.NoError(t, err)

		// Second use of the same token fails
		err = authService.ResetPassword(ctx, token, "anotherpassword")
		assert.ErrorIs(t, err, service.ErrInvalidResetToken)
	})

	t.Run("unknown token", func(t *testing.T) {
		err := authService.ResetPassword(ctx, "bogus-token", "whatever")
		assert.ErrorIs(t, err, service.ErrInvalidResetToken)
	})

	t.Run("expired token is rejected and removed", func(t *testing.T) {
		testDB.Truncate(t)
		account, _ := testutil.NewAccountBuilder().Build(t, testDB.DB)

		stale := &domain.PasswordResetToken{
			Token:     "stale-token-stale-token-stale-to",
			AccountID: account.ID,
			ExpiresAt: time.Now().Add(-time.Minute),
			CreatedAt: time.Now().Add(-2 * time.Hour),
		}
		require.NoError(t, repos.ResetToken.Create(ctx, stale))

		err := authService.ResetPassword(ctx, stale.Token, "newpassword")
		assert.ErrorIs(t, err, service.ErrExpiredResetToken)

		// Consumed on sight: the second attempt sees no token at all
		err = authService.ResetPassword(ctx, stale.Token, "newpassword")
		assert.ErrorIs(t, err, service.ErrInvalidResetToken)
	})
}
