package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gdp/rpg-companion/internal/config"
	"github.com/gdp/rpg-companion/internal/domain"
	"github.com/gdp/rpg-companion/internal/mail"
	"github.com/gdp/rpg-companion/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already registered")
	ErrMissingFields      = errors.New("all fields are required")
	ErrInvalidResetToken  = errors.New("invalid reset token")
	ErrExpiredResetToken  = errors.New("reset token expired")
)

const resetTokenTTL = time.Hour

type AuthService struct {
	accountRepo    repository.AccountRepository
	characterRepo  repository.CharacterRepository
	sessionRepo    repository.SessionRepository
	resetTokenRepo repository.ResetTokenRepository
	mailer         mail.Mailer
	cfg            *config.Config
}

func NewAuthService(repos *repository.Repositories, mailer mail.Mailer, cfg *config.Config) *AuthService {
	return &AuthService{
		accountRepo:    repos.Account,
		characterRepo:  repos.Character,
		sessionRepo:    repos.Session,
		resetTokenRepo: repos.ResetToken,
		mailer:         mailer,
		cfg:            cfg,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// AuthResult pairs the authenticated entity with the signed cookie value
// for the freshly issued session.
type AuthResult struct {
	Account      *domain.Account
	Character    *domain.Character
	Session      *domain.Session
	SessionToken string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if username == "" || email == "" || input.Password == "" {
		return nil, ErrMissingFields
	}

	if _, err := s.accountRepo.GetByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	}
	if _, err := s.accountRepo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
		IsMaster:     true,
		CreatedAt:    time.Now(),
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		// The pre-checks race against concurrent registration; the unique
		// indexes are the real guard.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	return s.establishMasterSession(ctx, account)
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	account, err := s.accountRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.establishMasterSession(ctx, account)
}

// LoginPlayer authenticates a character's own sub-identity and establishes a
// player session scoped to that character and its owning account.
func (s *AuthService) LoginPlayer(ctx context.Context, username, password string) (*AuthResult, error) {
	character, err := s.characterRepo.GetByPlayerUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if character.PlayerPasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(character.PlayerPasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	session := &domain.Session{
		ID:          uuid.New(),
		Kind:        domain.SessionKindPlayer,
		AccountID:   character.MasterID,
		CharacterID: &character.ID,
		ExpiresAt:   time.Now().Add(s.sessionTTL()),
		CreatedAt:   time.Now(),
	}
	token, err := s.issueSession(ctx, session)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Character: character, Session: session, SessionToken: token}, nil
}

// Logout deletes the session row. Idempotent: a missing or already-deleted
// session is not an error.
func (s *AuthService) Logout(ctx context.Context, session *domain.Session) error {
	if session == nil {
		return nil
	}
	return s.sessionRepo.Delete(ctx, session.ID)
}

// ForgotPassword never reveals whether the email is registered. When it is,
// a single-use token with a one-hour expiry is stored and dispatched through
// the mailer.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	account, err := s.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	token, err := randomString(resetTokenLength)
	if err != nil {
		return err
	}

	reset := &domain.PasswordResetToken{
		Token:     token,
		AccountID: account.ID,
		ExpiresAt: time.Now().Add(resetTokenTTL),
		CreatedAt: time.Now(),
	}
	if err := s.resetTokenRepo.Create(ctx, reset); err != nil {
		return err
	}

	if err := s.mailer.SendPasswordReset(ctx, email, token); err != nil {
		log.Printf("[auth] failed to dispatch reset mail: %v", err)
		return err
	}
	return nil
}

// ResetPassword consumes a token: expired tokens are deleted on sight, used
// tokens are deleted after the password update succeeds.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	reset, err := s.resetTokenRepo.Get(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}

	if reset.Expired(time.Now()) {
		_ = s.resetTokenRepo.Delete(ctx, token)
		return ErrExpiredResetToken
	}

	account, err := s.accountRepo.GetByID(ctx, reset.AccountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	account.PasswordHash = string(hashed)

	if err := s.accountRepo.Update(ctx, account); err != nil {
		return err
	}

	return s.resetTokenRepo.Delete(ctx, token)
}

// GetSession resolves a signed cookie value to a live session row. Expired
// rows are removed and read as not found.
func (s *AuthService) GetSession(ctx context.Context, token string) (*domain.Session, error) {
	id, err := s.parseSessionToken(token)
	if err != nil {
		return nil, err
	}

	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if session.Expired(time.Now()) {
		_ = s.sessionRepo.Delete(ctx, session.ID)
		return nil, gorm.ErrRecordNotFound
	}
	return session, nil
}

func (s *AuthService) GetAccountByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	return s.accountRepo.GetByID(ctx, id)
}

func (s *AuthService) GetCharacterByID(ctx context.Context, id uuid.UUID) (*domain.Character, error) {
	return s.characterRepo.GetByID(ctx, id)
}

func (s *AuthService) establishMasterSession(ctx context.Context, account *domain.Account) (*AuthResult, error) {
	session := &domain.Session{
		ID:        uuid.New(),
		Kind:      domain.SessionKindMaster,
		AccountID: account.ID,
		ExpiresAt: time.Now().Add(s.sessionTTL()),
		CreatedAt: time.Now(),
	}
	token, err := s.issueSession(ctx, session)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Account: account, Session: session, SessionToken: token}, nil
}

// issueSession persists a fresh session row and signs its id into the cookie
// value. Each login replaces the whole identity; the previous cookie simply
// points at a row that logout or expiry will remove.
func (s *AuthService) issueSession(ctx context.Context, session *domain.Session) (string, error) {
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"sid": session.ID.String(),
		"exp": session.ExpiresAt.Unix(),
		"iat": session.CreatedAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.SessionSecret))
}

func (s *AuthService) parseSessionToken(value string) (uuid.UUID, error) {
	token, err := jwt.Parse(value, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.SessionSecret), nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return uuid.Nil, errors.New("invalid session token")
	}

	sid, ok := claims["sid"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing session id claim")
	}
	return uuid.Parse(sid)
}

func (s *AuthService) sessionTTL() time.Duration {
	return time.Duration(s.cfg.SessionTTLHours) * time.Hour
}
