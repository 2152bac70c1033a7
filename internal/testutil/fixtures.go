package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gdp/rpg-companion/internal/domain"
)

// AccountBuilder creates test master accounts with a builder pattern
type AccountBuilder struct {
	username string
	email    string
	password string
}

// NewAccountBuilder creates a new AccountBuilder with default values
func NewAccountBuilder() *AccountBuilder {
	suffix := uuid.New().String()[:8]
	return &AccountBuilder{
		username: fmt.Sprintf("master_%s", suffix),
		email:    fmt.Sprintf("master_%s@example.com", suffix),
		password: "testpassword123",
	}
}

func (b *AccountBuilder) WithUsername(username string) *AccountBuilder {
	b.username = username
	return b
}

func (b *AccountBuilder) WithEmail(email string) *AccountBuilder {
	b.email = email
	return b
}

func (b *AccountBuilder) WithPassword(password string) *AccountBuilder {
	b.password = password
	return b
}

// Build creates the account in the database and returns it with the raw password
func (b *AccountBuilder) Build(t *testing.T, db *gorm.DB) (*domain.Account, string) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	account := &domain.Account{
		ID:           uuid.New(),
		Username:     b.username,
		Email:        b.email,
		PasswordHash: string(hashed),
		IsMaster:     true,
		CreatedAt:    time.Now(),
	}

	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create account: %v", err)
	}

	return account, b.password
}

// BuildAndLogin registers the account through the API and returns it along
// with a client whose cookie jar holds the master session.
func (b *AccountBuilder) BuildAndLogin(t *testing.T, ts *TestServer) (*domain.Account, *http.Client) {
	t.Helper()

	client := ts.NewClient(t)
	resp := PostJSON(t, client, ts.APIURL("/auth/register"), map[string]string{
		"username": b.username,
		"email":    b.email,
		"password": b.password,
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("registration failed with status %d", resp.StatusCode)
	}

	var body struct {
		User domain.Account `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode registration response: %v", err)
	}

	return &body.User, client
}

// CharacterBuilder creates test characters with a builder pattern
type CharacterBuilder struct {
	name           string
	masterID       uuid.UUID
	playerUsername string
	playerPassword string
	health         int
	mana           int
	vigor          int
}

func NewCharacterBuilder(masterID uuid.UUID) *CharacterBuilder {
	suffix := uuid.New().String()[:8]
	return &CharacterBuilder{
		name:           fmt.Sprintf("char_%s", suffix),
		masterID:       masterID,
		playerUsername: fmt.Sprintf("player_%s", suffix),
		playerPassword: "playerpass123",
		health:         100,
		mana:           50,
		vigor:          75,
	}
}

func (b *CharacterBuilder) WithName(name string) *CharacterBuilder {
	b.name = name
	return b
}

func (b *CharacterBuilder) WithPlayerUsername(username string) *CharacterBuilder {
	b.playerUsername = username
	return b
}

func (b *CharacterBuilder) WithPlayerPassword(password string) *CharacterBuilder {
	b.playerPassword = password
	return b
}

func (b *CharacterBuilder) WithStats(health, mana, vigor int) *CharacterBuilder {
	b.health = health
	b.mana = mana
	b.vigor = vigor
	return b
}

// Build creates the character in the database and returns it with the raw
// player password
func (b *CharacterBuilder) Build(t *testing.T, db *gorm.DB) (*domain.Character, string) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(b.playerPassword), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash player password: %v", err)
	}

	character := &domain.Character{
		ID:                 uuid.New(),
		Name:               b.name,
		Health:             b.health,
		Mana:               b.mana,
		Vigor:              b.vigor,
		MasterID:           b.masterID,
		PlayerUsername:     &b.playerUsername,
		PlayerPasswordHash: string(hashed),
		CreatedAt:          time.Now(),
	}
	if err := character.SetItems(nil); err != nil {
		t.Fatalf("failed to seed items: %v", err)
	}
	if err := character.SetDebuffs(nil); err != nil {
		t.Fatalf("failed to seed debuffs: %v", err)
	}

	if err := db.Create(character).Error; err != nil {
		t.Fatalf("failed to create character: %v", err)
	}

	return character, b.playerPassword
}

// LoginPlayer signs the character's player identity in through the API and
// returns a client holding the player session cookie.
func LoginPlayer(t *testing.T, ts *TestServer, username, password string) *http.Client {
	t.Helper()

	client := ts.NewClient(t)
	resp := PostJSON(t, client, ts.APIURL("/auth/login-player"), map[string]string{
		"username": username,
		"password": password,
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("player login failed with status %d", resp.StatusCode)
	}
	return client
}

// PostJSON sends a JSON POST request with the given client
func PostJSON(t *testing.T, client *http.Client, url string, body interface{}) *http.Response {
	t.Helper()
	return doJSON(t, client, http.MethodPost, url, body)
}

// PutJSON sends a JSON PUT request with the given client
func PutJSON(t *testing.T, client *http.Client, url string, body interface{}) *http.Response {
	t.Helper()
	return doJSON(t, client, http.MethodPut, url, body)
}

// Get sends a GET request with the given client
func Get(t *testing.T, client *http.Client, url string) *http.Response {
	t.Helper()

	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	return resp
}

// Delete sends a DELETE request with the given client
func Delete(t *testing.T, client *http.Client, url string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodDelete, url, nil)
	if err != nil {
		t.Fatalf("failed to build DELETE request: %v", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("DELETE %s failed: %v", url, err)
	}
	return resp
}

func doJSON(t *testing.T, client *http.Client, method, url string, body interface{}) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request body: %v", err)
	}

	req, err := http.NewRequest(method, url, bytes.NewBuffer(payload))
	if err != nil {
		t.Fatalf("failed to build %s request: %v", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	return resp
}
