package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/gdp/rpg-companion/internal/api/middleware"
	"github.com/gdp/rpg-companion/internal/domain"
	"github.com/gdp/rpg-companion/internal/service"
)

type PlayerHandler struct {
	rosterService *service.RosterService
}

func NewPlayerHandler(rosterService *service.RosterService) *PlayerHandler {
	return &PlayerHandler{rosterService: rosterService}
}

type CreatePlayerRequest struct {
	Name           string   `json:"name"`
	Age            *int     `json:"age"`
	Money          *int     `json:"money"`
	Health         *int     `json:"health"`
	Mana           *int     `json:"mana"`
	Vigor          *int     `json:"vigor"`
	Items          []string `json:"items"`
	Debuffs        []string `json:"debuffs"`
	AvatarURL      *string  `json:"avatar_url"`
	PlayerUsername string   `json:"player_username"`
}

type UpdatePlayerRequest struct {
	Name           *string  `json:"name"`
	Age            *int     `json:"age"`
	Money          *int     `json:"money"`
	Health         *int     `json:"health"`
	Mana           *int     `json:"mana"`
	Vigor          *int     `json:"vigor"`
	Items          []string `json:"items"`
	Debuffs        []string `json:"debuffs"`
	AvatarURL      *string  `json:"avatar_url"`
	PlayerUsername *string  `json:"player_username"`
	PlayerPassword *string  `json:"player_password"`
}

type UpdateStatusRequest struct {
	Health *int `json:"health"`
	Mana   *int `json:"mana"`
	Vigor  *int `json:"vigor"`
}

// createdCharacter carries the one-time generated password alongside the
// character. No other response ever includes it.
type createdCharacter struct {
	*domain.Character
	GeneratedPassword string `json:"generated_password"`
}

func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())

	characters, err := h.rosterService.List(r.Context(), session.AccountID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"players": characters})
}

func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())

	var req CreatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	character, password, err := h.rosterService.Create(r.Context(), session.AccountID, service.CreateCharacterInput{
		Name:           req.Name,
		Age:            req.Age,
		Money:          req.Money,
		Health:         req.Health,
		Mana:           req.Mana,
		Vigor:          req.Vigor,
		Items:          req.Items,
		Debuffs:        req.Debuffs,
		AvatarURL:      req.AvatarURL,
		PlayerUsername: req.PlayerUsername,
	})
	if err != nil {
		if errors.Is(err, service.ErrNameRequired) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "player created",
		"player":  createdCharacter{Character: character, GeneratedPassword: password},
	})
}

func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid player id")
		return
	}

	character, err := h.rosterService.Get(r.Context(), session, id)
	if err != nil {
		writeRosterError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"player": character})
}

func (h *PlayerHandler) Update(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid player id")
		return
	}

	var req UpdatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	character, err := h.rosterService.Update(r.Context(), session.AccountID, id, service.UpdateCharacterInput{
		Name:           req.Name,
		Age:            req.Age,
		Money:          req.Money,
		Health:         req.Health,
		Mana:           req.Mana,
		Vigor:          req.Vigor,
		Items:          req.Items,
		Debuffs:        req.Debuffs,
		AvatarURL:      req.AvatarURL,
		PlayerUsername: req.PlayerUsername,
		PlayerPassword: req.PlayerPassword,
	})
	if err != nil {
		if errors.Is(err, service.ErrPlayerUsernameTaken) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeRosterError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "player updated",
		"player":  character,
	})
}

func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid player id")
		return
	}

	if err := h.rosterService.Delete(r.Context(), session.AccountID, id); err != nil {
		writeRosterError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "player removed"})
}

// UpdateStatus is reachable by the owning master or by the character's own
// player session; the route carries no RequireMaster guard.
func (h *PlayerHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid player id")
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	character, err := h.rosterService.UpdateStatus(r.Context(), session, id, service.StatusInput{
		Health: req.Health,
		Mana:   req.Mana,
		Vigor:  req.Vigor,
	})
	if err != nil {
		writeRosterError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "status updated",
		"player":  character,
	})
}

func writeRosterError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, domain.ErrForbidden.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "player not found")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
