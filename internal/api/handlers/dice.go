package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/gdp/rpg-companion/internal/api/middleware"
	"github.com/gdp/rpg-companion/internal/domain"
	"github.com/gdp/rpg-companion/internal/service"
)

type DiceHandler struct {
	diceService *service.DiceService
}

func NewDiceHandler(diceService *service.DiceService) *DiceHandler {
	return &DiceHandler{diceService: diceService}
}

type RollRequest struct {
	DiceType int        `json:"dice_type"`
	PlayerID *uuid.UUID `json:"player_id"`
}

type RollResponse struct {
	DiceType      int        `json:"dice_type"`
	Result        int        `json:"result"`
	SpecialEffect *string    `json:"special_effect"`
	Timestamp     *time.Time `json:"timestamp"`
}

func (h *DiceHandler) Roll(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())

	var req RollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.diceService.Roll(r.Context(), session, req.DiceType, req.PlayerID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDiceType) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := RollResponse{
		DiceType:  result.DiceType,
		Result:    result.Result,
		Timestamp: result.RolledAt,
	}
	if result.SpecialEffect != "" {
		resp.SpecialEffect = &result.SpecialEffect
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *DiceHandler) History(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())

	rolls, err := h.diceService.History(r.Context(), session)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			writeError(w, http.StatusForbidden, domain.ErrForbidden.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"rolls": rolls})
}
