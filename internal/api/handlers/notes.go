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

type NoteHandler struct {
	notesService *service.NotesService
}

func NewNoteHandler(notesService *service.NotesService) *NoteHandler {
	return &NoteHandler{notesService: notesService}
}

type CreateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Theme   string `json:"theme"`
}

type UpdateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Theme   *string `json:"theme"`
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())

	notes, err := h.notesService.List(r.Context(), session.AccountID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"notes": notes})
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())

	var req CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	note, err := h.notesService.Create(r.Context(), session.AccountID, service.CreateNoteInput{
		Title:   req.Title,
		Content: req.Content,
		Theme:   req.Theme,
	})
	if err != nil {
		if errors.Is(err, service.ErrNoteFieldsRequired) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "note created",
		"note":    note,
	})
}

func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid note id")
		return
	}

	note, err := h.notesService.Get(r.Context(), session.AccountID, id)
	if err != nil {
		writeNoteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"note": note})
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid note id")
		return
	}

	var req UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	note, err := h.notesService.Update(r.Context(), session.AccountID, id, service.UpdateNoteInput{
		Title:   req.Title,
		Content: req.Content,
		Theme:   req.Theme,
	})
	if err != nil {
		writeNoteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "note updated",
		"note":    note,
	})
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid note id")
		return
	}

	if err := h.notesService.Delete(r.Context(), session.AccountID, id); err != nil {
		writeNoteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "note removed"})
}

func writeNoteError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		// Foreign notes read as missing on purpose; existence is never
		// leaked across accounts.
		writeError(w, http.StatusNotFound, "note not found")
		return
	}
	writeError(w, http.StatusInternalServerError, "internal server error")
}
