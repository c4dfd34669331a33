package message

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ayush/social-media-api/internal/models"
)

// Handler holds the message HTTP handlers.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// pathID parses a decimal integer path parameter. Non-numeric input is a
// client error handled by the caller.
func pathID(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	return id, err == nil
}

// Create handles POST /messages. 200 with the created message on success,
// 400 with an empty body otherwise.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	created := h.svc.Create(r.Context(), req.PostedBy, req.Text, req.TimePostedEpoch)
	if created == nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	writeJSON(w, created)
}

// ListAll handles GET /messages. Always 200 with an array, possibly empty.
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.svc.ListAll(r.Context()))
}

// GetByID handles GET /messages/{message_id}. 200 with the message, or 200
// with an empty body if it does not exist.
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "message_id")
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	msg := h.svc.GetByID(r.Context(), id)
	if msg == nil {
		w.WriteHeader(http.StatusOK)
		return
	}
	writeJSON(w, msg)
}

// Delete handles DELETE /messages/{message_id}. 200 with the deleted message,
// or 200 with an empty body if nothing was deleted.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "message_id")
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	deleted := h.svc.Delete(r.Context(), id)
	if deleted == nil {
		w.WriteHeader(http.StatusOK)
		return
	}
	writeJSON(w, deleted)
}

// Update handles PATCH /messages/{message_id}. 200 with the updated message
// on success, 400 with an empty body otherwise.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "message_id")
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var req models.UpdateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	updated := h.svc.Update(r.Context(), id, req.Text)
	if updated == nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	writeJSON(w, updated)
}

// ListByAccount handles GET /accounts/{account_id}/messages. Always 200 with
// an array, possibly empty, even for accounts that do not exist.
func (h *Handler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "account_id")
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	writeJSON(w, h.svc.ListByAccount(r.Context(), id))
}
