package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"expertdesk-backend/internal/domain"
	"expertdesk-backend/internal/service"
)

type BookingHandler struct {
	bookingSvc service.BookingService
}

func NewBookingHandler(bookingSvc service.BookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

type createBookingPayload struct {
	ExpertID     int64     `json:"expert_id"`
	Amount       string    `json:"amount"`
	SessionStart time.Time `json:"session_start"`
	SessionEnd   time.Time `json:"session_end"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}

	var payload createBookingPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}
	amount, err := decimal.NewFromString(payload.Amount)
	if err != nil {
		writeError(w, domain.ErrInvalidAmount)
		return
	}

	booking := &domain.Booking{
		ExpertID:     payload.ExpertID,
		UserID:       actor.ID,
		Amount:       amount,
		SessionStart: payload.SessionStart,
		SessionEnd:   payload.SessionEnd,
	}
	if err := h.bookingSvc.Create(r.Context(), booking); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid booking id"})
		return
	}
	booking, err := h.bookingSvc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid booking id"})
		return
	}

	booking, err := h.bookingSvc.Confirm(r.Context(), actor, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

type cancelPayload struct {
	Reason string `json:"reason"`
}

func (h *BookingHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.cancelLike(w, r, h.bookingSvc.Reject)
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.cancelLike(w, r, h.bookingSvc.Cancel)
}

func (h *BookingHandler) cancelLike(w http.ResponseWriter, r *http.Request,
	transition func(ctx context.Context, actor domain.Actor, id int64, reason string) (*domain.Booking, error),
) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid booking id"})
		return
	}

	var payload cancelPayload
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&payload)
	}

	booking, err := transition(r.Context(), actor, id, payload.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) Complete(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid booking id"})
		return
	}

	booking, err := h.bookingSvc.Complete(r.Context(), actor, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}
