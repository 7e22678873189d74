package order

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmarinho/orderdesk/internal/http/auth"
	"github.com/dmarinho/orderdesk/internal/order"
)

type Handler struct {
	svc *order.Service
}

func NewHandler(svc *order.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)

	r.With(auth.Require(auth.RoleAdmin, auth.RoleManager, auth.RoleStaff)).
		Patch("/{id}/status", h.updateStatus)
	r.With(auth.Require(auth.RoleAdmin, auth.RoleManager)).
		Post("/{id}/payments", h.recordPayment)
	r.With(auth.Require(auth.RoleAdmin)).
		Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := order.ListFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		status := order.NormalizeStatus(s)
		filter.Status = &status
	}

	if s := r.URL.Query().Get("partner_id"); s != "" {
		partnerID := s
		filter.PartnerID = &partnerID
	}

	if s := r.URL.Query().Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			start := t
			filter.StartDate = &start
		}
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			end := t
			filter.EndDate = &end
		}
	}

	// Partners only ever see their own orders, whatever the query says.
	if claims, ok := auth.FromContext(r.Context()); ok && claims.Role == auth.RolePartner {
		partnerID := claims.PartnerID
		filter.PartnerID = &partnerID
	}

	orders, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(orders)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	o, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if claims, ok := auth.FromContext(r.Context()); ok && claims.Role == auth.RolePartner && o.PartnerID != claims.PartnerID {
		http.Error(w, "order not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(o)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Status == "" {
		http.Error(w, "status is required", http.StatusBadRequest)
		return
	}

	if err := h.svc.UpdateStatus(r.Context(), id, req.Status); err != nil {
		if errors.Is(err, order.ErrNotFound) {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type recordPaymentRequest struct {
	Amount int64  `json:"amount"`
	Note   string `json:"note"`
}

func (h *Handler) recordPayment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req recordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	verifiedBy := ""
	if claims, ok := auth.FromContext(r.Context()); ok {
		verifiedBy = claims.Subject
	}

	p, err := h.svc.RecordPayment(r.Context(), id, req.Amount, req.Note, verifiedBy)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(paymentResponse{
		ID:         p.ID,
		Amount:     p.Amount,
		Note:       p.Note,
		VerifiedBy: p.VerifiedBy,
		CreatedAt:  p.CreatedAt,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, order.ErrNotFound) {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
