package changeorder

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/corray333/finance-dashboard/internal/dal/financeapi"
	"github.com/corray333/finance-dashboard/internal/service/models/order"
	"github.com/corray333/finance-dashboard/internal/service/services/dashboardsvc"
)

// service is an interface for the service layer.
type service interface {
	RequestChange(orderID string, field order.Field, newValue string) (dashboardsvc.PendingChange, error)
	ConfirmChange(ctx context.Context, id uuid.UUID) error
	CancelChange(id uuid.UUID) error
}

// counter reports how many changes have been committed since startup.
type counter interface {
	Counter() uint64
}

// requestChangeRequest represents a single-field change request.
type requestChangeRequest struct {
	Field string `json:"field" validate:"required"`
	Value string `json:"value" validate:"required"`
}

// Validate validates the change request.
func (r *requestChangeRequest) Validate() error {
	return validator.New().Struct(r)
}

// RequestChange handles the first phase of a mutation: it validates the
// field and value and registers a pending change without touching the
// upstream.
func RequestChange(w http.ResponseWriter, r *http.Request, service service) {
	orderID := chi.URLParam(r, "id")

	changeReq := requestChangeRequest{}
	if err := json.NewDecoder(r.Body).Decode(&changeReq); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for change request", "error", err)

		return
	}

	if err := changeReq.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for change request", "error", err)

		return
	}

	field, err := order.ParseField(changeReq.Field)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error parsing change field", "field", changeReq.Field, "error", err)

		return
	}

	change, err := service.RequestChange(orderID, field, changeReq.Value)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error registering pending change", "order_id", orderID, "error", err)

		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(change); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response", "error", err)
	}
}

// ConfirmChange handles the second phase: it executes a previously
// requested change against the upstream.
func ConfirmChange(w http.ResponseWriter, r *http.Request, service service) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	if err := service.ConfirmChange(r.Context(), id); err != nil {
		writeChangeError(w, err)
		slog.Error("Error confirming change", "change_id", id, "error", err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CancelChange discards a previously requested change.
func CancelChange(w http.ResponseWriter, r *http.Request, service service) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	if err := service.CancelChange(id); err != nil {
		writeChangeError(w, err)
		slog.Error("Error cancelling change", "change_id", id, "error", err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type counterResponse struct {
	Counter uint64 `json:"counter"`
}

// GetCounter handles the committed-changes counter request.
func GetCounter(w http.ResponseWriter, r *http.Request, counter counter) {
	if err := json.NewEncoder(w).Encode(counterResponse{Counter: counter.Counter()}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response", "error", err)
	}
}

func writeChangeError(w http.ResponseWriter, err error) {
	var httpErr *financeapi.HTTPError

	switch {
	case errors.Is(err, dashboardsvc.ErrUnknownChange):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, dashboardsvc.ErrChangeExpired):
		http.Error(w, err.Error(), http.StatusGone)
	case errors.As(err, &httpErr):
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
