package getorder

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/corray333/finance-dashboard/internal/dal/financeapi"
	"github.com/corray333/finance-dashboard/internal/service/models/order"
	"github.com/corray333/finance-dashboard/internal/transport/http/converters"
)

type service interface {
	OrderDetails(ctx context.Context, id string) (*order.Order, error)
}

// GetOrder handles the order details request. Unlike the list views,
// this is the one view where an upstream failure is surfaced to the
// caller instead of degrading to an empty result.
func GetOrder(w http.ResponseWriter, r *http.Request, service service) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "order id is required", http.StatusBadRequest)

		return
	}

	result, err := service.OrderDetails(r.Context(), id)
	if err != nil {
		var httpErr *financeapi.HTTPError
		if errors.As(err, &httpErr) || errors.Is(err, financeapi.ErrDataShape) {
			http.Error(w, err.Error(), http.StatusBadGateway)
		} else {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		slog.Error("Error getting order details", "order_id", id, "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(converters.OrderToResponse(result)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response", "error", err)
	}
}
