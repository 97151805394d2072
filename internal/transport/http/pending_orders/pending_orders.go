package pendingorders

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/corray333/finance-dashboard/internal/service/models/order"
	"github.com/corray333/finance-dashboard/internal/transport/http/converters"
)

type service interface {
	PendingOrders(ctx context.Context) ([]order.Order, error)
}

type pendingOrdersResponse struct {
	Orders []converters.OrderResponse `json:"orders"`
}

// PendingOrders handles the pending orders request.
func PendingOrders(w http.ResponseWriter, r *http.Request, service service) {
	orders, err := service.PendingOrders(r.Context())
	if err != nil {
		// Degrades to an empty table; only the detail view surfaces
		// upstream errors.
		slog.Error("Error getting pending orders", "error", err)
		orders = nil
	}

	resp := pendingOrdersResponse{
		Orders: converters.OrdersToResponse(orders),
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response", "error", err)
	}
}
