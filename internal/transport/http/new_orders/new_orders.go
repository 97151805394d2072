package neworders

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/corray333/finance-dashboard/internal/service/models/order"
	"github.com/corray333/finance-dashboard/internal/transport/http/converters"
)

// snapshot serves the last successfully fetched unseen-orders set; the
// poller keeps it fresh in the background so this endpoint never blocks
// on the upstream.
type snapshot interface {
	Snapshot() ([]order.Order, time.Time)
}

type newOrdersResponse struct {
	Orders    []converters.OrderResponse `json:"orders"`
	UpdatedAt time.Time                  `json:"updatedAt"`
}

// NewOrders handles the unseen orders request.
func NewOrders(w http.ResponseWriter, r *http.Request, snapshot snapshot) {
	orders, updatedAt := snapshot.Snapshot()

	resp := newOrdersResponse{
		Orders:    converters.OrdersToResponse(orders),
		UpdatedAt: updatedAt,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response", "error", err)
	}
}
