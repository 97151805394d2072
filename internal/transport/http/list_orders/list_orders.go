package listorders

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/schema"

	"github.com/corray333/finance-dashboard/internal/service/models/order"
	"github.com/corray333/finance-dashboard/internal/service/models/period"
	"github.com/corray333/finance-dashboard/internal/transport/http/converters"
	"github.com/corray333/finance-dashboard/pkg/paging"
)

type service interface {
	ListOrders(ctx context.Context, model order.ListOrdersModel) (order.Listing, error)
}

type queryOrdersRequest struct {
	Period   string `schema:"period,omitempty"`
	Page     int    `schema:"page,omitempty"`
	PageSize int    `schema:"pageSize,omitempty"`
}

func (q *queryOrdersRequest) ToModel() order.ListOrdersModel {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.PageSize == 0 {
		q.PageSize = 10
	}

	return order.ListOrdersModel{
		Period:   period.Parse(q.Period),
		Page:     q.Page,
		PageSize: q.PageSize,
	}
}

type listOrdersResponse struct {
	Orders      []converters.OrderResponse `json:"orders"`
	Total       int                        `json:"total"`
	TotalIncome string                     `json:"totalIncome"`
	Page        int                        `json:"page"`
	PageSize    int                        `json:"pageSize"`
	Pages       int                        `json:"pages"`
}

// ListOrders handles the order history request: a period-filtered,
// paginated slice plus totals over the whole filtered set.
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	decoder := schema.NewDecoder()
	query := &queryOrdersRequest{}
	err := decoder.Decode(query, r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request", "error", err)

		return
	}

	model := query.ToModel()

	listing, err := service.ListOrders(r.Context(), model)
	if err != nil {
		if errors.Is(err, paging.ErrInvalidPage) {
			http.Error(w, err.Error(), http.StatusBadRequest)

			return
		}

		// Upstream failure degrades to an empty table, same as an empty
		// result; only the detail view surfaces upstream errors.
		slog.Error("Error getting orders", "error", err)
		listing = order.Listing{Page: model.Page, PageSize: model.PageSize}
	}

	resp := listOrdersResponse{
		Orders:      converters.OrdersToResponse(listing.Orders),
		Total:       listing.Total,
		TotalIncome: listing.TotalIncome.StringFixed(2),
		Page:        listing.Page,
		PageSize:    listing.PageSize,
		Pages:       paging.Pages(listing.Total, listing.PageSize),
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response", "error", err)
	}
}
