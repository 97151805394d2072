package getstatistics

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/corray333/finance-dashboard/internal/service/models/period"
	"github.com/corray333/finance-dashboard/internal/service/models/statistics"
	"github.com/corray333/finance-dashboard/internal/transport/http/converters"
)

type service interface {
	Statistics(ctx context.Context, p period.Period) (statistics.Statistics, error)
}

// GetStatistics handles the statistics request. Unknown period tags fall
// back to the all-time window rather than failing the request, and an
// upstream failure degrades to empty statistics instead of an error view.
func GetStatistics(w http.ResponseWriter, r *http.Request, service service) {
	p := period.Parse(r.URL.Query().Get("period"))

	stats, err := service.Statistics(r.Context(), p)
	if err != nil {
		slog.Error("Error getting statistics", "error", err)
		stats = statistics.Compute(nil)
	}

	if err := json.NewEncoder(w).Encode(converters.StatisticsToResponse(stats)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response", "error", err)
	}
}
