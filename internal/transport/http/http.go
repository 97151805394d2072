package httptransport

import (
	"context"
	_ "embed"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/corray333/finance-dashboard/internal/service/models/order"
	"github.com/corray333/finance-dashboard/internal/service/models/period"
	"github.com/corray333/finance-dashboard/internal/service/models/statistics"
	"github.com/corray333/finance-dashboard/internal/service/services/dashboardsvc"
	changeorder "github.com/corray333/finance-dashboard/internal/transport/http/change_order"
	getorder "github.com/corray333/finance-dashboard/internal/transport/http/get_order"
	getstatistics "github.com/corray333/finance-dashboard/internal/transport/http/get_statistics"
	listorders "github.com/corray333/finance-dashboard/internal/transport/http/list_orders"
	neworders "github.com/corray333/finance-dashboard/internal/transport/http/new_orders"
	pendingorders "github.com/corray333/finance-dashboard/internal/transport/http/pending_orders"
	"github.com/corray333/finance-dashboard/pkg/http/middleware/trace"
	"github.com/corray333/finance-dashboard/pkg/logger"
)

//go:embed openapi.json
var openAPIDoc []byte

type service interface {
	Statistics(ctx context.Context, p period.Period) (statistics.Statistics, error)
	ListOrders(ctx context.Context, model order.ListOrdersModel) (order.Listing, error)
	PendingOrders(ctx context.Context) ([]order.Order, error)
	OrderDetails(ctx context.Context, id string) (*order.Order, error)
	RequestChange(orderID string, field order.Field, newValue string) (dashboardsvc.PendingChange, error)
	ConfirmChange(ctx context.Context, id uuid.UUID) error
	CancelChange(id uuid.UUID) error
}

// snapshot serves the unseen-orders set kept fresh by the poller.
type snapshot interface {
	Snapshot() ([]order.Order, time.Time)
}

// counter reports how many changes have been committed since startup.
type counter interface {
	Counter() uint64
}

type HTTPTransport struct {
	server   *http.Server
	router   *chi.Mux
	service  service
	snapshot snapshot
	counter  counter
}

func NewHTTPTransport(service service, snapshot snapshot, counter counter) *HTTPTransport {
	router := newRouter()
	server := newServer(router)
	return &HTTPTransport{
		server:   server,
		router:   router,
		service:  service,
		snapshot: snapshot,
		counter:  counter,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/api", func(r chi.Router) {
		r.Get("/statistics", h.getStatistics)
		r.Get("/orders", h.listOrders)
		r.Get("/orders/new", h.newOrders)
		r.Get("/orders/pending", h.pendingOrders)
		r.Get("/orders/{id}", h.getOrder)
		r.Post("/orders/{id}/changes", h.requestChange)
		r.Post("/changes/{id}/confirm", h.confirmChange)
		r.Delete("/changes/{id}", h.cancelChange)
		r.Get("/changes/counter", h.getCounter)
	})

	h.router.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(openAPIDoc)
	})
	h.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
}

func (h *HTTPTransport) getStatistics(w http.ResponseWriter, r *http.Request) {
	getstatistics.GetStatistics(w, r, h.service)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.service)
}

func (h *HTTPTransport) newOrders(w http.ResponseWriter, r *http.Request) {
	neworders.NewOrders(w, r, h.snapshot)
}

func (h *HTTPTransport) pendingOrders(w http.ResponseWriter, r *http.Request) {
	pendingorders.PendingOrders(w, r, h.service)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	getorder.GetOrder(w, r, h.service)
}

func (h *HTTPTransport) requestChange(w http.ResponseWriter, r *http.Request) {
	changeorder.RequestChange(w, r, h.service)
}

func (h *HTTPTransport) confirmChange(w http.ResponseWriter, r *http.Request) {
	changeorder.ConfirmChange(w, r, h.service)
}

func (h *HTTPTransport) cancelChange(w http.ResponseWriter, r *http.Request) {
	changeorder.CancelChange(w, r, h.service)
}

func (h *HTTPTransport) getCounter(w http.ResponseWriter, r *http.Request) {
	changeorder.GetCounter(w, r, h.counter)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(trace.NewTraceMiddleware)

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
