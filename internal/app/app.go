package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/corray333/finance-dashboard/internal/changefeed"
	"github.com/corray333/finance-dashboard/internal/dal/financeapi"
	"github.com/corray333/finance-dashboard/internal/dal/rabbitmq"
	"github.com/corray333/finance-dashboard/internal/dal/tokens"
	"github.com/corray333/finance-dashboard/internal/otel"
	"github.com/corray333/finance-dashboard/internal/service/services/dashboardsvc"
	httptransport "github.com/corray333/finance-dashboard/internal/transport/http"
	"github.com/corray333/finance-dashboard/internal/worker/poller"
	"github.com/corray333/finance-dashboard/internal/worker/publisher"
)

// App represents the application.
type App struct {
	dashboardSvc   *dashboardsvc.DashboardService
	transport      *httptransport.HTTPTransport
	pollerWorker   *poller.Worker
	publisher      *publisher.Worker
	rabbitClient   *rabbitmq.Client
	feed           *changefeed.Feed
	otelController *otel.OtelController
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	otelController := otel.MustInitOtel()

	tokenManager := tokens.NewManager()
	financeClient := financeapi.MustNewClient(tokenManager)
	feed := changefeed.New()

	dashboardSvc := dashboardsvc.MustNewDashboardService(
		dashboardsvc.WithUpstream(financeClient),
		dashboardsvc.WithChangeFeed(feed),
	)

	pollerWorker := poller.NewWorker(dashboardSvc, feed)

	a := &App{
		dashboardSvc:   dashboardSvc,
		pollerWorker:   pollerWorker,
		feed:           feed,
		otelController: otelController,
	}

	if viper.GetBool("rabbitmq.enabled") {
		a.rabbitClient = rabbitmq.MustNewClient()
		if err := a.rabbitClient.DeclareExchange(rabbitmq.DeclareExchangeConfig{
			Name:    viper.GetString("rabbitmq.publisher.exchange"),
			Kind:    "topic",
			Durable: true,
		}); err != nil {
			panic("Failed to declare exchange: " + err.Error())
		}
		a.publisher = publisher.NewWorker(a.rabbitClient, feed)
	}

	transport := httptransport.NewHTTPTransport(dashboardSvc, pollerWorker, feed)
	transport.RegisterRoutes()
	a.transport = transport

	return a
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	// Create a channel to receive OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)

			return err
		}

		return nil
	})

	g.Go(func() error {
		slog.Info("Starting new-orders poller")
		a.pollerWorker.Start(gctx)

		return nil
	})

	if a.publisher != nil {
		g.Go(func() error {
			slog.Info("Starting change publisher")
			a.publisher.Start(gctx)

			return nil
		})
	}

	select {
	case <-stop:
		slog.Info("Shutdown signal received")
	case <-gctx.Done():
		slog.Info("Component failed, shutting down")
	}
	cancel()

	a.gracefulShutdown()

	if err := g.Wait(); err != nil {
		slog.Error("Application exited with error", "error", err)
	}
}

// gracefulShutdown performs graceful shutdown of all application components.
// It shuts down components sequentially: HTTP server, workers, RabbitMQ, and OpenTelemetry.
func (a *App) gracefulShutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	a.pollerWorker.Stop()
	slog.Info("New-orders poller stopped gracefully")

	if a.publisher != nil {
		a.publisher.Stop()
		slog.Info("Change publisher stopped gracefully")
	}

	if a.rabbitClient != nil {
		if err := a.rabbitClient.Close(); err != nil {
			slog.Error("RabbitMQ connection close error", "error", err)
		} else {
			slog.Info("RabbitMQ connection closed gracefully")
		}
	}

	if err := a.otelController.Shutdown(); err != nil {
		slog.Error("Otel trace provider connection close error", "error", err)
	} else {
		slog.Info("Otel trace provider connection closed gracefully")
	}

	slog.Info("Application shutdown complete")
}
