package financeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/corray333/finance-dashboard/internal/dal/tokens"
	"github.com/corray333/finance-dashboard/internal/service/models/order"
)

const tracerName = "finance-dashboard"

// Client talks to the remote finance API. It is read-mostly: order,
// item, and waiter records are owned by the upstream; the only writes
// are single-field PATCH updates.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     *tokens.Manager
	validate   *validator.Validate
}

// NewClient creates a client against baseURL.
func NewClient(baseURL string, timeout time.Duration, tokenManager *tokens.Manager) *Client {
	v := validator.New()
	// decimal.Decimal is opaque to the validator; expose it as float64
	// so numeric tags like gte=0 apply.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()

			return f
		}

		return nil
	}, decimal.Decimal{})

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokenManager,
		validate:   v,
	}
}

// MustNewClient creates a client from configuration.
func MustNewClient(tokenManager *tokens.Manager) *Client {
	baseURL := viper.GetString("upstream.base_url")
	if baseURL == "" {
		panic("upstream.base_url is not configured")
	}

	timeoutSeconds := viper.GetInt("upstream.timeout_seconds")
	if timeoutSeconds == 0 {
		timeoutSeconds = 10
	}

	return NewClient(baseURL, time.Duration(timeoutSeconds)*time.Second, tokenManager)
}

// ListOrders fetches all orders with embedded waiters and line items.
func (c *Client) ListOrders(ctx context.Context) ([]order.Order, error) {
	return c.listOrders(ctx, "financeapi.ListOrders", "/finance_info/")
}

// ListNewOrders fetches orders the upstream considers unseen.
func (c *Client) ListNewOrders(ctx context.Context) ([]order.Order, error) {
	return c.listOrders(ctx, "financeapi.ListNewOrders", "/finance_info/new")
}

// ListPendingOrders fetches orders with status pending.
func (c *Client) ListPendingOrders(ctx context.Context) ([]order.Order, error) {
	return c.listOrders(ctx, "financeapi.ListPendingOrders", "/finance_info/pending")
}

func (c *Client) listOrders(ctx context.Context, spanName, path string) ([]order.Order, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, spanName,
		trace.WithSpanKind(trace.SpanKindClient),
	)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	var orders []order.Order
	if err := json.NewDecoder(resp.Body).Decode(&orders); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataShape, err)
	}

	for i := range orders {
		if err := c.validate.Struct(&orders[i]); err != nil {
			return nil, fmt.Errorf("%w: order %s: %v", ErrDataShape, orders[i].ID, err)
		}
	}

	return orders, nil
}

// GetOrder fetches a single order with its line items.
func (c *Client) GetOrder(ctx context.Context, id string) (*order.Order, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "financeapi.GetOrder",
		trace.WithSpanKind(trace.SpanKindClient),
	)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/orderitem/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	var o order.Order
	if err := json.NewDecoder(resp.Body).Decode(&o); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataShape, err)
	}
	if err := c.validate.Struct(&o); err != nil {
		return nil, fmt.Errorf("%w: order %s: %v", ErrDataShape, id, err)
	}

	return &o, nil
}

// UpdateOrderField sends a partial update for exactly one field of one
// order. There is no retry and no rollback; the caller re-fetches from
// the upstream, which stays the sole source of truth.
func (c *Client) UpdateOrderField(ctx context.Context, id string, field order.Field, newValue string) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "financeapi.UpdateOrderField",
		trace.WithSpanKind(trace.SpanKindClient),
	)
	defer span.End()

	payload, err := json.Marshal(map[string]string{field.String(): newValue})
	if err != nil {
		return fmt.Errorf("failed to marshal update payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch,
		c.baseURL+"/finance_info/"+id, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to update order %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	return nil
}

// authorize attaches the bearer token. A missing token still produces an
// empty bearer value; the upstream decides what to do with it.
func (c *Client) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.tokens.Token())
}
