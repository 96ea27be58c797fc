// Package client is the caller-facing gateway facade. It owns the
// transport detail and normalizes transport failures, business failures
// and successes into the same envelope shape; callers never see a raw
// error.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"glacier_storefront/internal/model"
)

// DefaultTimeout bounds every network call when the caller does not
// choose one.
const DefaultTimeout = 6 * time.Second

const apiPrefix = "/api/v1"

// Gateway is the single entry point the UI layer calls
type Gateway struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Gateway facade for the given base address. A zero
// timeout falls back to DefaultTimeout.
func New(baseURL string, timeout time.Duration) *Gateway {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Gateway{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Options configures a single facade request
type Options struct {
	Method string // defaults to GET
	Body   any    // marshaled to JSON when non-nil
	Token  string // bearer token for guarded endpoints
}

// Request performs one gateway call and always returns an envelope:
// timeouts map to 504, unreachable transport to 503, business failures
// to their upstream status, successes to {data, 200}.
func (g *Gateway) Request(ctx context.Context, service, endpoint string, opts Options) model.Envelope {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var reqBody io.Reader
	if opts.Body != nil {
		payload, err := json.Marshal(opts.Body)
		if err != nil {
			return model.Envelope{Error: "invalid request body", Status: http.StatusBadRequest}
		}
		reqBody = bytes.NewReader(payload)
	}

	url := g.baseURL + apiPrefix + "/" + service + endpoint
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return model.Envelope{Error: "invalid request", Status: http.StatusBadRequest}
	}
	req.Header.Set("Content-Type", "application/json")
	if opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.Token)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return model.Envelope{Error: "gateway timed out", Status: http.StatusGatewayTimeout}
		}
		return model.Envelope{Error: "connection failed", Status: http.StatusServiceUnavailable}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.Envelope{Error: "connection failed", Status: http.StatusServiceUnavailable}
	}

	var env model.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		// Upstream spoke something other than the envelope shape
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return model.Envelope{Data: raw, Status: http.StatusOK}
		}
		return model.Envelope{Error: "gateway returned an unexpected response", Status: resp.StatusCode}
	}
	if env.Status == 0 {
		env.Status = resp.StatusCode
	}
	if resp.StatusCode >= 400 && env.Error == "" {
		env.Error = http.StatusText(resp.StatusCode)
		env.Data = nil
	}
	return env
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}

// --- Typed helpers, thin wrappers over Request ---

// Login authenticates and returns the token + sanitized user
func (g *Gateway) Login(ctx context.Context, email, password string) (*model.AuthResponse, model.Envelope) {
	env := g.Request(ctx, "auth", "/login", Options{
		Method: http.MethodPost,
		Body:   model.LoginRequest{Email: email, Password: password},
	})
	return decodeAuth(env)
}

// Register creates an account and returns the token + sanitized user
func (g *Gateway) Register(ctx context.Context, name, email, password string) (*model.AuthResponse, model.Envelope) {
	env := g.Request(ctx, "auth", "/register", Options{
		Method: http.MethodPost,
		Body:   model.RegisterRequest{Name: name, Email: email, Password: password},
	})
	return decodeAuth(env)
}

// ListProducts returns the full catalog
func (g *Gateway) ListProducts(ctx context.Context) ([]model.Product, model.Envelope) {
	env := g.Request(ctx, "product", "/list", Options{})
	if !env.OK() {
		return nil, env
	}
	var products []model.Product
	if err := env.Decode(&products); err != nil {
		return nil, malformed(env)
	}
	return products, env
}

// ProductDetail returns one product by id
func (g *Gateway) ProductDetail(ctx context.Context, id string) (*model.Product, model.Envelope) {
	env := g.Request(ctx, "product", "/detail/"+id, Options{})
	if !env.OK() {
		return nil, env
	}
	var p model.Product
	if err := env.Decode(&p); err != nil {
		return nil, malformed(env)
	}
	return &p, env
}

// CreateOrder places an order for the authenticated user
func (g *Gateway) CreateOrder(ctx context.Context, token string, req model.CreateOrderRequest) (*model.Order, model.Envelope) {
	env := g.Request(ctx, "order", "/create", Options{
		Method: http.MethodPost,
		Body:   req,
		Token:  token,
	})
	if !env.OK() {
		return nil, env
	}
	var o model.Order
	if err := env.Decode(&o); err != nil {
		return nil, malformed(env)
	}
	return &o, env
}

// MyOrders returns the authenticated user's order history
func (g *Gateway) MyOrders(ctx context.Context, token, userID string) ([]model.Order, model.Envelope) {
	env := g.Request(ctx, "order", "/my-orders", Options{
		Method: http.MethodPost,
		Body:   model.MyOrdersRequest{UserID: userID},
		Token:  token,
	})
	if !env.OK() {
		return nil, env
	}
	var orders []model.Order
	if err := env.Decode(&orders); err != nil {
		return nil, malformed(env)
	}
	return orders, env
}

func decodeAuth(env model.Envelope) (*model.AuthResponse, model.Envelope) {
	if !env.OK() {
		return nil, env
	}
	var out model.AuthResponse
	if err := env.Decode(&out); err != nil {
		return nil, malformed(env)
	}
	return &out, env
}

func malformed(env model.Envelope) model.Envelope {
	env.Data = nil
	env.Error = "gateway returned an unexpected response"
	env.Status = http.StatusBadGateway
	return env
}
