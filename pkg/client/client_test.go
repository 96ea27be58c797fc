package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"glacier_storefront/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envelopeServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func writeEnvelope(w http.ResponseWriter, status int, data any, errMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := map[string]any{"status": status}
	if errMsg != "" {
		body["error"] = errMsg
	} else {
		body["data"] = data
	}
	_ = json.NewEncoder(w).Encode(body)
}

func TestRequest_Success(t *testing.T) {
	srv := envelopeServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/product/list", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		writeEnvelope(w, http.StatusOK, []model.Product{{ID: "p1", Name: "Midnight Charcoal"}}, "")
	})

	g := New(srv.URL, time.Second)
	env := g.Request(context.Background(), "product", "/list", Options{})

	require.True(t, env.OK())
	assert.Equal(t, http.StatusOK, env.Status)

	var products []model.Product
	require.NoError(t, env.Decode(&products))
	require.Len(t, products, 1)
	assert.Equal(t, "p1", products[0].ID)
}

func TestRequest_BusinessErrorPassesThrough(t *testing.T) {
	srv := envelopeServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, nil, "invalid credentials")
	})

	g := New(srv.URL, time.Second)
	env := g.Request(context.Background(), "auth", "/login", Options{
		Method: http.MethodPost,
		Body:   model.LoginRequest{Email: "ann@x.io", Password: "wrong"},
	})

	assert.False(t, env.OK())
	assert.Equal(t, http.StatusUnauthorized, env.Status)
	assert.Equal(t, "invalid credentials", env.Error)
}

func TestRequest_UnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	g := New(srv.URL, time.Second)
	env := g.Request(context.Background(), "product", "/list", Options{})

	assert.Equal(t, http.StatusServiceUnavailable, env.Status)
	assert.Equal(t, "connection failed", env.Error)
	assert.Nil(t, env.Data)
}

func TestRequest_SlowUpstreamTimesOut(t *testing.T) {
	release := make(chan struct{})
	srv := envelopeServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	g := New(srv.URL, 50*time.Millisecond)
	env := g.Request(context.Background(), "product", "/list", Options{})

	assert.Equal(t, http.StatusGatewayTimeout, env.Status)
	assert.Equal(t, "gateway timed out", env.Error)
}

func TestRequest_CancelledContextTimesOut(t *testing.T) {
	release := make(chan struct{})
	srv := envelopeServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	g := New(srv.URL, time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	env := g.Request(ctx, "product", "/list", Options{})
	assert.Equal(t, http.StatusGatewayTimeout, env.Status)
}

func TestRequest_NonEnvelopeSuccessBody(t *testing.T) {
	srv := envelopeServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("pong"))
	})

	g := New(srv.URL, time.Second)
	env := g.Request(context.Background(), "product", "/list", Options{})

	assert.Equal(t, http.StatusOK, env.Status)
	assert.Equal(t, "pong", string(env.Data))
}

func TestRequest_NonEnvelopeErrorBody(t *testing.T) {
	srv := envelopeServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal chaos", http.StatusInternalServerError)
	})

	g := New(srv.URL, time.Second)
	env := g.Request(context.Background(), "product", "/list", Options{})

	assert.Equal(t, http.StatusInternalServerError, env.Status)
	assert.Equal(t, "gateway returned an unexpected response", env.Error)
}

func TestRequest_ForwardsBearerToken(t *testing.T) {
	srv := envelopeServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		writeEnvelope(w, http.StatusOK, []model.Order{}, "")
	})

	g := New(srv.URL, time.Second)
	env := g.Request(context.Background(), "order", "/my-orders", Options{
		Method: http.MethodPost,
		Body:   model.MyOrdersRequest{UserID: "u1"},
		Token:  "tok-123",
	})
	assert.True(t, env.OK())
}

func TestNew_ZeroTimeoutFallsBackToDefault(t *testing.T) {
	g := New("http://localhost:1", 0)
	assert.Equal(t, DefaultTimeout, g.httpClient.Timeout)
}

func TestLogin_TypedHelper(t *testing.T) {
	srv := envelopeServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/login", r.URL.Path)

		var req model.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ann@x.io", req.Email)

		writeEnvelope(w, http.StatusOK, model.AuthResponse{
			Token: "tok-123",
			User:  model.SafeUser{ID: "u-1", Email: req.Email, Name: "Ann", Role: model.RoleCustomer},
		}, "")
	})

	g := New(srv.URL, time.Second)
	auth, env := g.Login(context.Background(), "ann@x.io", "p1secret")

	require.True(t, env.OK())
	require.NotNil(t, auth)
	assert.Equal(t, "tok-123", auth.Token)
	assert.Equal(t, "u-1", auth.User.ID)
}

func TestLogin_TypedHelper_Failure(t *testing.T) {
	srv := envelopeServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, nil, "invalid user. please create an account")
	})

	g := New(srv.URL, time.Second)
	auth, env := g.Login(context.Background(), "nobody@x.io", "p1secret")

	assert.Nil(t, auth)
	assert.Equal(t, http.StatusUnauthorized, env.Status)
	assert.Contains(t, env.Error, "create an account")
}

func TestProductDetail_TypedHelper(t *testing.T) {
	srv := envelopeServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/product/detail/p1", r.URL.Path)
		writeEnvelope(w, http.StatusOK, model.Product{ID: "p1", Name: "Midnight Charcoal", Price: 8.50}, "")
	})

	g := New(srv.URL, time.Second)
	p, env := g.ProductDetail(context.Background(), "p1")

	require.True(t, env.OK())
	require.NotNil(t, p)
	assert.Equal(t, "Midnight Charcoal", p.Name)
}

func TestCreateOrder_TypedHelper_MalformedData(t *testing.T) {
	srv := envelopeServer(t, func(w http.ResponseWriter, r *http.Request) {
		// Envelope-shaped, but data is not an order
		writeEnvelope(w, http.StatusOK, "not-an-order", "")
	})

	g := New(srv.URL, time.Second)
	order, env := g.CreateOrder(context.Background(), "tok-123", model.CreateOrderRequest{
		UserID: "u1",
		Items:  []model.CreateOrderItem{{ProductID: "p1", Quantity: 1}},
	})

	assert.Nil(t, order)
	assert.Equal(t, http.StatusBadGateway, env.Status)
	assert.Equal(t, "gateway returned an unexpected response", env.Error)
}
