package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"glacier_storefront/internal/model"
	"glacier_storefront/internal/service"
)

// ValidationError reports a malformed or incomplete request body. It is
// surfaced to the caller as a 400 and not logged as a system fault.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationErrorf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// resolveCaller reconciles a body-supplied user id with the
// authenticated caller. The token wins: an omitted body id falls back to
// the caller, a conflicting one is rejected.
func resolveCaller(req Request, bodyUserID string) (string, error) {
	if req.UserID == "" {
		return bodyUserID, nil
	}
	if bodyUserID != "" && bodyUserID != req.UserID {
		return "", validationErrorf("userId does not match the authenticated user")
	}
	return req.UserID, nil
}

func decodeBody(req Request, v any) error {
	if len(req.Body) == 0 {
		return validationErrorf("request body is required")
	}
	if err := json.Unmarshal(req.Body, v); err != nil {
		return validationErrorf("invalid request body: %v", err)
	}
	return nil
}

// NewStorefrontRouter builds and validates the full dispatch table over
// the injected controllers. This is the complete external surface; every
// client request resolves through the table it returns.
func NewStorefrontRouter(
	auth service.AuthService,
	products service.ProductService,
	orders service.OrderService,
	recommender service.RecommendService,
) (*Router, error) {
	r := New()

	r.Register("auth", "/login", "POST", func(ctx context.Context, req Request) (any, error) {
		var body model.LoginRequest
		if err := decodeBody(req, &body); err != nil {
			return nil, err
		}
		if body.Email == "" || body.Password == "" {
			return nil, validationErrorf("email and password are required")
		}
		return auth.Login(ctx, body.Email, body.Password)
	})

	r.Register("auth", "/register", "POST", func(ctx context.Context, req Request) (any, error) {
		var body model.RegisterRequest
		if err := decodeBody(req, &body); err != nil {
			return nil, err
		}
		if body.Name == "" || body.Email == "" || body.Password == "" {
			return nil, validationErrorf("name, email and password are required")
		}
		if len(body.Password) < 6 {
			return nil, validationErrorf("password must be at least 6 characters")
		}
		return auth.Register(ctx, body.Name, body.Email, body.Password)
	})

	r.Register("product", "/list", "GET", func(ctx context.Context, req Request) (any, error) {
		return products.ListProducts(ctx)
	})

	r.Register("product", "/detail/{id}", "GET", func(ctx context.Context, req Request) (any, error) {
		return products.GetProduct(ctx, req.Param)
	})
	r.Alias("catalog", "product")

	r.Register("order", "/create", "POST", func(ctx context.Context, req Request) (any, error) {
		var body model.CreateOrderRequest
		if err := decodeBody(req, &body); err != nil {
			return nil, err
		}
		userID, err := resolveCaller(req, body.UserID)
		if err != nil {
			return nil, err
		}
		body.UserID = userID
		return orders.CreateOrder(ctx, body)
	})

	r.Register("order", "/my-orders", "POST", func(ctx context.Context, req Request) (any, error) {
		var body model.MyOrdersRequest
		if err := decodeBody(req, &body); err != nil {
			return nil, err
		}
		userID, err := resolveCaller(req, body.UserID)
		if err != nil {
			return nil, err
		}
		return orders.ListOrdersForUser(ctx, userID)
	})

	r.Register("order", "/all", "POST", func(ctx context.Context, req Request) (any, error) {
		return orders.ListAllOrders(ctx)
	})

	r.Register("ai", "/recommend", "POST", func(ctx context.Context, req Request) (any, error) {
		var body service.RecommendRequest
		if err := decodeBody(req, &body); err != nil {
			return nil, err
		}
		if body.Prompt == "" {
			return nil, validationErrorf("prompt is required")
		}
		return recommender.Recommend(ctx, body.Prompt)
	})

	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("invalid gateway routing table: %w", err)
	}
	return r, nil
}
