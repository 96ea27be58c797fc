package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"glacier_storefront/internal/model"
	"glacier_storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyOrder       = errors.New("order must contain at least one item")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
	ErrUnknownProduct   = errors.New("order references an unknown product")
	ErrTotalMismatch    = errors.New("submitted total does not match catalog prices")
	ErrMissingUser      = errors.New("order must belong to a user")
)

// OrderService handles order business logic
type OrderService interface {
	CreateOrder(ctx context.Context, req model.CreateOrderRequest) (*model.Order, error)
	ListOrdersForUser(ctx context.Context, userID string) ([]model.Order, error)
	ListAllOrders(ctx context.Context) ([]model.Order, error)
}

type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

// CreateOrder validates the requested items against the catalog,
// snapshots product data into line items, recomputes the total from
// catalog prices and persists the order as PENDING.
//
// Inventory is not decremented; the catalog stays read-only.
func (s *orderService) CreateOrder(ctx context.Context, req model.CreateOrderRequest) (*model.Order, error) {
	if req.UserID == "" {
		return nil, ErrMissingUser
	}
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	items := make([]model.OrderItem, 0, len(req.Items))
	total := decimal.Zero
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		product, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return nil, ErrUnknownProduct
			}
			return nil, fmt.Errorf("failed to load product %s: %w", item.ProductID, err)
		}
		items = append(items, model.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  item.Quantity,
		})
		line := decimal.NewFromFloat(product.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}

	computedTotal := total.Round(2).InexactFloat64()

	// A client-submitted total is advisory; reject it only when it
	// disagrees with the catalog by more than a cent.
	if req.Total != nil && math.Abs(*req.Total-computedTotal) > 0.01 {
		return nil, ErrTotalMismatch
	}

	order := &model.Order{
		ID:        newOrderID(),
		UserID:    req.UserID,
		Items:     items,
		Total:     computedTotal,
		Status:    model.OrderStatusPending,
		CreatedAt: time.Now(),
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	return order, nil
}

// ListOrdersForUser returns the user's order history, most recent first
func (s *orderService) ListOrdersForUser(ctx context.Context, userID string) ([]model.Order, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}
	orders, err := s.orderRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for user: %w", err)
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}

// ListAllOrders returns every order, most recent first. The HTTP layer
// restricts this to admins.
func (s *orderService) ListAllOrders(ctx context.Context) ([]model.Order, error) {
	orders, err := s.orderRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list all orders: %w", err)
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}

// newOrderID generates an order id, e.g. "ORD-9F8A3C1D"
func newOrderID() string {
	return "ORD-" + strings.ToUpper(strings.Split(uuid.NewString(), "-")[0])
}
