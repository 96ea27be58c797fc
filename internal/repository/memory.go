package repository

import (
	"context"
	"sort"
	"sync"

	"glacier_storefront/internal/model"
)

// In-memory repositories back the fully simulated deployment variant,
// where the gateway runs without Postgres. Service tests use them too.

// MemoryUserRepository implements UserRepository with a mutex-guarded map
type MemoryUserRepository struct {
	mu      sync.RWMutex
	users   map[string]model.User // keyed by id
	byEmail map[string]string     // email -> id
}

// NewMemoryUserRepository creates an empty in-memory user repository
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users:   make(map[string]model.User),
		byEmail: make(map[string]string),
	}
}

var _ UserRepository = (*MemoryUserRepository)(nil)

func (r *MemoryUserRepository) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = *user
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *MemoryUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	u := r.users[id]
	return &u, nil
}

func (r *MemoryUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// MemoryProductRepository implements ProductRepository, preserving
// insertion order so the catalog lists in seed order
type MemoryProductRepository struct {
	mu       sync.RWMutex
	products map[string]model.Product
	seq      []string
}

// NewMemoryProductRepository creates an empty in-memory product repository
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{products: make(map[string]model.Product)}
}

var _ ProductRepository = (*MemoryProductRepository)(nil)

func (r *MemoryProductRepository) FindAll(ctx context.Context) ([]model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	products := make([]model.Product, 0, len(r.seq))
	for _, id := range r.seq {
		products = append(products, r.products[id])
	}
	return products, nil
}

func (r *MemoryProductRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return &p, nil
}

func (r *MemoryProductRepository) Upsert(ctx context.Context, p *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.products[p.ID]; !exists {
		r.seq = append(r.seq, p.ID)
	}
	r.products[p.ID] = *p
	return nil
}

// MemoryOrderRepository implements OrderRepository over an append-only slice
type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders []model.Order
}

// NewMemoryOrderRepository creates an empty in-memory order repository
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{}
}

var _ OrderRepository = (*MemoryOrderRepository)(nil)

func (r *MemoryOrderRepository) Create(ctx context.Context, o *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append(r.orders, *o)
	return nil
}

func (r *MemoryOrderRepository) FindByUser(ctx context.Context, userID string) ([]model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []model.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sortOrdersNewestFirst(out)
	return out, nil
}

func (r *MemoryOrderRepository) FindAll(ctx context.Context) ([]model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Order, len(r.orders))
	copy(out, r.orders)
	sortOrdersNewestFirst(out)
	return out, nil
}

// Stable sort keeps insertion order for orders created within the same
// timestamp granularity.
func sortOrdersNewestFirst(orders []model.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}
