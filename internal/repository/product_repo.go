package repository

import (
	"context"
	"errors"
	"fmt"

	"glacier_storefront/internal/model"

	"github.com/jackc/pgx/v5"
)

// ProductRepository defines operations for catalog data. Upsert exists
// only for startup seeding; the catalog is read-only once the server is up.
type ProductRepository interface {
	FindAll(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id string) (*model.Product, error)
	Upsert(ctx context.Context, product *model.Product) error
}

type productRepository struct {
	db DB
}

// NewProductRepository creates a new ProductRepository backed by Postgres
func NewProductRepository(db DB) ProductRepository {
	return &productRepository{db: db}
}

// FindAll returns the full product set in insertion order
func (r *productRepository) FindAll(ctx context.Context) ([]model.Product, error) {
	sql := `SELECT id, name, description, price, category, image_url, inventory, tags
            FROM products ORDER BY seq`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.ImageURL, &p.Inventory, &p.Tags); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}
	return products, nil
}

// FindByID retrieves a single product
func (r *productRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	p := &model.Product{}
	sql := `SELECT id, name, description, price, category, image_url, inventory, tags
            FROM products WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.ImageURL, &p.Inventory, &p.Tags)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return p, nil
}

// Upsert inserts a product or refreshes an existing one by id
func (r *productRepository) Upsert(ctx context.Context, p *model.Product) error {
	sql := `INSERT INTO products (id, name, description, price, category, image_url, inventory, tags)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
            ON CONFLICT (id) DO UPDATE SET
                name = EXCLUDED.name,
                description = EXCLUDED.description,
                price = EXCLUDED.price,
                category = EXCLUDED.category,
                image_url = EXCLUDED.image_url,
                inventory = EXCLUDED.inventory,
                tags = EXCLUDED.tags`
	_, err := r.db.Exec(ctx, sql, p.ID, p.Name, p.Description, p.Price, p.Category, p.ImageURL, p.Inventory, p.Tags)
	if err != nil {
		return fmt.Errorf("failed to upsert product: %w", err)
	}
	return nil
}
