package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"glacier_storefront/internal/model"
	"glacier_storefront/internal/repository"
	"glacier_storefront/internal/utils"
)

// LoadSeedProducts reads and validates the catalog seed file. Seed data
// is configuration, not code: the file path comes from SEED_FILE.
func LoadSeedProducts(path string) ([]model.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read seed file %s: %w", path, err)
	}

	var products []model.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("seed file %s is not valid JSON: %w", path, err)
	}

	for i, p := range products {
		if p.ID == "" || p.Name == "" {
			return nil, fmt.Errorf("seed product %d is missing id or name", i)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("seed product %s has a negative price", p.ID)
		}
		if p.Inventory < 0 {
			return nil, fmt.Errorf("seed product %s has a negative inventory", p.ID)
		}
		if !model.ValidCategory(p.Category) {
			return nil, fmt.Errorf("seed product %s has unknown category %q", p.ID, p.Category)
		}
	}
	return products, nil
}

// SeedProducts upserts the seed catalog into the product repository.
// Upsert keeps restarts idempotent without reseed-on-mismatch heuristics.
func SeedProducts(ctx context.Context, repo repository.ProductRepository, products []model.Product) error {
	for i := range products {
		if err := repo.Upsert(ctx, &products[i]); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", products[i].ID, err)
		}
	}
	return nil
}

// SeedUser is one identity entry in the seed users file. The password is
// plaintext in the file and hashed at seed time.
type SeedUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoadSeedUsers reads and validates the identity seed file. The file
// carries the accounts a fresh store starts with, including the admin
// that unlocks the admin-only order listing.
func LoadSeedUsers(path string) ([]SeedUser, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read seed users file %s: %w", path, err)
	}

	var users []SeedUser
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("seed users file %s is not valid JSON: %w", path, err)
	}

	for i, u := range users {
		if u.ID == "" || u.Email == "" || u.Name == "" {
			return nil, fmt.Errorf("seed user %d is missing id, email or name", i)
		}
		if u.Password == "" {
			return nil, fmt.Errorf("seed user %s has an empty password", u.Email)
		}
		if !model.ValidRole(u.Role) {
			return nil, fmt.Errorf("seed user %s has unknown role %q", u.Email, u.Role)
		}
	}
	return users, nil
}

// SeedUsers creates the seed accounts that do not exist yet. Existing
// accounts are left untouched, so a password changed after first boot
// survives restarts.
func SeedUsers(ctx context.Context, repo repository.UserRepository, users []SeedUser) error {
	for _, u := range users {
		existing, err := repo.FindByEmail(ctx, u.Email)
		if err != nil {
			return fmt.Errorf("failed to check seed user %s: %w", u.Email, err)
		}
		if existing != nil {
			continue
		}

		hash, err := utils.HashPassword(u.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password for seed user %s: %w", u.Email, err)
		}
		user := &model.User{
			ID:           u.ID,
			Email:        u.Email,
			Name:         u.Name,
			PasswordHash: hash,
			Role:         u.Role,
			CreatedAt:    time.Now(),
		}
		if err := repo.Create(ctx, user); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.Email, err)
		}
	}
	return nil
}
