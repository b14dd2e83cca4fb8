package catalog

import (
	"context"
	"errors"
)

// ErrCategoryNotFound is returned when the data source has no entry for
// the requested category.
var ErrCategoryNotFound = errors.New("category not found")

// Repository is the product data source contract. Failures are caught
// by callers and surfaced as category-specific error text; nothing is
// retried automatically.
type Repository interface {
	ProductsByCategory(ctx context.Context, category string) ([]Product, error)
	LiquorSubcategory(ctx context.Context, name string) ([]Product, error)
}
