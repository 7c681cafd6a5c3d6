package catalog

import "context"

// SkinTypeRepo reads skin-type records.
type SkinTypeRepo interface {
	// FindByNameContains returns the first skin type whose name contains
	// substr, compared case-insensitively, or ErrNotFound.
	FindByNameContains(ctx context.Context, substr string) (SkinType, error)
	// Any returns the first skin type by id, or ErrNotFound when empty.
	Any(ctx context.Context) (SkinType, error)
	IsEmpty(ctx context.Context) (bool, error)
	List(ctx context.Context) ([]SkinType, error)
}

// ProductRepo reads products associated with skin types.
type ProductRepo interface {
	// FindBySkinType returns up to limit products tagged with the skin type,
	// ordered by product id.
	FindBySkinType(ctx context.Context, skinTypeID string, limit int) ([]Product, error)
}
