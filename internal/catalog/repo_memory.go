package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryRepo is an in-memory implementation of SkinTypeRepo and ProductRepo.
type MemoryRepo struct {
	mu        sync.RWMutex
	skinTypes []SkinType
	products  map[string]Product
	tags      map[string]map[string]struct{} // skinTypeID -> product ids
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		products: make(map[string]Product),
		tags:     make(map[string]map[string]struct{}),
	}
}

// AddSkinTypes stores skin types, keeping them ordered by id.
func (r *MemoryRepo) AddSkinTypes(types ...SkinType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skinTypes = append(r.skinTypes, types...)
	sort.SliceStable(r.skinTypes, func(i, j int) bool {
		return r.skinTypes[i].ID < r.skinTypes[j].ID
	})
}

// AddProduct stores or replaces a product and tags it with the given skin
// types. Re-adding an existing tag is a no-op.
func (r *MemoryRepo) AddProduct(p Product, skinTypeIDs ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = p
	for _, id := range skinTypeIDs {
		if r.tags[id] == nil {
			r.tags[id] = make(map[string]struct{})
		}
		r.tags[id][p.ID] = struct{}{}
	}
}

// FindByNameContains returns the first skin type whose name contains substr.
func (r *MemoryRepo) FindByNameContains(ctx context.Context, substr string) (SkinType, error) {
	if err := ctx.Err(); err != nil {
		return SkinType{}, err
	}
	needle := strings.ToLower(strings.TrimSpace(substr))
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, st := range r.skinTypes {
		if strings.Contains(strings.ToLower(st.Name), needle) {
			return st, nil
		}
	}
	return SkinType{}, ErrNotFound
}

// Any returns the first skin type by id.
func (r *MemoryRepo) Any(ctx context.Context) (SkinType, error) {
	if err := ctx.Err(); err != nil {
		return SkinType{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.skinTypes) == 0 {
		return SkinType{}, ErrNotFound
	}
	return r.skinTypes[0], nil
}

// IsEmpty reports whether no skin types are stored.
func (r *MemoryRepo) IsEmpty(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.skinTypes) == 0, nil
}

// List returns all skin types ordered by id.
func (r *MemoryRepo) List(ctx context.Context) ([]SkinType, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]SkinType, len(r.skinTypes))
	copy(out, r.skinTypes)
	return out, nil
}

// FindBySkinType returns up to limit tagged products ordered by id.
func (r *MemoryRepo) FindBySkinType(ctx context.Context, skinTypeID string, limit int) ([]Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	ids := make([]string, 0, len(r.tags[skinTypeID]))
	for id := range r.tags[skinTypeID] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]Product, 0, len(ids))
	for _, id := range ids {
		if limit > 0 && len(out) >= limit {
			break
		}
		if p, ok := r.products[id]; ok {
			out = append(out, p)
		}
	}
	r.mu.RUnlock()
	return out, nil
}

var (
	_ SkinTypeRepo = (*MemoryRepo)(nil)
	_ ProductRepo  = (*MemoryRepo)(nil)
)
