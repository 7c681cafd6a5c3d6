package skinanalysis

import (
	"context"
	"errors"
	"fmt"

	"skincare-backend/internal/catalog"
)

const (
	oilyAcneAbove = 60
	dryAcneBelow  = 30
)

// Classifier maps a condition to one catalog skin type.
type Classifier struct {
	SkinTypes catalog.SkinTypeRepo
	Labels    Labels
}

// Label applies the acne thresholds: above 60 is oily, below 30 is dry,
// anything else is combination.
func (c Classifier) Label(acne int) string {
	labels := c.Labels.withDefaults()
	switch {
	case acne > oilyAcneAbove:
		return labels.Oily
	case acne < dryAcneBelow:
		return labels.Dry
	default:
		return labels.Combination
	}
}

// Classify resolves the label against the catalog, falling back to the first
// catalog entry when no name matches. It writes the resolved name into
// cond.SkinTypeLabel.
func (c Classifier) Classify(ctx context.Context, cond *SkinCondition) (catalog.SkinType, error) {
	label := c.Label(cond.Acne)

	st, err := c.SkinTypes.FindByNameContains(ctx, label)
	if err == nil {
		cond.SkinTypeLabel = st.Name
		return st, nil
	}
	if !errors.Is(err, catalog.ErrNotFound) {
		return catalog.SkinType{}, fmt.Errorf("find skin type %q: %w", label, err)
	}

	empty, err := c.SkinTypes.IsEmpty(ctx)
	if err != nil {
		return catalog.SkinType{}, fmt.Errorf("check skin types: %w", err)
	}
	if empty {
		return catalog.SkinType{}, ErrNoSkinTypesConfigured
	}

	st, err = c.SkinTypes.Any(ctx)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return catalog.SkinType{}, ErrNoSkinTypesConfigured
		}
		return catalog.SkinType{}, fmt.Errorf("fallback skin type: %w", err)
	}
	cond.SkinTypeLabel = st.Name
	return st, nil
}
