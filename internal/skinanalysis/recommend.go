package skinanalysis

import (
	"context"
	"strings"

	"skincare-backend/internal/catalog"
)

// MaxRecommendations caps the products returned per analysis.
const MaxRecommendations = 10

const (
	reasonBase      = "Matches your skin type"
	reasonAcne      = ", and its formula targets acne-prone skin"
	reasonAntiAging = ", and it helps reduce the look of fine lines and wrinkles"
)

var antiAgingMarkers = []string{"anti-aging", "anti aging", "antiaging", "aging"}

// Matcher selects catalog products for a skin type.
type Matcher struct {
	Products catalog.ProductRepo
}

// Recommend returns up to MaxRecommendations products tagged with
// skinTypeID, in catalog order, each with a reason.
func (m Matcher) Recommend(ctx context.Context, skinTypeID string, issues []SkinIssue) ([]ProductRecommendation, error) {
	products, err := m.Products.FindBySkinType(ctx, skinTypeID, MaxRecommendations)
	if err != nil {
		return nil, err
	}
	if len(products) > MaxRecommendations {
		products = products[:MaxRecommendations]
	}

	out := make([]ProductRecommendation, 0, len(products))
	for _, p := range products {
		out = append(out, ProductRecommendation{
			ProductID:   p.ID,
			Name:        p.Name,
			Description: p.Description,
			ImageURL:    p.Thumbnail(),
			Price:       p.Price,
			Reason:      reason(p.Category.Name, issues),
		})
	}
	return out, nil
}

// reason adds at most one phrase; acne takes priority over anti-aging.
func reason(category string, issues []SkinIssue) string {
	cat := strings.ToLower(category)
	switch {
	case hasIssue(issues, IssueAcne) && strings.Contains(cat, "acne"):
		return reasonBase + reasonAcne
	case hasIssue(issues, IssueWrinkles) && containsAny(cat, antiAgingMarkers):
		return reasonBase + reasonAntiAging
	default:
		return reasonBase
	}
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
