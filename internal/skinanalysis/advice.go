package skinanalysis

import "strings"

var (
	oilyAdvice = []string{
		"Cleanse twice a day with a gentle foaming cleanser to control excess oil.",
		"Choose lightweight, oil-free and non-comedogenic moisturizers.",
		"Use a clay mask once or twice a week to keep pores clear.",
	}
	dryAdvice = []string{
		"Use a creamy, non-foaming cleanser that does not strip natural oils.",
		"Apply a rich moisturizer with ceramides or hyaluronic acid right after washing.",
		"Avoid long hot showers, which dry the skin further.",
	}
	combinationAdvice = []string{
		"Treat the oily T-zone and drier cheeks differently when applying products.",
		"Use a balanced, gentle cleanser and a lightweight gel moisturizer.",
	}
	genericAdvice = []string{
		"Follow a simple routine: gentle cleanser, moisturizer and sunscreen.",
	}

	issueAdvice = map[string][]string{
		IssueAcne: {
			"Use products with salicylic acid or benzoyl peroxide on breakouts.",
			"Avoid touching or squeezing blemishes.",
		},
		IssueWrinkles: {
			"Add a retinoid or peptide serum to your evening routine.",
		},
		IssueDarkCircles: {
			"Aim for 7 to 9 hours of sleep and use an eye cream with caffeine or vitamin K.",
		},
		IssueDarkSpots: {
			"Use a vitamin C or niacinamide serum to even out pigmentation.",
			"Reapply sunscreen every two hours when outdoors to keep spots from darkening.",
		},
	}

	closingAdvice = []string{
		"Drink enough water and keep your skin hydrated.",
		"Apply a broad-spectrum sunscreen (SPF 30 or higher) every day.",
		"Re-check your skin every few weeks to track changes.",
		"Consult a dermatologist if your condition worsens.",
	}
)

// Advisor builds the ordered advice list for an analysis.
type Advisor struct {
	Labels Labels
}

// Advise returns the skin-type block, one or two lines per issue in order,
// then the closing block. Lines are not deduplicated.
func (a Advisor) Advise(skinTypeName string, issues []SkinIssue) []string {
	advice := append([]string(nil), a.baseBlock(skinTypeName)...)
	for _, issue := range issues {
		advice = append(advice, issueAdvice[issue.Code]...)
	}
	return append(advice, closingAdvice...)
}

func (a Advisor) baseBlock(name string) []string {
	labels := a.Labels.withDefaults()
	name = strings.TrimSpace(name)
	switch {
	case strings.EqualFold(name, labels.Oily):
		return oilyAdvice
	case strings.EqualFold(name, labels.Dry):
		return dryAdvice
	case strings.EqualFold(name, labels.Combination):
		return combinationAdvice
	default:
		return genericAdvice
	}
}
