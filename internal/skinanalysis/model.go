package skinanalysis

import "time"

// SkinCondition is the normalized skin snapshot derived from a vision result.
type SkinCondition struct {
	Acne          int    `json:"acne"`
	Wrinkle       int    `json:"wrinkle"`
	DarkCircle    int    `json:"darkCircle"`
	Spot          int    `json:"spot"`
	HealthScore   int    `json:"healthScore"`
	SkinTypeLabel string `json:"skinType"`
}

// SkinIssue is one detected problem. Severity is score/10.
type SkinIssue struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Severity    int    `json:"severity"`
}

// ProductRecommendation is a catalog product suggested for the caller.
type ProductRecommendation struct {
	ProductID   string  `json:"productId"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	Price       float64 `json:"price"`
	Reason      string  `json:"reason"`
}

// SkinAnalysisResult is the single output of one analysis run. It is never stored.
type SkinAnalysisResult struct {
	ID              string                  `json:"id"`
	ImageURL        string                  `json:"imageUrl"`
	Condition       SkinCondition           `json:"condition"`
	Issues          []SkinIssue             `json:"issues"`
	Recommendations []ProductRecommendation `json:"recommendations"`
	Advice          []string                `json:"advice"`
	AnalyzedAt      time.Time               `json:"analyzedAt"`
}

// AnalyzeInput carries one uploaded photo and the identity of its owner.
type AnalyzeInput struct {
	Image    []byte
	FileName string
	CallerID string
}
