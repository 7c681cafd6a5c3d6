package skinanalysis

// Issue codes.
const (
	IssueAcne        = "acne"
	IssueWrinkles    = "wrinkles"
	IssueDarkCircles = "dark_circles"
	IssueDarkSpots   = "dark_spots"
)

type issueRule struct {
	code        string
	name        string
	description string
	threshold   int
	score       func(SkinCondition) int
}

// Evaluated in this order; detected issues keep it.
var issueRules = []issueRule{
	{
		code:        IssueAcne,
		name:        "Acne",
		description: "Visible breakouts or clogged pores were detected.",
		threshold:   40,
		score:       func(c SkinCondition) int { return c.Acne },
	},
	{
		code:        IssueWrinkles,
		name:        "Wrinkles",
		description: "Fine lines or wrinkles are noticeable.",
		threshold:   30,
		score:       func(c SkinCondition) int { return c.Wrinkle },
	},
	{
		code:        IssueDarkCircles,
		name:        "Dark circles",
		description: "Darkness under the eyes was detected.",
		threshold:   30,
		score:       func(c SkinCondition) int { return c.DarkCircle },
	},
	{
		code:        IssueDarkSpots,
		name:        "Dark spots/freckles",
		description: "Pigmentation spots or freckles were detected.",
		threshold:   30,
		score:       func(c SkinCondition) int { return c.Spot },
	},
}

// DetectIssues returns the issues whose score exceeds its threshold. The
// result is empty, never nil, when nothing fires.
func DetectIssues(c SkinCondition) []SkinIssue {
	issues := make([]SkinIssue, 0, len(issueRules))
	for _, rule := range issueRules {
		score := rule.score(c)
		if score <= rule.threshold {
			continue
		}
		issues = append(issues, SkinIssue{
			Code:        rule.code,
			Name:        rule.name,
			Description: rule.description,
			Severity:    score / 10,
		})
	}
	return issues
}

func hasIssue(issues []SkinIssue, code string) bool {
	for _, issue := range issues {
		if issue.Code == code {
			return true
		}
	}
	return false
}
