package skinanalysis

import "skincare-backend/internal/vision"

// NeutralHealthScore is reported when the vision result carries no skin data.
const NeutralHealthScore = 50

var skinStatusPath = docPath{"faces", 0, "attributes", "skinstatus"}

var (
	acnePath       = docPath{"acne"}
	wrinklePath    = docPath{"wrinkle"}
	darkCirclePath = docPath{"dark_circle"}
	spotPath       = docPath{"spot"}
)

// ParseCondition reads faces[0].attributes.skinstatus from doc. Missing or
// malformed metrics read as 0; a missing skinstatus object yields all zeros
// with NeutralHealthScore. It never fails.
func ParseCondition(doc vision.Document) SkinCondition {
	status, ok := skinStatusPath.Object(map[string]any(doc))
	if !ok {
		return SkinCondition{HealthScore: NeutralHealthScore}
	}
	cond := SkinCondition{
		Acne:       acnePath.Int(status, 0),
		Wrinkle:    wrinklePath.Int(status, 0),
		DarkCircle: darkCirclePath.Int(status, 0),
		Spot:       spotPath.Int(status, 0),
	}
	cond.HealthScore = healthScore(cond)
	return cond
}

func healthScore(c SkinCondition) int {
	sum := c.Acne + c.Wrinkle + c.DarkCircle + c.Spot
	return clamp((400-sum)/4, 0, 100)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
