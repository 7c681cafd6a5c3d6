package skinanalysis

import "strings"

// Labels are the skin-type names produced by the classifier and matched
// against catalog records.
type Labels struct {
	Oily        string
	Dry         string
	Combination string
}

// DefaultLabels returns the English label set.
func DefaultLabels() Labels {
	return Labels{Oily: "Oily", Dry: "Dry", Combination: "Combination"}
}

func (l Labels) withDefaults() Labels {
	def := DefaultLabels()
	if strings.TrimSpace(l.Oily) == "" {
		l.Oily = def.Oily
	}
	if strings.TrimSpace(l.Dry) == "" {
		l.Dry = def.Dry
	}
	if strings.TrimSpace(l.Combination) == "" {
		l.Combination = def.Combination
	}
	return l
}
