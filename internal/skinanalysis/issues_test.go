package skinanalysis

import (
	"reflect"
	"testing"
)

func TestDetectIssuesSingleAcne(t *testing.T) {
	issues := DetectIssues(SkinCondition{Acne: 50, Wrinkle: 10, DarkCircle: 10, Spot: 10})
	if len(issues) != 1 {
		t.Fatalf("expected one issue, got %+v", issues)
	}
	if issues[0].Name != "Acne" || issues[0].Code != IssueAcne || issues[0].Severity != 5 {
		t.Fatalf("unexpected issue %+v", issues[0])
	}
}

func TestDetectIssuesNoneIsEmptyNotNil(t *testing.T) {
	issues := DetectIssues(SkinCondition{})
	if issues == nil || len(issues) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", issues)
	}
}

func TestDetectIssuesOrderAndThresholds(t *testing.T) {
	issues := DetectIssues(SkinCondition{Acne: 41, Wrinkle: 31, DarkCircle: 99, Spot: 100})
	var codes []string
	for _, issue := range issues {
		codes = append(codes, issue.Code)
	}
	want := []string{IssueAcne, IssueWrinkles, IssueDarkCircles, IssueDarkSpots}
	if !reflect.DeepEqual(codes, want) {
		t.Fatalf("expected order %v, got %v", want, codes)
	}
	severities := []int{issues[0].Severity, issues[1].Severity, issues[2].Severity, issues[3].Severity}
	if !reflect.DeepEqual(severities, []int{4, 3, 9, 10}) {
		t.Fatalf("unexpected severities %v", severities)
	}

	boundary := DetectIssues(SkinCondition{Acne: 40, Wrinkle: 30, DarkCircle: 30, Spot: 30})
	if len(boundary) != 0 {
		t.Fatalf("thresholds are strict, got %+v", boundary)
	}
}

func TestDetectIssuesSeverityIsNotClamped(t *testing.T) {
	issues := DetectIssues(SkinCondition{Acne: 150})
	if len(issues) != 1 || issues[0].Severity != 15 {
		t.Fatalf("expected severity 15 for acne=150, got %+v", issues)
	}
}
