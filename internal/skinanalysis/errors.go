package skinanalysis

import (
	"errors"
	"fmt"
)

// Kind classifies analysis failures.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindUpstream      Kind = "upstream"
	KindConfiguration Kind = "configuration"
)

// Stage names a pipeline step.
type Stage string

const (
	StageValidating      Stage = "validating"
	StagePreparing       Stage = "preparing"
	StageUploading       Stage = "uploading"
	StageVisionCall      Stage = "vision_call"
	StageParsing         Stage = "parsing"
	StageClassifying     Stage = "classifying"
	StageDetectingIssues Stage = "detecting_issues"
	StageMatching        Stage = "matching"
	StageAdvising        Stage = "advising"
	StageDone            Stage = "done"
)

var (
	ErrValidation    = errors.New("invalid analysis input")
	ErrUpstream      = errors.New("upstream service failure")
	ErrConfiguration = errors.New("service misconfigured")

	// ErrNoSkinTypesConfigured means the skin-type catalog is empty.
	ErrNoSkinTypesConfigured = errors.New("no skin types configured")
)

// AnalysisError is the only error type returned by Service.Analyze.
type AnalysisError struct {
	ID    string
	Kind  Kind
	Stage Stage
	Err   error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("skin analysis %s error at %s: %v", e.Kind, e.Stage, e.Err)
}

// Unwrap exposes both the kind sentinel and the cause to errors.Is/As.
func (e *AnalysisError) Unwrap() []error {
	return []error{e.Kind.sentinel(), e.Err}
}

func (k Kind) sentinel() error {
	switch k {
	case KindValidation:
		return ErrValidation
	case KindConfiguration:
		return ErrConfiguration
	default:
		return ErrUpstream
	}
}

func newError(kind Kind, stage Stage, err error) *AnalysisError {
	return &AnalysisError{Kind: kind, Stage: stage, Err: err}
}
