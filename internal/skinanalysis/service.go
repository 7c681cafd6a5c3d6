package skinanalysis

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"skincare-backend/internal/imageprep"
	"skincare-backend/internal/shared/metrics"
	"skincare-backend/internal/shared/storage/object"
	"skincare-backend/internal/shared/telemetry"
	"skincare-backend/internal/shared/util"
	"skincare-backend/internal/vision"
)

const (
	DefaultUploadTimeout = 15 * time.Second
	DefaultVisionTimeout = 20 * time.Second
)

// ImagePreparer validates and normalizes uploaded photos.
type ImagePreparer interface {
	Prepare(data []byte) ([]byte, imageprep.Info, error)
}

// Service runs the skin analysis pipeline.
type Service struct {
	Store         object.ImageStore
	Vision        vision.Client
	Preparer      ImagePreparer
	Classifier    Classifier
	Matcher       Matcher
	Advisor       Advisor
	UploadTimeout time.Duration
	VisionTimeout time.Duration

	now   func() time.Time
	newID func() string
}

// run carries per-analysis identifiers for logging.
type run struct {
	id        string
	requestID string
	callerID  string
}

func (r run) fields(extra map[string]any) map[string]any {
	fields := map[string]any{
		"analysis_id": r.id,
		"request_id":  r.requestID,
		"caller_id":   r.callerID,
	}
	for k, v := range extra {
		fields[k] = v
	}
	return fields
}

func (r run) stage(stage Stage) {
	telemetry.Info("skin_analysis.stage", r.fields(map[string]any{"stage": string(stage)}))
}

// Analyze uploads the photo, runs the vision call and derives condition,
// issues, recommendations and advice. Every failure is an *AnalysisError.
func (s *Service) Analyze(ctx context.Context, in AnalyzeInput) (SkinAnalysisResult, error) {
	started := s.clock()
	r := run{
		id:        s.makeID(),
		requestID: requestIDFromContext(ctx),
		callerID:  in.CallerID,
	}
	metrics.IncAnalysisStarted()

	result, err := s.analyze(ctx, r, in)
	elapsed := s.clock().Sub(started)
	metrics.ObserveAnalysisDurationMs(float64(elapsed.Milliseconds()))

	if err != nil {
		var aerr *AnalysisError
		if !errors.As(err, &aerr) {
			aerr = newError(KindUpstream, StageDone, err)
		}
		aerr.ID = r.id
		metrics.IncAnalysisFailed(string(aerr.Kind))
		fields := r.fields(map[string]any{
			"kind":        string(aerr.Kind),
			"stage":       string(aerr.Stage),
			"error":       aerr.Err.Error(),
			"duration_ms": elapsed.Milliseconds(),
		})
		if aerr.Kind == KindConfiguration {
			fields["alert"] = true
			telemetry.Error("skin_analysis.failed", fields)
		} else {
			telemetry.Warn("skin_analysis.failed", fields)
		}
		return SkinAnalysisResult{}, aerr
	}

	metrics.IncAnalysisCompleted()
	telemetry.Info("skin_analysis.completed", r.fields(map[string]any{
		"duration_ms":     elapsed.Milliseconds(),
		"health_score":    result.Condition.HealthScore,
		"skin_type":       result.Condition.SkinTypeLabel,
		"issues":          len(result.Issues),
		"recommendations": len(result.Recommendations),
	}))
	return result, nil
}

func (s *Service) analyze(ctx context.Context, r run, in AnalyzeInput) (SkinAnalysisResult, error) {
	r.stage(StageValidating)
	if len(in.Image) == 0 {
		return SkinAnalysisResult{}, newError(KindValidation, StageValidating, imageprep.ErrEmptyImage)
	}
	fileName, err := util.SanitizeFileName(in.FileName)
	if err != nil {
		return SkinAnalysisResult{}, newError(KindValidation, StageValidating, err)
	}

	image := in.Image
	if s.Preparer != nil {
		r.stage(StagePreparing)
		prepared, info, err := s.Preparer.Prepare(image)
		if err != nil {
			return SkinAnalysisResult{}, newError(prepareKind(err), StagePreparing, err)
		}
		if info.Resized {
			telemetry.Info("skin_analysis.image_resized", r.fields(map[string]any{
				"width":  info.Width,
				"height": info.Height,
			}))
		}
		image = prepared
	}

	r.stage(StageUploading)
	stored, err := s.upload(ctx, in.CallerID, fileName, image)
	if err != nil {
		return SkinAnalysisResult{}, newError(KindUpstream, StageUploading, err)
	}

	r.stage(StageVisionCall)
	doc, err := s.callVision(ctx, image)
	if err != nil {
		kind := KindUpstream
		if errors.Is(err, vision.ErrNotConfigured) {
			kind = KindConfiguration
		}
		return SkinAnalysisResult{}, newError(kind, StageVisionCall, err)
	}

	r.stage(StageParsing)
	cond := ParseCondition(doc)

	r.stage(StageClassifying)
	skinType, err := s.Classifier.Classify(ctx, &cond)
	if err != nil {
		kind := KindUpstream
		if errors.Is(err, ErrNoSkinTypesConfigured) {
			kind = KindConfiguration
		}
		return SkinAnalysisResult{}, newError(kind, StageClassifying, err)
	}

	r.stage(StageDetectingIssues)
	issues := DetectIssues(cond)

	r.stage(StageMatching)
	recs, err := s.Matcher.Recommend(ctx, skinType.ID, issues)
	if err != nil {
		return SkinAnalysisResult{}, newError(KindUpstream, StageMatching, err)
	}

	r.stage(StageAdvising)
	advice := s.Advisor.Advise(cond.SkinTypeLabel, issues)

	r.stage(StageDone)
	return SkinAnalysisResult{
		ID:              r.id,
		ImageURL:        stored.URL,
		Condition:       cond,
		Issues:          issues,
		Recommendations: recs,
		Advice:          advice,
		AnalyzedAt:      s.clock().UTC(),
	}, nil
}

func (s *Service) upload(ctx context.Context, callerID, fileName string, image []byte) (object.Object, error) {
	if s.Store == nil {
		return object.Object{}, errors.New("image store not configured")
	}
	uctx, cancel := context.WithTimeout(ctx, orDefault(s.UploadTimeout, DefaultUploadTimeout))
	defer cancel()
	stored, err := s.Store.Upload(uctx, callerID, fileName, bytes.NewReader(image))
	if err != nil {
		return object.Object{}, fmt.Errorf("upload image: %w", err)
	}
	return stored, nil
}

func (s *Service) callVision(ctx context.Context, image []byte) (vision.Document, error) {
	if s.Vision == nil {
		return nil, vision.ErrNotConfigured
	}
	vctx, cancel := context.WithTimeout(ctx, orDefault(s.VisionTimeout, DefaultVisionTimeout))
	defer cancel()
	doc, err := s.Vision.AnalyzeFace(vctx, image)
	metrics.IncVisionCall(err != nil)
	if err != nil {
		return nil, fmt.Errorf("vision analyze: %w", err)
	}
	return doc, nil
}

func prepareKind(err error) Kind {
	if errors.Is(err, imageprep.ErrEmptyImage) ||
		errors.Is(err, imageprep.ErrImageTooLarge) ||
		errors.Is(err, imageprep.ErrUnsupportedImage) {
		return KindValidation
	}
	return KindUpstream
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}

func (s *Service) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

func (s *Service) makeID() string {
	if s.newID != nil {
		return s.newID()
	}
	return uuid.NewString()
}
