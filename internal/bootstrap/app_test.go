package bootstrap

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"skincare-backend/internal/shared/config"
	"skincare-backend/internal/vision"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Env:                      "dev",
		ObjectStoreType:          "local",
		LocalStoreDir:            t.TempDir(),
		PublicBaseURL:            "http://localhost:8080",
		VisionProvider:           "none",
		VisionTimeout:            time.Second,
		UploadTimeout:            time.Second,
		MaxImageBytes:            1 << 20,
		MaxImageDimension:        256,
		SkinTypeLabelOily:        "Oily",
		SkinTypeLabelDry:         "Dry",
		SkinTypeLabelCombination: "Combination",
		AnalysisRatePerMinute:    60,
		AnalysisBurst:            5,
	}
}

func TestBuildDevUsesMemoryCatalogAndPlaceholderVision(t *testing.T) {
	app, err := Build(testConfig(t))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if app.DB != nil {
		t.Fatalf("expected no database in dev without DATABASE_URL")
	}
	if _, ok := app.Vision.(vision.PlaceholderClient); !ok {
		t.Fatalf("expected placeholder vision client, got %T", app.Vision)
	}
	if app.MediaDir == "" {
		t.Fatalf("expected local media dir to be served")
	}

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var status struct {
		OK                  bool `json:"ok"`
		SkinTypesConfigured bool `json:"skinTypesConfigured"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !status.OK || !status.SkinTypesConfigured {
		t.Fatalf("unexpected health %+v", status)
	}
}

func TestBuildProductionRequiresDatabase(t *testing.T) {
	cfg := testConfig(t)
	cfg.Env = "production"
	if _, err := Build(cfg); err == nil {
		t.Fatalf("expected error without DATABASE_URL in production")
	}
}

func TestSkinAnalysisRouteWithoutVisionProvider(t *testing.T) {
	app, err := Build(testConfig(t))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var img bytes.Buffer
	if err := png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, _ := w.CreateFormFile("image", "face.png")
	_, _ = part.Write(img.Bytes())
	_ = w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/skin-analysis", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("X-User-Id", "user-1")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", resp.Code, resp.Body.String())
	}
	if !bytes.Contains(resp.Body.Bytes(), []byte(`"configuration_error"`)) {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
}

func TestMetricsRouteIsPublic(t *testing.T) {
	app, err := Build(testConfig(t))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !bytes.Contains(resp.Body.Bytes(), []byte("skin_analysis_started_total")) {
		t.Fatalf("expected skin analysis metrics, got %s", resp.Body.String())
	}
}
