package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"skincare-backend/internal/shared/telemetry"
)

func TestLoggingIncludesRequiredFields(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	restore := telemetry.SetOutput(&buf)
	defer restore()

	router := gin.New()
	router.Use(RequestID(), Auth(), Logging())
	router.POST("/api/v1/skin-analysis", func(c *gin.Context) {
		c.Set("analysisId", "analysis-1")
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/skin-analysis", nil)
	req.Header.Set("X-Guest-Id", "guest1")
	req.Header.Set("X-Request-Id", "req-123")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if got := resp.Header().Get("X-Request-Id"); got != "req-123" {
		t.Fatalf("expected echoed request id, got %q", got)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	last := lines[len(lines)-1]
	var payload map[string]any
	if err := json.Unmarshal([]byte(last), &payload); err != nil {
		t.Fatalf("decode log json: %v", err)
	}

	for _, key := range []string{"request_id", "user_id", "analysis_id", "duration_ms", "status", "route"} {
		if _, ok := payload[key]; !ok {
			t.Fatalf("missing %s in log payload: %v", key, payload)
		}
	}
	if payload["msg"] != "request.complete" {
		t.Fatalf("unexpected msg %v", payload["msg"])
	}
	if payload["request_id"] != "req-123" || payload["user_id"] != "guest:guest1" || payload["analysis_id"] != "analysis-1" {
		t.Fatalf("unexpected payload %v", payload)
	}
	if payload["is_guest"] != true {
		t.Fatalf("expected guest caller flagged, got %v", payload["is_guest"])
	}
}

func TestLoggingFlagsSignedInCaller(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	restore := telemetry.SetOutput(&buf)
	defer restore()

	router := gin.New()
	router.Use(Auth(), Logging())
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-User-Id", "user-7")
	router.ServeHTTP(httptest.NewRecorder(), req)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var payload map[string]any
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &payload); err != nil {
		t.Fatalf("decode log json: %v", err)
	}
	if payload["user_id"] != "user-7" || payload["is_guest"] != false {
		t.Fatalf("unexpected identity fields %v", payload)
	}
}

func TestRequestIDGeneratedWhenMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	var seen string
	router.GET("/x", func(c *gin.Context) {
		seen = RequestIDFromContext(c)
		c.Status(http.StatusOK)
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/x", nil))

	if seen == "" || resp.Header().Get("X-Request-Id") != seen {
		t.Fatalf("expected generated request id, got %q / %q", seen, resp.Header().Get("X-Request-Id"))
	}
}

func TestRecoveryReturnsErrorEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	restore := telemetry.SetOutput(&buf)
	defer restore()

	router := gin.New()
	router.Use(RequestID(), Recovery())
	router.GET("/boom", func(c *gin.Context) {
		panic("boom")
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"internal_error"`) {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
	if !strings.Contains(buf.String(), `"panic"`) {
		t.Fatalf("expected panic log, got %s", buf.String())
	}
}
