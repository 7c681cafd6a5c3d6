package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	analysisStartedTotal   atomic.Uint64
	analysisCompletedTotal atomic.Uint64

	failedMu          sync.Mutex
	analysisFailedBy  = map[string]uint64{}
	visionCallsTotal  atomic.Uint64
	visionErrorsTotal atomic.Uint64

	analysisDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncAnalysisStarted increments the started counter.
func IncAnalysisStarted() {
	analysisStartedTotal.Add(1)
}

// IncAnalysisCompleted increments the completed counter.
func IncAnalysisCompleted() {
	analysisCompletedTotal.Add(1)
}

// IncAnalysisFailed increments the failed counter for the given error kind.
func IncAnalysisFailed(kind string) {
	if kind == "" {
		kind = "unknown"
	}
	failedMu.Lock()
	analysisFailedBy[kind]++
	failedMu.Unlock()
}

// IncVisionCall records one outbound vision API call and whether it failed.
func IncVisionCall(failed bool) {
	visionCallsTotal.Add(1)
	if failed {
		visionErrorsTotal.Add(1)
	}
}

// ObserveAnalysisDurationMs records an analysis duration in milliseconds.
func ObserveAnalysisDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	analysisDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "skin_analysis_started_total", "Total skin analyses started", analysisStartedTotal.Load())
	writeCounter(&buf, "skin_analysis_completed_total", "Total skin analyses completed", analysisCompletedTotal.Load())
	writeLabeledCounter(&buf, "skin_analysis_failed_total", "Total skin analyses failed by error kind", "kind", failedSnapshot())
	writeCounter(&buf, "vision_calls_total", "Total vision API calls", visionCallsTotal.Load())
	writeCounter(&buf, "vision_errors_total", "Total failed vision API calls", visionErrorsTotal.Load())
	writeHistogram(&buf, "skin_analysis_duration_ms", "Skin analysis duration in milliseconds", analysisDuration.Snapshot())
	return buf.String()
}

func failedSnapshot() map[string]uint64 {
	failedMu.Lock()
	defer failedMu.Unlock()
	out := make(map[string]uint64, len(analysisFailedBy))
	for k, v := range analysisFailedBy {
		out[k] = v
	}
	return out
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

// Observe counts value into the first bucket whose bound holds it.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			return
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeLabeledCounter(buf *bytes.Buffer, name, help, label string, values map[string]uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(buf, "%s{%s=%q} %d\n", name, label, k, values[k])
	}
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
