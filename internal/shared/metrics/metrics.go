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
	submissionsStartedTotal   atomic.Uint64
	submissionsSucceededTotal atomic.Uint64
	submissionsFailedTotal    = newLabeledCounter()
	imagesUploadedTotal       atomic.Uint64

	submissionDuration = newHistogram([]float64{250, 500, 1000, 2500, 5000, 10000, 30000, 60000, 120000})
	analysisDuration   = newHistogram([]float64{500, 1000, 2500, 5000, 10000, 20000, 40000, 90000})
)

// IncSubmissionStarted increments the started counter.
func IncSubmissionStarted() {
	submissionsStartedTotal.Add(1)
}

// IncSubmissionSucceeded increments the succeeded counter.
func IncSubmissionSucceeded() {
	submissionsSucceededTotal.Add(1)
}

// IncSubmissionFailed increments the failed counter for the stage that failed.
func IncSubmissionFailed(stage string) {
	submissionsFailedTotal.Inc(stage)
}

// AddImagesUploaded counts images stored in object storage.
func AddImagesUploaded(n int) {
	if n > 0 {
		imagesUploadedTotal.Add(uint64(n))
	}
}

// ObserveSubmissionDurationMs records an end-to-end submission duration.
func ObserveSubmissionDurationMs(value float64) {
	submissionDuration.Observe(clamp(value))
}

// ObserveAnalysisDurationMs records the duration of one AI call.
func ObserveAnalysisDurationMs(value float64) {
	analysisDuration.Observe(clamp(value))
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
	writeCounter(&buf, "submissions_started_total", "Total submissions started", submissionsStartedTotal.Load())
	writeCounter(&buf, "submissions_succeeded_total", "Total submissions persisted", submissionsSucceededTotal.Load())
	writeLabeledCounter(&buf, "submissions_failed_total", "Total submissions failed by stage", "stage", submissionsFailedTotal.Snapshot())
	writeCounter(&buf, "images_uploaded_total", "Total images stored", imagesUploadedTotal.Load())
	writeHistogram(&buf, "submission_duration_ms", "Submission duration in milliseconds", submissionDuration.Snapshot())
	writeHistogram(&buf, "analysis_duration_ms", "AI analysis call duration in milliseconds", analysisDuration.Snapshot())
	return buf.String()
}

func clamp(value float64) float64 {
	if value < 0 {
		return 0
	}
	return value
}

type labeledCounter struct {
	mu     sync.Mutex
	values map[string]uint64
}

func newLabeledCounter() *labeledCounter {
	return &labeledCounter{values: make(map[string]uint64)}
}

func (l *labeledCounter) Inc(label string) {
	l.mu.Lock()
	l.values[label]++
	l.mu.Unlock()
}

func (l *labeledCounter) Snapshot() map[string]uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]uint64, len(l.values))
	for k, v := range l.values {
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

// Observe counts value in the first bucket whose bound covers it; Render accumulates.
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
