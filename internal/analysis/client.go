package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/intake"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/llm"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/shared/metrics"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/shared/telemetry"
)

// Client turns a submitted form and its images into an AIAnalysis with one
// model call. Failures are never retried.
type Client struct {
	LLM   llm.Client
	Model string
}

// Analyze sends the prompt followed by every current-situation image and then
// every final-project image.
func (c *Client) Analyze(ctx context.Context, form intake.FormData, current, final []intake.EncodedImage) (AIAnalysis, error) {
	if c == nil || c.LLM == nil {
		return AIAnalysis{}, &Error{Err: ErrNotConfigured}
	}

	images := make([]llm.InlineData, 0, len(current)+len(final))
	for _, img := range current {
		images = append(images, llm.InlineData{MimeType: img.MimeType, Data: img.Data})
	}
	for _, img := range final {
		images = append(images, llm.InlineData{MimeType: img.MimeType, Data: img.Data})
	}

	start := time.Now()
	raw, err := c.LLM.GenerateStructured(ctx, llm.StructuredRequest{
		Prompt: RenderPrompt(form, len(current), len(final)),
		Images: images,
		Schema: AnalysisSchema(),
	})
	elapsed := time.Since(start)
	metrics.ObserveAnalysisDurationMs(float64(elapsed.Milliseconds()))

	fields := map[string]any{
		"request_id":     telemetry.RequestIDFromContext(ctx),
		"model":          c.Model,
		"prompt_version": PromptVersion,
		"image_count":    len(images),
		"duration_ms":    elapsed.Milliseconds(),
	}
	if err != nil {
		fields["error"] = err
		telemetry.Error("analysis.llm_failed", fields)
		return AIAnalysis{}, &Error{Err: err}
	}

	result, err := Parse(raw)
	if err != nil {
		fields["error"] = err
		fields["response_bytes"] = len(raw)
		telemetry.Error("analysis.parse_failed", fields)
		return AIAnalysis{}, &Error{Err: err}
	}
	telemetry.Info("analysis.completed", fields)
	return result, nil
}

// Parse decodes exactly one AIAnalysis object, rejecting unknown keys and
// blank fields.
func Parse(raw []byte) (AIAnalysis, error) {
	dec := json.NewDecoder(bytes.NewReader(bytes.TrimSpace(raw)))
	dec.DisallowUnknownFields()

	var out AIAnalysis
	if err := dec.Decode(&out); err != nil {
		return AIAnalysis{}, err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return AIAnalysis{}, ErrTrailingData
	}
	if err := out.Validate(); err != nil {
		return AIAnalysis{}, err
	}
	return out, nil
}
