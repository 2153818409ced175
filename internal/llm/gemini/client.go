package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/llm"
)

// Client implements llm.Client with the Gemini API.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient creates a Gemini client for model.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for Gemini")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Client{client: client, model: model}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.client.Close()
}

// GenerateStructured sends the prompt followed by every image and returns the JSON reply.
func (c *Client) GenerateStructured(ctx context.Context, req llm.StructuredRequest) (json.RawMessage, error) {
	model := c.client.GenerativeModel(c.model)
	model.GenerationConfig.ResponseMIMEType = "application/json"
	if req.Schema != nil {
		model.GenerationConfig.ResponseSchema = toGenaiSchema(req.Schema)
	}

	parts, err := buildParts(req)
	if err != nil {
		return nil, err
	}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, fmt.Errorf("gemini API call failed (%s): %w", c.model, err)
	}

	text, err := textFromResponse(resp)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(text), nil
}

func buildParts(req llm.StructuredRequest) ([]genai.Part, error) {
	parts := make([]genai.Part, 0, len(req.Images)+1)
	parts = append(parts, genai.Text(req.Prompt))
	for i, img := range req.Images {
		data, err := base64.StdEncoding.DecodeString(img.Data)
		if err != nil {
			return nil, fmt.Errorf("image %d: decode base64: %w", i, err)
		}
		parts = append(parts, genai.Blob{MIMEType: img.MimeType, Data: data})
	}
	return parts, nil
}

func toGenaiSchema(s *llm.Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Description: s.Description,
		Required:    append([]string(nil), s.Required...),
	}
	switch s.Type {
	case llm.TypeObject:
		out.Type = genai.TypeObject
	case llm.TypeArray:
		out.Type = genai.TypeArray
	default:
		out.Type = genai.TypeString
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toGenaiSchema(prop)
		}
	}
	if s.Items != nil {
		out.Items = toGenaiSchema(s.Items)
	}
	return out
}

func textFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", llm.ErrEmptyResponse
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
		return "", fmt.Errorf("%w: %s", llm.ErrBlocked, resp.PromptFeedback.BlockReason.String())
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			if cand != nil && cand.FinishReason == genai.FinishReasonSafety {
				return "", fmt.Errorf("%w: %s", llm.ErrBlocked, cand.FinishReason.String())
			}
			continue
		}
		var b strings.Builder
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
		if out := strings.TrimSpace(b.String()); out != "" {
			return out, nil
		}
	}
	return "", llm.ErrEmptyResponse
}

var _ llm.Client = (*Client)(nil)
