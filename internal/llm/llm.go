package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// SchemaType is the JSON type of a schema node.
type SchemaType string

const (
	TypeObject SchemaType = "object"
	TypeString SchemaType = "string"
	TypeArray  SchemaType = "array"
)

// Schema is a provider-neutral subset of JSON Schema used to constrain structured output.
type Schema struct {
	Type        SchemaType
	Description string
	Properties  map[string]*Schema
	Required    []string
	Items       *Schema
}

// InlineData is an image sent alongside the prompt, base64-encoded without a data-URL prefix.
type InlineData struct {
	MimeType string
	Data     string
}

// StructuredRequest is one multimodal call whose reply must match Schema.
type StructuredRequest struct {
	Prompt string
	Images []InlineData
	Schema *Schema
}

// Client abstracts generative AI providers that support schema-constrained JSON output.
type Client interface {
	GenerateStructured(ctx context.Context, req StructuredRequest) (json.RawMessage, error)
}

var (
	// ErrEmptyResponse is returned when a provider replies without text.
	ErrEmptyResponse = errors.New("llm returned no content")
	// ErrBlocked is returned when a provider refuses to answer.
	ErrBlocked = errors.New("llm response blocked")
)
