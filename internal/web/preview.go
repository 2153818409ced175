package web

import (
	"sync"

	"github.com/google/uuid"

	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/intake"
)

// Preview is an image held for display while the form is being edited.
type Preview struct {
	Owner    string
	MimeType string
	Data     []byte
}

// PreviewRegistry hands out opaque tokens for attachment previews. Every
// token must be released; Len reports how many are still held.
type PreviewRegistry struct {
	mu    sync.RWMutex
	items map[string]Preview
}

// NewPreviewRegistry constructs an empty registry.
func NewPreviewRegistry() *PreviewRegistry {
	return &PreviewRegistry{items: make(map[string]Preview)}
}

// Acquire registers a for owner and returns its token.
func (r *PreviewRegistry) Acquire(owner string, a intake.Attachment) string {
	token := uuid.NewString()
	r.mu.Lock()
	r.items[token] = Preview{Owner: owner, MimeType: a.MimeType, Data: a.Data}
	r.mu.Unlock()
	return token
}

// Release drops tokens. Unknown tokens are ignored.
func (r *PreviewRegistry) Release(tokens ...string) {
	r.mu.Lock()
	for _, t := range tokens {
		delete(r.items, t)
	}
	r.mu.Unlock()
}

// Get returns the preview for token.
func (r *PreviewRegistry) Get(token string) (Preview, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[token]
	return p, ok
}

// Len returns the number of held tokens.
func (r *PreviewRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
