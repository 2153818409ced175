package projects

import (
	"path"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/shared/util"
)

const (
	keyPrefix    = "public/"
	fallbackName = "imagem"
)

// KeyPlanner assigns storage keys of the form public/<unix-millis>-<name>.
// Keys handed out by one planner never repeat; a clash gets -1, -2, ...
// before the extension.
type KeyPlanner struct {
	now func() time.Time

	mu   sync.Mutex
	used map[string]struct{}
}

// NewKeyPlanner returns a planner for one submission.
func NewKeyPlanner(now func() time.Time) *KeyPlanner {
	if now == nil {
		now = time.Now
	}
	return &KeyPlanner{now: now, used: make(map[string]struct{})}
}

// Next returns a fresh key for fileName.
func (p *KeyPlanner) Next(fileName string) string {
	name := util.SanitizeFileName(fileName)
	if strings.Trim(name, "_.") == "" {
		name = fallbackName + path.Ext(name)
	}
	base := keyPrefix + strconv.FormatInt(p.now().UnixMilli(), 10) + "-" + name

	p.mu.Lock()
	defer p.mu.Unlock()
	key := base
	ext := path.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	for i := 1; ; i++ {
		if _, taken := p.used[key]; !taken {
			break
		}
		key = stem + "-" + strconv.Itoa(i) + ext
	}
	p.used[key] = struct{}{}
	return key
}
