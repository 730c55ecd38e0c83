package analysis

import (
	"strings"
	"sync"
	"time"

	"github.com/hoko-ai/analytics/pkg/models/domain"
)

// Cache memoizes finished summaries per request key. Reads are
// concurrent; writes are last-writer-wins, which is safe because
// identical requests produce identical summaries.
type Cache interface {
	Get(key string) (domain.Summary, bool)
	Put(key string, s domain.Summary)
}

type memoryCache struct {
	mu      sync.RWMutex
	entries map[string]domain.Summary
}

// NewMemoryCache returns an in-process Cache with unbounded entries.
func NewMemoryCache() Cache {
	return &memoryCache{entries: map[string]domain.Summary{}}
}

func (c *memoryCache) Get(key string) (domain.Summary, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.entries[key]
	return s, ok
}

func (c *memoryCache) Put(key string, s domain.Summary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = s
}

// noopCache disables memoization; used by the one-shot CLI.
type noopCache struct{}

func NewNoopCache() Cache { return noopCache{} }

func (noopCache) Get(string) (domain.Summary, bool) { return domain.Summary{}, false }
func (noopCache) Put(string, domain.Summary)        {}

func cacheKey(req domain.AnalysisRequest) string {
	parts := []string{req.ClientID, strings.Join(req.Platforms, ",")}
	for _, t := range []*time.Time{req.From, req.To} {
		if t != nil {
			parts = append(parts, t.Format("2006-01-02"))
		} else {
			parts = append(parts, "")
		}
	}
	return strings.Join(parts, "|")
}
