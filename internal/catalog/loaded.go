package catalog

import (
	"context"
	"strings"
	"sync"
)

// Loaded tracks modules that are active in the host process. It is safe for
// concurrent use. The zero value is an empty catalog ready to use.
type Loaded struct {
	mu      sync.RWMutex
	modules []Candidate
}

// NewLoaded creates a Loaded catalog seeded with the given modules.
func NewLoaded(modules ...Candidate) *Loaded {
	l := &Loaded{}
	for _, m := range modules {
		l.Register(m)
	}
	return l
}

// Register records a module as active in the process. Registration order is
// preserved and is the order Candidates reports.
func (l *Loaded) Register(c Candidate) {
	c.IsLoaded = true
	l.mu.Lock()
	defer l.mu.Unlock()
	l.modules = append(l.modules, c)
}

// Unregister removes every registration of the named module at basePath.
// It reports whether anything was removed.
func (l *Loaded) Unregister(name, basePath string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.modules[:0]
	removed := false
	for _, m := range l.modules {
		if strings.EqualFold(m.Name, name) && m.BasePath == basePath {
			removed = true
			continue
		}
		kept = append(kept, m)
	}
	l.modules = kept
	return removed
}

// Candidates returns the loaded modules whose name matches case-insensitively.
func (l *Loaded) Candidates(_ context.Context, name string) ([]Candidate, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var result []Candidate
	for _, m := range l.modules {
		if strings.EqualFold(m.Name, name) {
			result = append(result, m)
		}
	}
	return result, nil
}
