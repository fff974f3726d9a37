package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/alaineid/netcli-parse/textfsm"
)

// ErrTemplateNotFound indicates the source holds no template for the
// requested (platform, command) pair. Use errors.Is to test for it.
var ErrTemplateNotFound = errors.New("template not found")

// Source supplies raw template text for a (platform, command) pair. A
// missing entry is reported by wrapping ErrTemplateNotFound.
type Source interface {
	Template(ctx context.Context, platform, command string) (string, error)
}

type cacheKey struct {
	platform string
	command  string
}

// Registry caches compiled templates over a Source. Compilation happens at
// most once per (platform, command); the compiled template is immutable and
// shared. Safe for concurrent use.
type Registry struct {
	src Source

	mu    sync.RWMutex
	cache map[cacheKey]*textfsm.Template
}

// New creates a Registry over src.
func New(src Source) *Registry {
	return &Registry{src: src, cache: make(map[cacheKey]*textfsm.Template)}
}

// Lookup returns the compiled template for (platform, command), fetching and
// compiling it on first use. Compilation errors are not cached: a source
// whose template text is later corrected compiles cleanly on retry.
func (r *Registry) Lookup(ctx context.Context, platform, command string) (*textfsm.Template, error) {
	key := cacheKey{platform: platform, command: command}

	r.mu.RLock()
	tmpl, ok := r.cache[key]
	r.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	text, err := r.src.Template(ctx, platform, command)
	if err != nil {
		return nil, err
	}
	compiled, err := textfsm.Compile(text)
	if err != nil {
		return nil, fmt.Errorf("compiling template %s/%s: %w", platform, command, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if cached, ok := r.cache[key]; ok {
		// Another lookup won the race; keep its template so every caller
		// shares one compiled instance.
		return cached, nil
	}
	r.cache[key] = compiled
	return compiled, nil
}
