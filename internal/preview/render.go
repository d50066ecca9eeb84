package preview

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/glamour"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the number of rendered documents kept in memory.
const DefaultCacheSize = 32

const minWrap = 20

type cacheKey struct {
	width    int
	markdown string
}

// Renderer turns markdown into styled terminal output, caching results by
// width and content.
type Renderer struct {
	style string

	mu        sync.Mutex
	renderers map[int]*glamour.TermRenderer
	cache     *lru.Cache[cacheKey, string]
}

// NewRenderer builds a renderer using a glamour standard style such as
// "dark", "light" or "notty".
func NewRenderer(style string, cacheSize int) (*Renderer, error) {
	if style == "" {
		style = "dark"
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[cacheKey, string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("preview cache: %w", err)
	}
	return &Renderer{style: style, renderers: make(map[int]*glamour.TermRenderer), cache: cache}, nil
}

// Render renders markdown wrapped to width cells.
func (r *Renderer) Render(markdown string, width int) (string, error) {
	if width < minWrap {
		width = minWrap
	}
	key := cacheKey{width: width, markdown: markdown}
	if out, ok := r.cache.Get(key); ok {
		return out, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	tr, ok := r.renderers[width]
	if !ok {
		var err error
		tr, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(r.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", fmt.Errorf("preview renderer: %w", err)
		}
		r.renderers[width] = tr
	}
	out, err := tr.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("render preview: %w", err)
	}
	r.cache.Add(key, out)
	return out, nil
}

// Cached reports how many rendered documents are held.
func (r *Renderer) Cached() int {
	return r.cache.Len()
}
