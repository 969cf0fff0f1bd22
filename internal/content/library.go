// Package content provides the kaomoji catalog and tweet template library.
// Both are loaded from JSON files in the data directory and cached in
// memory for a configurable TTL.
package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/liminalpurple/kaomoji-bot/internal/classify"
)

// ErrDataUnavailable indicates the backing store is missing or corrupt and
// no default could be synthesized. Content-producing calls must propagate
// it rather than emit empty text.
var ErrDataUnavailable = errors.New("content data unavailable")

const (
	catalogFile   = "kaomojis.json"
	templatesFile = "messages.json"
)

// Library owns the in-memory content cache. Construct one at process start
// and share the handle; there is no ambient global state.
type Library struct {
	dataDir string
	ttl     time.Duration

	mu        sync.Mutex
	rng       *rand.Rand
	catalog   Catalog
	templates *Templates
	loadedAt  time.Time
}

// Option configures a Library.
type Option func(*Library)

// WithRand injects a seeded random source for deterministic tests.
func WithRand(rng *rand.Rand) Option {
	return func(l *Library) { l.rng = rng }
}

// New creates a Library reading from dataDir with the given cache TTL.
func New(dataDir string, ttl time.Duration, opts ...Option) *Library {
	l := &Library{
		dataDir: dataDir,
		ttl:     ttl,
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Catalog returns the kaomoji catalog, re-reading from disk after cache
// expiry. A missing or corrupt catalog file is fatal: there is no default
// to synthesize.
func (l *Library) Catalog() (Catalog, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.refreshLocked(); err != nil {
		return nil, err
	}
	return l.catalog, nil
}

// Templates returns the message templates, creating and persisting the
// default document if the file does not exist yet.
func (l *Library) Templates() (*Templates, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.refreshLocked(); err != nil {
		return nil, err
	}
	return l.templates, nil
}

// refreshLocked reloads both documents when the shared cache has expired.
// Callers must hold l.mu.
func (l *Library) refreshLocked() error {
	if l.catalog != nil && l.templates != nil && !l.cacheExpired() {
		return nil
	}

	catalog, err := l.loadCatalog()
	if err != nil {
		return err
	}
	templates, err := l.loadTemplates()
	if err != nil {
		return err
	}

	l.catalog = catalog
	l.templates = templates
	l.loadedAt = time.Now()
	return nil
}

func (l *Library) cacheExpired() bool {
	return l.loadedAt.IsZero() || time.Since(l.loadedAt) > l.ttl
}

func (l *Library) loadCatalog() (Catalog, error) {
	data, err := os.ReadFile(filepath.Join(l.dataDir, catalogFile))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read kaomoji catalog: %v", ErrDataUnavailable, err)
	}

	var catalog Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("%w: failed to parse kaomoji catalog: %v", ErrDataUnavailable, err)
	}

	// Empty categories would surface as empty draws downstream; drop
	// them here so every cached category is drawable.
	for name, list := range catalog {
		if len(list) == 0 {
			delete(catalog, name)
		}
	}
	if len(catalog) == 0 {
		return nil, fmt.Errorf("%w: kaomoji catalog has no usable categories", ErrDataUnavailable)
	}
	return catalog, nil
}

func (l *Library) loadTemplates() (*Templates, error) {
	path := filepath.Join(l.dataDir, templatesFile)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return l.createDefaultTemplates(path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read message templates: %v", ErrDataUnavailable, err)
	}

	var templates Templates
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("%w: failed to parse message templates: %v", ErrDataUnavailable, err)
	}
	return &templates, nil
}

// createDefaultTemplates persists the built-in template set on first
// access. The defaults are still returned if the save fails.
func (l *Library) createDefaultTemplates(path string) (*Templates, error) {
	templates := defaultTemplates()

	if err := os.MkdirAll(l.dataDir, 0755); err != nil {
		return templates, nil
	}
	data, err := json.MarshalIndent(templates, "", "  ")
	if err != nil {
		return templates, nil
	}
	_ = os.WriteFile(path, data, 0644)
	return templates, nil
}

// categories returns the catalog's category names in sorted order so that
// random picks are reproducible under a seeded source.
func categories(catalog Catalog) []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// KaomojiByCategory returns a random glyph from the category, falling back
// to a uniformly random existing category when the requested one has no
// catalog entry. The category actually used is returned for usage tracking.
func (l *Library) KaomojiByCategory(category string) (glyph, used string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.refreshLocked(); err != nil {
		return "", "", err
	}

	list, ok := l.catalog[category]
	if !ok || len(list) == 0 {
		names := categories(l.catalog)
		category = names[l.rng.IntN(len(names))]
		list = l.catalog[category]
	}
	return list[l.rng.IntN(len(list))], category, nil
}

// RandomCategory returns a uniformly random category name.
func (l *Library) RandomCategory() (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.refreshLocked(); err != nil {
		return "", err
	}
	names := categories(l.catalog)
	return names[l.rng.IntN(len(names))], nil
}

// RandomKaomojis draws count glyphs from independently random categories.
func (l *Library) RandomKaomojis(count int) ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.refreshLocked(); err != nil {
		return nil, err
	}

	names := categories(l.catalog)
	glyphs := make([]string, 0, count)
	for range count {
		list := l.catalog[names[l.rng.IntN(len(names))]]
		glyphs = append(glyphs, list[l.rng.IntN(len(list))])
	}
	return glyphs, nil
}

// RandomMessage returns a random template from the group, substituting a
// random real group when the requested one does not exist.
func (l *Library) RandomMessage(group string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.refreshLocked(); err != nil {
		return "", err
	}

	list, ok := l.templates.Groups[group]
	if !ok || len(list) == 0 {
		names := make([]string, 0, len(l.templates.Groups))
		for name, candidates := range l.templates.Groups {
			if len(candidates) > 0 {
				names = append(names, name)
			}
		}
		if len(names) == 0 {
			return "", fmt.Errorf("%w: no template groups available", ErrDataUnavailable)
		}
		sort.Strings(names)
		list = l.templates.Groups[names[l.rng.IntN(len(names))]]
	}
	return list[l.rng.IntN(len(list))], nil
}

// ResponseMessage picks a reply template for the mention text: question
// phrasing wins, then the canonical mood table routes happy/sad/food, and
// everything else gets a general response.
func (l *Library) ResponseMessage(text string) (string, error) {
	responseType := "general"
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "?") ||
		strings.Contains(lower, "what") || strings.Contains(lower, "how") ||
		strings.Contains(lower, "why") || strings.Contains(lower, "when"):
		responseType = "question"
	default:
		if category, ok := classify.DetectCategory(text); ok {
			switch category {
			case "happy", "sad", "food":
				responseType = category
			}
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.refreshLocked(); err != nil {
		return "", err
	}

	list, ok := l.templates.Responses[responseType]
	if !ok || len(list) == 0 {
		list = l.templates.Responses["general"]
	}
	if len(list) == 0 {
		return "", fmt.Errorf("%w: no response templates available", ErrDataUnavailable)
	}
	return list[l.rng.IntN(len(list))], nil
}

// RandomHashtags returns up to count hashtags drawn from the general pool.
func (l *Library) RandomHashtags(count int) ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.refreshLocked(); err != nil {
		return nil, err
	}

	pool := make([]string, len(l.templates.Hashtags))
	copy(pool, l.templates.Hashtags)
	l.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if count > len(pool) {
		count = len(pool)
	}
	return pool[:count], nil
}
