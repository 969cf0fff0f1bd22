// Package selector picks a tweet category and template group from the
// current calendar context. Selection is a data-driven cascade: a
// special-day short-circuit, then a weighted choice between four context
// buckets, each with its own weighted category menu, then an optional
// trending-topic override.
package selector

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/liminalpurple/kaomoji-bot/internal/almanac"
	"github.com/liminalpurple/kaomoji-bot/internal/classify"
	"github.com/liminalpurple/kaomoji-bot/internal/content"
)

// Weights splits probability mass between the four context buckets. They
// are normalized at selection time, so they need not sum to 1.
type Weights struct {
	Time    float64 `mapstructure:"time"`
	Weekday float64 `mapstructure:"weekday"`
	Season  float64 `mapstructure:"season"`
	Weather float64 `mapstructure:"weather"`
}

// DefaultWeights returns the documented default bucket split.
func DefaultWeights() Weights {
	return Weights{Time: 0.30, Weekday: 0.30, Season: 0.20, Weather: 0.20}
}

// Choice is one weighted entry in a bucket menu.
type Choice struct {
	Category string
	Weight   float64
}

// Menus holds the per-bucket category menus. They are plain data so
// deployments can tune them without touching selection logic.
type Menus struct {
	Time    map[almanac.TimeOfDay][]Choice
	Weekday map[time.Weekday][]Choice
	Season  map[almanac.Season][]Choice
	Weather []Choice
}

// DefaultMenus returns the built-in category menus.
func DefaultMenus() Menus {
	return Menus{
		Time: map[almanac.TimeOfDay][]Choice{
			almanac.EarlyMorning: {{"happy", 0.5}, {"sleepy", 0.5}},
			almanac.Morning:      {{"happy", 0.5}, {"sleepy", 0.5}},
			almanac.Lunch:        {{"happy", 0.5}, {"food", 0.5}},
			almanac.Afternoon:    {{"happy", 0.6}, {"surprised", 0.4}},
			almanac.Dinner:       {{"happy", 0.5}, {"food", 0.5}},
			almanac.Evening:      {{"love", 0.7}, {"happy", 0.3}},
			almanac.LateNight:    {{"sleepy", 0.6}, {"surprised", 0.4}},
			almanac.Night:        {{"sleepy", 0.6}, {"surprised", 0.4}},
		},
		Weekday: map[time.Weekday][]Choice{
			time.Monday:    {{"sleepy", 0.5}, {"worried", 0.5}},
			time.Tuesday:   {{"happy", 0.5}, {"surprised", 0.5}},
			time.Wednesday: {{"happy", 0.5}, {"surprised", 0.5}},
			time.Thursday:  {{"happy", 0.5}, {"surprised", 0.5}},
			time.Friday:    {{"happy", 0.7}, {"love", 0.3}},
			time.Saturday:  {{"happy", 0.6}, {"love", 0.4}},
			time.Sunday:    {{"happy", 0.6}, {"love", 0.4}},
		},
		Season: map[almanac.Season][]Choice{
			almanac.Spring: {{"happy", 0.6}, {"love", 0.4}},
			almanac.Summer: {{"happy", 0.6}, {"surprised", 0.4}},
			almanac.Autumn: {{"sleepy", 0.5}, {"happy", 0.5}},
			almanac.Winter: {{"sleepy", 0.6}, {"love", 0.4}},
		},
		Weather: []Choice{{"happy", 0.4}, {"surprised", 0.3}, {"worried", 0.3}},
	}
}

// otherGroups are the template groups the weather/other bucket draws from.
var otherGroups = []string{"weather", "moods", "activities"}

// Pick is the selection result the composer consumes. Special is non-nil
// when a calendar day short-circuited selection; its template and hashtags
// are fixed. Trend is the trending term that overrode the bucket category,
// if any.
type Pick struct {
	Category string
	Group    string
	Hashtags []string
	Special  *almanac.SpecialDay
	Trend    string
}

// Selector performs weighted content selection against a content library.
type Selector struct {
	lib            *content.Library
	weights        Weights
	menus          Menus
	useSpecialDays bool

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures a Selector.
type Option func(*Selector)

// WithRand injects a seeded random source for deterministic tests.
func WithRand(rng *rand.Rand) Option {
	return func(s *Selector) { s.rng = rng }
}

// WithMenus overrides the built-in bucket menus.
func WithMenus(menus Menus) Option {
	return func(s *Selector) { s.menus = menus }
}

// WithSpecialDays toggles the special-day short-circuit.
func WithSpecialDays(enabled bool) Option {
	return func(s *Selector) { s.useSpecialDays = enabled }
}

// New creates a Selector over the library with the given bucket weights.
func New(lib *content.Library, weights Weights, opts ...Option) *Selector {
	s := &Selector{
		lib:            lib,
		weights:        weights,
		menus:          DefaultMenus(),
		useSpecialDays: true,
		rng:            rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Select picks a category and template group for the snapshot.
func (s *Selector) Select(snap almanac.Snapshot) (Pick, error) {
	if s.useSpecialDays {
		if day, ok := almanac.SpecialDayAt(snap.Now); ok {
			return Pick{
				Category: day.Category,
				Hashtags: day.Hashtags,
				Special:  &day,
			}, nil
		}
	}

	pick := s.pickBucket(snap)

	if len(snap.Trends) > 0 {
		if category, trend, ok := classify.MatchTrend(snap.Trends); ok {
			pick.Category = category
			pick.Trend = trend
		}
	}

	// A category with no catalog entry is replaced by a random existing
	// one: selection never surfaces a lookup miss.
	catalog, err := s.lib.Catalog()
	if err != nil {
		return Pick{}, err
	}
	if _, ok := catalog[pick.Category]; !ok {
		category, err := s.lib.RandomCategory()
		if err != nil {
			return Pick{}, err
		}
		pick.Category = category
	}
	return pick, nil
}

// pickBucket draws the context bucket, then the category from the bucket's
// menu with an independent second draw.
func (s *Selector) pickBucket(snap almanac.Snapshot) Pick {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := s.weights.Time + s.weights.Weekday + s.weights.Season + s.weights.Weather
	if total <= 0 {
		total = 1
	}
	r := s.rng.Float64() * total

	switch {
	case r < s.weights.Time:
		return Pick{
			Group:    "times",
			Category: s.pickWeightedLocked(s.menus.Time[snap.TimeOfDay]),
		}
	case r < s.weights.Time+s.weights.Weekday:
		return Pick{
			Group:    "weekdays",
			Category: s.pickWeightedLocked(s.menus.Weekday[snap.Weekday]),
		}
	case r < s.weights.Time+s.weights.Weekday+s.weights.Season:
		return Pick{
			Group:    "seasonal",
			Category: s.pickWeightedLocked(s.menus.Season[snap.Season]),
		}
	default:
		return Pick{
			Group:    otherGroups[s.rng.IntN(len(otherGroups))],
			Category: s.pickWeightedLocked(s.menus.Weather),
		}
	}
}

// pickWeightedLocked is the generic weighted-choice routine shared by all
// buckets. An empty menu yields an empty category, which Select resolves
// through the catalog fallback.
func (s *Selector) pickWeightedLocked(choices []Choice) string {
	var total float64
	for _, c := range choices {
		total += c.Weight
	}
	if total <= 0 {
		return ""
	}

	r := s.rng.Float64() * total
	for _, c := range choices {
		r -= c.Weight
		if r < 0 {
			return c.Category
		}
	}
	return choices[len(choices)-1].Category
}

// SimpleCount draws the kaomoji count for a simple tweet, uniform in
// [min, max].
func (s *Selector) SimpleCount(min, max int) int {
	if max < min {
		min, max = max, min
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return min + s.rng.IntN(max-min+1)
}
