package selector

import (
	"encoding/json"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/liminalpurple/kaomoji-bot/internal/almanac"
	"github.com/liminalpurple/kaomoji-bot/internal/content"
)

func setupSelector(t *testing.T, seed uint64, opts ...Option) *Selector {
	t.Helper()

	tmpDir := t.TempDir()
	catalog := content.Catalog{
		"happy":     {"(^_^)", "(*^▽^*)"},
		"sad":       {"(;_;)"},
		"love":      {"(♡´▽`♡)"},
		"food":      {"(っ˘ڡ˘ς)"},
		"sleepy":    {"(－_－) zzZ"},
		"surprised": {"(⊙_⊙)"},
		"angry":     {"(｀Д´)"},
		"worried":   {"(・_・;)"},
	}
	data, err := json.Marshal(catalog)
	if err != nil {
		t.Fatalf("Failed to marshal catalog: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, "kaomojis.json"), data, 0644); err != nil {
		t.Fatalf("Failed to write catalog: %v", err)
	}

	lib := content.New(tmpDir, time.Hour, content.WithRand(rand.New(rand.NewPCG(seed, seed+1))))
	opts = append([]Option{WithRand(rand.New(rand.NewPCG(seed+2, seed+3)))}, opts...)
	return New(lib, DefaultWeights(), opts...)
}

func snapshotAt(month time.Month, day, hour int) almanac.Snapshot {
	return almanac.SnapshotAt(time.Date(2025, month, day, hour, 0, 0, 0, time.UTC))
}

func TestSelect_SpecialDayShortCircuits(t *testing.T) {
	// Regardless of seed, December 25 yields the fixed Christmas content.
	for seed := uint64(0); seed < 10; seed++ {
		sel := setupSelector(t, seed)

		pick, err := sel.Select(snapshotAt(time.December, 25, 14))
		if err != nil {
			t.Fatalf("Select failed: %v", err)
		}
		if pick.Special == nil || pick.Special.Name != "Christmas" {
			t.Fatalf("seed %d: expected Christmas short-circuit, got %+v", seed, pick)
		}
		if pick.Category != "happy" {
			t.Errorf("seed %d: expected happy, got %s", seed, pick.Category)
		}
		if len(pick.Hashtags) == 0 {
			t.Errorf("seed %d: expected fixed hashtags", seed)
		}
	}
}

func TestSelect_SpecialDaysDisabled(t *testing.T) {
	sel := setupSelector(t, 7, WithSpecialDays(false))

	pick, err := sel.Select(snapshotAt(time.December, 25, 14))
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if pick.Special != nil {
		t.Error("special day themes are disabled, short-circuit must not fire")
	}
}

func TestSelect_BucketDistribution(t *testing.T) {
	sel := setupSelector(t, 42)
	snap := snapshotAt(time.June, 11, 9)

	const draws = 10000
	counts := map[string]int{}
	for range draws {
		pick, err := sel.Select(snap)
		if err != nil {
			t.Fatalf("Select failed: %v", err)
		}
		counts[pick.Group]++
	}

	// Bucket shares at default weights, within ±2%.
	assertShare(t, "times bucket", counts["times"], draws, 0.30)
	assertShare(t, "weekday bucket", counts["weekdays"], draws, 0.30)
	assertShare(t, "season bucket", counts["seasonal"], draws, 0.20)
	other := counts["weather"] + counts["moods"] + counts["activities"]
	assertShare(t, "weather/other bucket", other, draws, 0.20)
}

func assertShare(t *testing.T, name string, count, total int, want float64) {
	t.Helper()
	got := float64(count) / float64(total)
	if math.Abs(got-want) > 0.02 {
		t.Errorf("%s: expected share %.2f±0.02, got %.4f", name, want, got)
	}
}

func TestSelect_MenuWeightsRespected(t *testing.T) {
	// Force the time bucket and check the evening menu's 70/30 split.
	sel := setupSelector(t, 9, WithMenus(DefaultMenus()))
	sel.weights = Weights{Time: 1}

	snap := snapshotAt(time.June, 11, 21) // evening

	const draws = 10000
	counts := map[string]int{}
	for range draws {
		pick, err := sel.Select(snap)
		if err != nil {
			t.Fatalf("Select failed: %v", err)
		}
		counts[pick.Category]++
	}

	assertShare(t, "evening love", counts["love"], draws, 0.70)
	assertShare(t, "evening happy", counts["happy"], draws, 0.30)
}

func TestSelect_TrendOverridesCategory(t *testing.T) {
	sel := setupSelector(t, 3)

	snap := snapshotAt(time.June, 11, 9)
	snap.Trends = []string{"#HungryHour"}

	pick, err := sel.Select(snap)
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if pick.Category != "food" {
		t.Errorf("expected trend to route to food, got %s", pick.Category)
	}
	if pick.Trend != "#HungryHour" {
		t.Errorf("expected matched trend recorded, got %q", pick.Trend)
	}
}

func TestSelect_UnmatchedTrendKeepsBucketCategory(t *testing.T) {
	sel := setupSelector(t, 3)

	snap := snapshotAt(time.June, 11, 9)
	snap.Trends = []string{"#Formula1"}

	pick, err := sel.Select(snap)
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if pick.Trend != "" {
		t.Errorf("expected no trend match, got %q", pick.Trend)
	}
	if pick.Category == "" {
		t.Error("expected a bucket category")
	}
}

func TestSelect_UnknownMenuCategoryFallsBack(t *testing.T) {
	menus := DefaultMenus()
	menus.Time[almanac.Morning] = []Choice{{"festive", 1.0}} // not in catalog
	sel := setupSelector(t, 5, WithMenus(menus))
	sel.weights = Weights{Time: 1}

	for range 50 {
		pick, err := sel.Select(snapshotAt(time.June, 11, 9))
		if err != nil {
			t.Fatalf("Select failed: %v", err)
		}
		if pick.Category == "festive" || pick.Category == "" {
			t.Fatalf("expected fallback to a real category, got %q", pick.Category)
		}
	}
}

func TestSimpleCount_WithinRange(t *testing.T) {
	sel := setupSelector(t, 11)

	for range 100 {
		n := sel.SimpleCount(1, 5)
		if n < 1 || n > 5 {
			t.Fatalf("count %d outside [1,5]", n)
		}
	}
	if n := sel.SimpleCount(3, 3); n != 3 {
		t.Errorf("degenerate range must yield its only value, got %d", n)
	}
}
