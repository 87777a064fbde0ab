package freshness

import (
	"testing"
	"time"

	"github.com/dukerupert/pantry/internal/model"
	"github.com/dukerupert/pantry/internal/tag"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestClassifyBoundaries(t *testing.T) {
	now := time.Date(2026, 2, 5, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		expiry time.Time
		want   model.Freshness
	}{
		{"long past", date(2025, 12, 1), model.FreshnessExpired},
		{"yesterday", date(2026, 2, 4), model.FreshnessExpired},
		{"today", date(2026, 2, 5), model.FreshnessNearExpiry},
		{"tomorrow", date(2026, 2, 6), model.FreshnessNearExpiry},
		{"exactly seven days", date(2026, 2, 12), model.FreshnessNearExpiry},
		{"eight days", date(2026, 2, 13), model.FreshnessFresh},
		{"next year", date(2027, 2, 5), model.FreshnessFresh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(DefaultHorizon).Classify(tt.expiry, now); got != tt.want {
				t.Errorf("Classify(%s) = %q, want %q", tt.expiry.Format(model.DateLayout), got, tt.want)
			}
		})
	}
}

func TestClassifyTimeOfDayIgnored(t *testing.T) {
	expiry := date(2026, 2, 12)
	for _, now := range []time.Time{
		time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 5, 23, 59, 59, 0, time.UTC),
	} {
		if got := New(DefaultHorizon).Classify(expiry, now); got != model.FreshnessNearExpiry {
			t.Errorf("at %v: got %q, want %q", now, got, model.FreshnessNearExpiry)
		}
	}
}

func TestClassifyUsesLocalDate(t *testing.T) {
	// 23:30 on Feb 5 in UTC-5 is already Feb 6 in UTC.
	loc := time.FixedZone("EST", -5*3600)
	now := time.Date(2026, 2, 5, 23, 30, 0, 0, loc)

	if got := New(DefaultHorizon).Classify(date(2026, 2, 5), now); got != model.FreshnessNearExpiry {
		t.Errorf("expiring today (local) = %q, want %q", got, model.FreshnessNearExpiry)
	}
}

func TestClassifyAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// DST begins March 8, 2026.
	now := time.Date(2026, 3, 5, 9, 0, 0, 0, loc)
	if got := New(DefaultHorizon).Classify(date(2026, 3, 12), now); got != model.FreshnessNearExpiry {
		t.Errorf("got %q, want %q", got, model.FreshnessNearExpiry)
	}
	if got := New(DefaultHorizon).Classify(date(2026, 3, 13), now); got != model.FreshnessFresh {
		t.Errorf("got %q, want %q", got, model.FreshnessFresh)
	}
}

func TestClassifyIdempotent(t *testing.T) {
	now := time.Date(2026, 2, 5, 8, 0, 0, 0, time.UTC)
	for offset := -10; offset <= 10; offset++ {
		expiry := date(2026, 2, 5).AddDate(0, 0, offset)
		first := New(DefaultHorizon).Classify(expiry, now)
		second := New(DefaultHorizon).Classify(expiry, now)
		if first != second {
			t.Errorf("offset %d: %q then %q", offset, first, second)
		}
	}
}

func TestCustomHorizon(t *testing.T) {
	c := New(3)
	now := date(2026, 2, 5)
	if got := c.Classify(date(2026, 2, 8), now); got != model.FreshnessNearExpiry {
		t.Errorf("3 days = %q, want near expiry", got)
	}
	if got := c.Classify(date(2026, 2, 9), now); got != model.FreshnessFresh {
		t.Errorf("4 days = %q, want fresh", got)
	}
}

func TestApply(t *testing.T) {
	now := date(2026, 2, 5)
	items := []model.Item{
		model.NewItem("Milk", 1, date(2026, 2, 1)),
		model.NewItem("Cheese", 1, date(2026, 2, 7)),
		model.NewItem("Rice", 1, date(2026, 9, 1)),
	}
	items[2].Freshness = tag.Wrap(model.FreshnessFresh)

	changes := New(DefaultHorizon).Apply(items, now)
	if len(changes) != 3 {
		t.Fatalf("expected 3 changes, got %d", len(changes))
	}

	want := []model.Freshness{model.FreshnessExpired, model.FreshnessNearExpiry, model.FreshnessFresh}
	for i, item := range items {
		if v, _ := item.Freshness.Value(); v != want[i] {
			t.Errorf("items[%d].Freshness = %q, want %q", i, v, want[i])
		}
		if changes[i].Current != want[i] {
			t.Errorf("changes[%d].Current = %q, want %q", i, changes[i].Current, want[i])
		}
	}
	if !changes[0].Changed() {
		t.Error("untagged item should report a change")
	}
	if changes[2].Changed() {
		t.Error("already-fresh item should not report a change")
	}

	again := New(DefaultHorizon).Apply(items, now)
	for i, ch := range again {
		if ch.Changed() {
			t.Errorf("second pass changed item %d", i)
		}
	}
}
