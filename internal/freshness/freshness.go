package freshness

import (
	"time"

	"github.com/dukerupert/pantry/internal/model"
	"github.com/dukerupert/pantry/internal/tag"
)

// DefaultHorizon is how many days ahead of today an expiry date still counts
// as near expiry.
const DefaultHorizon = 7

// Classifier maps expiry dates to freshness states relative to a reference day.
type Classifier struct {
	Horizon int
}

func New(horizon int) Classifier {
	return Classifier{Horizon: horizon}
}

// Classify returns the freshness of an item expiring on expiry, as seen at now.
// Only the calendar day of expiry matters; the item is good through the end
// of that day in now's location.
func (c Classifier) Classify(expiry, now time.Time) model.Freshness {
	days := daysUntil(expiry, now)
	switch {
	case days < 0:
		return model.FreshnessExpired
	case days <= c.Horizon:
		return model.FreshnessNearExpiry
	default:
		return model.FreshnessFresh
	}
}

// Change records a freshness recomputation for one item.
type Change struct {
	Name     string
	Previous tag.Generic[model.Freshness]
	Current  model.Freshness
}

// Changed reports whether the stored tag differs from the computed one.
func (ch Change) Changed() bool {
	return !ch.Previous.Equal(tag.Wrap(ch.Current))
}

// Apply classifies every item in one pass and sets its Freshness tag in place.
// It returns one Change per item, in input order.
func (c Classifier) Apply(items []model.Item, now time.Time) []Change {
	changes := make([]Change, len(items))
	for i := range items {
		current := c.Classify(items[i].ExpiryDate, now)
		changes[i] = Change{
			Name:     items[i].Name,
			Previous: items[i].Freshness,
			Current:  current,
		}
		items[i].Freshness = tag.Wrap(current)
	}
	return changes
}

// daysUntil counts calendar days from now's date to expiry's date.
func daysUntil(expiry, now time.Time) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	day := time.Date(expiry.Year(), expiry.Month(), expiry.Day(), 0, 0, 0, 0, time.UTC)
	return int(day.Sub(today).Hours() / 24)
}
