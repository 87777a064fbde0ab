package model

import (
	"encoding/json"
	"time"

	"github.com/dukerupert/pantry/internal/tag"
)

// DateLayout is the storage and wire format for expiry dates.
const DateLayout = "2006-01-02"

// MaxItemNameLength is the longest item name accepted, in characters.
const MaxItemNameLength = 50

type Item struct {
	Name       string
	Quantity   int
	ExpiryDate time.Time
	FoodGroup  tag.Generic[FoodGroup]
	Freshness  tag.Generic[Freshness]
	CustomTag  string
}

// NewItem builds an item with no tags. The expiry date is truncated to its
// calendar day.
func NewItem(name string, quantity int, expiry time.Time) Item {
	return Item{
		Name:       name,
		Quantity:   quantity,
		ExpiryDate: Day(expiry),
	}
}

// Day returns midnight UTC of t's calendar date.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

type itemJSON struct {
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	ExpiryDate string  `json:"expiry_date"`
	FoodGroup  *string `json:"food_group"`
	Freshness  *string `json:"freshness"`
	CustomTag  string  `json:"custom_tag,omitempty"`
}

func (i Item) MarshalJSON() ([]byte, error) {
	out := itemJSON{
		Name:       i.Name,
		Quantity:   i.Quantity,
		ExpiryDate: i.ExpiryDate.Format(DateLayout),
		CustomTag:  i.CustomTag,
	}
	if i.FoodGroup.IsSet() {
		s := i.FoodGroup.String()
		out.FoodGroup = &s
	}
	if i.Freshness.IsSet() {
		s := i.Freshness.String()
		out.Freshness = &s
	}
	return json.Marshal(out)
}

// ContainerItem is an item together with the container holding it.
type ContainerItem struct {
	Container string `json:"container"`
	Item      Item   `json:"item"`
}
