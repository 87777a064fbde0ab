package model

import "github.com/dukerupert/pantry/internal/tag"

type FoodGroup string

const (
	FoodGroupFruits     FoodGroup = "Fruits"
	FoodGroupVegetables FoodGroup = "Vegetables"
	FoodGroupGrains     FoodGroup = "Grains"
	FoodGroupProtein    FoodGroup = "Protein"
	FoodGroupDairy      FoodGroup = "Dairy"
	FoodGroupBeverages  FoodGroup = "Beverages"
	FoodGroupSnacks     FoodGroup = "Snacks"
	FoodGroupCondiments FoodGroup = "Condiments"
	FoodGroupOther      FoodGroup = "Other"
)

func (g FoodGroup) DisplayName() string { return string(g) }

var FoodGroups = tag.Domain[FoodGroup]{
	Name: "food group",
	Values: []FoodGroup{
		FoodGroupFruits,
		FoodGroupVegetables,
		FoodGroupGrains,
		FoodGroupProtein,
		FoodGroupDairy,
		FoodGroupBeverages,
		FoodGroupSnacks,
		FoodGroupCondiments,
		FoodGroupOther,
	},
}

// Freshness is derived from an item's expiry date, never set by hand.
type Freshness string

const (
	FreshnessFresh      Freshness = "Fresh"
	FreshnessNearExpiry Freshness = "Near Expiry"
	FreshnessExpired    Freshness = "Expired"
)

func (f Freshness) DisplayName() string { return string(f) }

var Freshnesses = tag.Domain[Freshness]{
	Name:   "freshness",
	Values: []Freshness{FreshnessFresh, FreshnessNearExpiry, FreshnessExpired},
}
