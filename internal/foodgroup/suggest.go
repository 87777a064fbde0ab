// Package foodgroup suggests a food group from an item name. Suggestions are
// never applied automatically; the user confirms them through a tag update.
package foodgroup

import (
	"strings"

	"github.com/dukerupert/pantry/internal/model"
)

// Suggest returns the likely food group for the given item name.
// It matches case-insensitively: exact name first, then keyword substring.
// Falls back to Other if nothing matches.
func Suggest(itemName string) model.FoodGroup {
	name := strings.ToLower(strings.TrimSpace(itemName))
	if name == "" {
		return model.FoodGroupOther
	}

	if g, ok := exactMatch[name]; ok {
		return g
	}

	// Longer, more specific keywords come first.
	for _, entry := range keywordMatches {
		if strings.Contains(name, entry.keyword) {
			return entry.group
		}
	}

	return model.FoodGroupOther
}

var exactMatch = map[string]model.FoodGroup{
	// Fruits
	"apple":        model.FoodGroupFruits,
	"apples":       model.FoodGroupFruits,
	"banana":       model.FoodGroupFruits,
	"bananas":      model.FoodGroupFruits,
	"orange":       model.FoodGroupFruits,
	"oranges":      model.FoodGroupFruits,
	"lemon":        model.FoodGroupFruits,
	"lime":         model.FoodGroupFruits,
	"avocado":      model.FoodGroupFruits,
	"grapes":       model.FoodGroupFruits,
	"strawberries": model.FoodGroupFruits,
	"blueberries":  model.FoodGroupFruits,
	"mango":        model.FoodGroupFruits,
	"pear":         model.FoodGroupFruits,
	"peach":        model.FoodGroupFruits,
	"pineapple":    model.FoodGroupFruits,
	"watermelon":   model.FoodGroupFruits,
	"tomato":       model.FoodGroupFruits,

	// Vegetables
	"potato":      model.FoodGroupVegetables,
	"potatoes":    model.FoodGroupVegetables,
	"onion":       model.FoodGroupVegetables,
	"onions":      model.FoodGroupVegetables,
	"garlic":      model.FoodGroupVegetables,
	"lettuce":     model.FoodGroupVegetables,
	"spinach":     model.FoodGroupVegetables,
	"kale":        model.FoodGroupVegetables,
	"broccoli":    model.FoodGroupVegetables,
	"carrot":      model.FoodGroupVegetables,
	"carrots":     model.FoodGroupVegetables,
	"celery":      model.FoodGroupVegetables,
	"cucumber":    model.FoodGroupVegetables,
	"zucchini":    model.FoodGroupVegetables,
	"asparagus":   model.FoodGroupVegetables,
	"peas":        model.FoodGroupVegetables,
	"corn":        model.FoodGroupVegetables,
	"green beans": model.FoodGroupVegetables,
	"eggplant":    model.FoodGroupVegetables,

	// Grains
	"bread":    model.FoodGroupGrains,
	"rice":     model.FoodGroupGrains,
	"pasta":    model.FoodGroupGrains,
	"oats":     model.FoodGroupGrains,
	"oatmeal":  model.FoodGroupGrains,
	"flour":    model.FoodGroupGrains,
	"cereal":   model.FoodGroupGrains,
	"tortilla": model.FoodGroupGrains,
	"bagels":   model.FoodGroupGrains,
	"noodles":  model.FoodGroupGrains,
	"quinoa":   model.FoodGroupGrains,

	// Protein
	"chicken": model.FoodGroupProtein,
	"beef":    model.FoodGroupProtein,
	"pork":    model.FoodGroupProtein,
	"ham":     model.FoodGroupProtein,
	"bacon":   model.FoodGroupProtein,
	"salmon":  model.FoodGroupProtein,
	"tuna":    model.FoodGroupProtein,
	"shrimp":  model.FoodGroupProtein,
	"eggs":    model.FoodGroupProtein,
	"egg":     model.FoodGroupProtein,
	"tofu":    model.FoodGroupProtein,
	"beans":   model.FoodGroupProtein,
	"lentils": model.FoodGroupProtein,

	// Dairy
	"milk":         model.FoodGroupDairy,
	"cheese":       model.FoodGroupDairy,
	"butter":       model.FoodGroupDairy,
	"yogurt":       model.FoodGroupDairy,
	"cream":        model.FoodGroupDairy,
	"sour cream":   model.FoodGroupDairy,
	"cream cheese": model.FoodGroupDairy,

	// Beverages
	"coffee": model.FoodGroupBeverages,
	"tea":    model.FoodGroupBeverages,
	"juice":  model.FoodGroupBeverages,
	"soda":   model.FoodGroupBeverages,
	"water":  model.FoodGroupBeverages,
	"beer":   model.FoodGroupBeverages,
	"wine":   model.FoodGroupBeverages,

	// Snacks
	"chips":     model.FoodGroupSnacks,
	"crackers":  model.FoodGroupSnacks,
	"cookies":   model.FoodGroupSnacks,
	"popcorn":   model.FoodGroupSnacks,
	"pretzels":  model.FoodGroupSnacks,
	"nuts":      model.FoodGroupSnacks,
	"chocolate": model.FoodGroupSnacks,

	// Condiments
	"ketchup":    model.FoodGroupCondiments,
	"mustard":    model.FoodGroupCondiments,
	"mayo":       model.FoodGroupCondiments,
	"mayonnaise": model.FoodGroupCondiments,
	"salsa":      model.FoodGroupCondiments,
	"soy sauce":  model.FoodGroupCondiments,
	"hot sauce":  model.FoodGroupCondiments,
	"honey":      model.FoodGroupCondiments,
	"jam":        model.FoodGroupCondiments,
	"olive oil":  model.FoodGroupCondiments,
	"vinegar":    model.FoodGroupCondiments,
}

type keywordEntry struct {
	keyword string
	group   model.FoodGroup
}

var keywordMatches = []keywordEntry{
	// Multi-word keywords first
	{"peanut butter", model.FoodGroupCondiments},
	{"ice cream", model.FoodGroupDairy},
	{"almond milk", model.FoodGroupBeverages},
	{"oat milk", model.FoodGroupBeverages},
	{"green bean", model.FoodGroupVegetables},
	{"sweet potato", model.FoodGroupVegetables},
	{"pepperoni", model.FoodGroupProtein},
	{"eggplant", model.FoodGroupVegetables},

	{"sauce", model.FoodGroupCondiments},
	{"dressing", model.FoodGroupCondiments},
	{"chicken", model.FoodGroupProtein},
	{"beef", model.FoodGroupProtein},
	{"pork", model.FoodGroupProtein},
	{"turkey", model.FoodGroupProtein},
	{"sausage", model.FoodGroupProtein},
	{"salmon", model.FoodGroupProtein},
	{"fish", model.FoodGroupProtein},
	{"steak", model.FoodGroupProtein},
	{"egg", model.FoodGroupProtein},
	{"bean", model.FoodGroupProtein},
	{"cheese", model.FoodGroupDairy},
	{"yogurt", model.FoodGroupDairy},
	{"milk", model.FoodGroupDairy},
	{"bread", model.FoodGroupGrains},
	{"rice", model.FoodGroupGrains},
	{"pasta", model.FoodGroupGrains},
	{"cereal", model.FoodGroupGrains},
	{"lettuce", model.FoodGroupVegetables},
	{"spinach", model.FoodGroupVegetables},
	{"pepper", model.FoodGroupVegetables},
	{"potato", model.FoodGroupVegetables},
	{"onion", model.FoodGroupVegetables},
	{"carrot", model.FoodGroupVegetables},
	{"berries", model.FoodGroupFruits},
	{"berry", model.FoodGroupFruits},
	{"apple", model.FoodGroupFruits},
	{"banana", model.FoodGroupFruits},
	{"juice", model.FoodGroupBeverages},
	{"coffee", model.FoodGroupBeverages},
	{"tea", model.FoodGroupBeverages},
	{"water", model.FoodGroupBeverages},
	{"soda", model.FoodGroupBeverages},
	{"chip", model.FoodGroupSnacks},
	{"cookie", model.FoodGroupSnacks},
	{"cracker", model.FoodGroupSnacks},
	{"candy", model.FoodGroupSnacks},
	{"granola", model.FoodGroupSnacks},
}
