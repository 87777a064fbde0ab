package model

import (
	"encoding/json"
	"slices"
	"strings"
)

// Container is a named group of items. Item names are unique within it.
type Container struct {
	Name  string
	items map[string]Item
}

func NewContainer(name string) *Container {
	return &Container{Name: name, items: make(map[string]Item)}
}

// Add stores item unless one with the same name is already present.
// It reports whether the item was added.
func (c *Container) Add(item Item) bool {
	if _, ok := c.items[item.Name]; ok {
		return false
	}
	c.items[item.Name] = item
	return true
}

// Len returns the number of items.
func (c *Container) Len() int {
	return len(c.items)
}

// Items returns the items ordered by name.
func (c *Container) Items() []Item {
	items := make([]Item, 0, len(c.items))
	for _, item := range c.items {
		items = append(items, item)
	}
	slices.SortFunc(items, func(a, b Item) int {
		return strings.Compare(a.Name, b.Name)
	})
	return items
}

func (c *Container) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name  string `json:"name"`
		Items []Item `json:"items"`
	}{Name: c.Name, Items: c.Items()})
}
