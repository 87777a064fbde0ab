package pantry

import (
	"errors"

	"github.com/dukerupert/pantry/internal/freshness"
	"github.com/dukerupert/pantry/internal/model"
)

var (
	ErrNotFound          = errors.New("item not found")
	ErrContainerNotFound = errors.New("container not found")
	ErrContainerExists   = errors.New("container already exists")
)

// Storage persists containers and their items. Methods block until the
// write is durable or has failed; failures are not retried here.
//
// Getters return a nil item and nil error when nothing matches. Mutations on
// a single item report whether a row was affected.
type Storage interface {
	ListContainers() ([]string, error)
	ContainerExists(name string) (bool, error)
	CreateContainer(name string) error
	RenameContainer(oldName, newName string) error
	// DeleteContainer removes the container and every item in it.
	DeleteContainer(name string) error
	EmptyContainer(name string) (int64, error)

	ListItems(container string) ([]model.Item, error)
	GetItem(container, name string) (*model.Item, error)
	// InsertItem adds item unless the container already holds one with the
	// same name, in which case it does nothing and reports false.
	InsertItem(container string, item model.Item) (bool, error)
	DeleteItem(container, name string) (bool, error)

	SetFoodGroupTag(container, name string, group model.FoodGroup) (bool, error)
	SetFreshnessTag(container, name string, f model.Freshness) (bool, error)
	SetCustomTag(container, name, note string) (bool, error)
	SetQuantity(container, name string, quantity int) (bool, error)

	// BatchSetFreshness hands every item in the container to apply and
	// stores the freshness of each item whose Change reports a difference.
	// It returns how many stored tags changed.
	BatchSetFreshness(container string, apply func(items []model.Item) []freshness.Change) (int, error)

	StorageTip(food string) (string, error)
}
