// Package pantry is the entry point for every inventory operation the
// presentation layer performs. It validates input, keeps freshness current,
// and delegates persistence to a Storage.
package pantry

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dukerupert/pantry/internal/freshness"
	"github.com/dukerupert/pantry/internal/model"
	"github.com/dukerupert/pantry/internal/tag"
	"github.com/dukerupert/pantry/internal/validate"
)

// Event describes a completed mutation for live-update subscribers.
type Event struct {
	Entity    string
	Action    string
	Container string
	Item      string
}

// Notifier receives an Event after every successful mutation.
type Notifier interface {
	Notify(Event)
}

type Option func(*Service)

// WithClock overrides the time source used for validation and freshness.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithHorizon sets how many days ahead counts as near expiry.
func WithHorizon(days int) Option {
	return func(s *Service) { s.classifier = freshness.New(days) }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

type Service struct {
	store      Storage
	classifier freshness.Classifier
	now        func() time.Time
	logger     *slog.Logger
	notifier   Notifier
}

func New(store Storage, opts ...Option) *Service {
	s := &Service{
		store:      store,
		classifier: freshness.New(freshness.DefaultHorizon),
		now:        time.Now,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) notify(entity, action, container, item string) {
	if s.notifier != nil {
		s.notifier.Notify(Event{Entity: entity, Action: action, Container: container, Item: item})
	}
}

// --- Containers ---

const msgContainerNameEmpty = "Container name cannot be empty."

func (s *Service) ListContainers() ([]string, error) {
	names, err := s.store.ListContainers()
	if err != nil {
		return nil, fmt.Errorf("list containers: %w", err)
	}
	return names, nil
}

func (s *Service) CreateContainer(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &validate.Error{Message: msgContainerNameEmpty}
	}
	exists, err := s.store.ContainerExists(name)
	if err != nil {
		return fmt.Errorf("check container: %w", err)
	}
	if exists {
		return ErrContainerExists
	}
	if err := s.store.CreateContainer(name); err != nil {
		s.logger.Error("create container failed", "container", name, "error", err)
		return fmt.Errorf("create container: %w", err)
	}
	s.logger.Info("container created", "container", name)
	s.notify("container", "created", name, "")
	return nil
}

func (s *Service) RenameContainer(oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return &validate.Error{Message: msgContainerNameEmpty}
	}
	if err := s.requireContainer(oldName); err != nil {
		return err
	}
	if newName == oldName {
		return nil
	}
	exists, err := s.store.ContainerExists(newName)
	if err != nil {
		return fmt.Errorf("check container: %w", err)
	}
	if exists {
		return ErrContainerExists
	}
	if err := s.store.RenameContainer(oldName, newName); err != nil {
		s.logger.Error("rename container failed", "container", oldName, "new_name", newName, "error", err)
		return fmt.Errorf("rename container: %w", err)
	}
	s.logger.Info("container renamed", "container", oldName, "new_name", newName)
	s.notify("container", "renamed", newName, "")
	return nil
}

func (s *Service) DeleteContainer(name string) error {
	if err := s.requireContainer(name); err != nil {
		return err
	}
	if err := s.store.DeleteContainer(name); err != nil {
		s.logger.Error("delete container failed", "container", name, "error", err)
		return fmt.Errorf("delete container: %w", err)
	}
	s.logger.Info("container deleted", "container", name)
	s.notify("container", "deleted", name, "")
	return nil
}

// EmptyContainer deletes every item but keeps the container.
func (s *Service) EmptyContainer(name string) (int64, error) {
	if err := s.requireContainer(name); err != nil {
		return 0, err
	}
	n, err := s.store.EmptyContainer(name)
	if err != nil {
		return 0, fmt.Errorf("empty container: %w", err)
	}
	s.logger.Info("container emptied", "container", name, "removed", n)
	s.notify("container", "emptied", name, "")
	return n, nil
}

// OpenContainer refreshes freshness and loads the container with its items.
func (s *Service) OpenContainer(name string) (*model.Container, error) {
	items, err := s.ListItems(name)
	if err != nil {
		return nil, err
	}
	c := model.NewContainer(name)
	for _, item := range items {
		c.Add(item)
	}
	return c, nil
}

func (s *Service) requireContainer(name string) error {
	exists, err := s.store.ContainerExists(name)
	if err != nil {
		return fmt.Errorf("check container: %w", err)
	}
	if !exists {
		return ErrContainerNotFound
	}
	return nil
}

// --- Items ---

// ListItems refreshes freshness for the container, then lists its items.
func (s *Service) ListItems(container string) ([]model.Item, error) {
	if _, err := s.RefreshFreshness(container); err != nil {
		return nil, err
	}
	items, err := s.store.ListItems(container)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// CreateItem validates raw form input and adds the resulting item.
// A name already present in the container leaves the stored item untouched
// and reports false.
func (s *Service) CreateItem(container, name, quantityText, expiryText string) (model.Item, bool, error) {
	item, err := validate.NewItem(name, quantityText, expiryText, s.now())
	if err != nil {
		s.logger.Debug("item rejected", "container", container, "reason", err)
		return model.Item{}, false, err
	}
	added, err := s.AddItem(container, item)
	if err != nil {
		return model.Item{}, false, err
	}
	return item, added, nil
}

// AddItem inserts item if the container has no item of that name. An item
// with a bad name, a non-positive quantity or an unknown food group is
// rejected with a *validate.Error. The item's freshness is computed here;
// any freshness it carries is ignored.
func (s *Service) AddItem(container string, item model.Item) (bool, error) {
	if err := validate.Item(item); err != nil {
		s.logger.Debug("item rejected", "container", container, "reason", err)
		return false, err
	}
	if err := s.requireContainer(container); err != nil {
		return false, err
	}
	item.ExpiryDate = model.Day(item.ExpiryDate)
	item.Freshness = tag.Wrap(s.classifier.Classify(item.ExpiryDate, s.now()))

	added, err := s.store.InsertItem(container, item)
	if err != nil {
		s.logger.Error("insert item failed", "container", container, "item", item.Name, "error", err)
		return false, fmt.Errorf("insert item: %w", err)
	}
	if !added {
		s.logger.Info("item already present, add ignored", "container", container, "item", item.Name)
		return false, nil
	}
	s.logger.Info("item added", "container", container, "item", item.Name, "quantity", item.Quantity)
	s.notify("item", "created", container, item.Name)
	return true, nil
}

// GetItem returns ErrNotFound when the item does not exist.
func (s *Service) GetItem(container, name string) (model.Item, error) {
	item, err := s.store.GetItem(container, name)
	if err != nil {
		return model.Item{}, fmt.Errorf("get item: %w", err)
	}
	if item == nil {
		return model.Item{}, ErrNotFound
	}
	return *item, nil
}

// RemoveItem deletes the item, returning ErrNotFound if it does not exist.
func (s *Service) RemoveItem(container, name string) error {
	deleted, err := s.store.DeleteItem(container, name)
	if err != nil {
		s.logger.Error("delete item failed", "container", container, "item", name, "error", err)
		return fmt.Errorf("delete item: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}
	s.logger.Info("item removed", "container", container, "item", name)
	s.notify("item", "deleted", container, name)
	return nil
}

// EditQuantity applies a raw quantity edit. Zero deletes the item, a positive
// number replaces the quantity. Invalid input is rejected with a
// *validate.Error before anything is touched.
func (s *Service) EditQuantity(container, name, input string) (validate.QuantityEdit, error) {
	edit, err := validate.Quantity(input)
	if err != nil {
		s.logger.Debug("quantity edit rejected", "container", container, "item", name, "reason", err)
		return validate.QuantityEdit{}, err
	}

	if edit.Action == validate.QuantityDelete {
		if err := s.RemoveItem(container, name); err != nil {
			return validate.QuantityEdit{}, err
		}
		return edit, nil
	}

	found, err := s.store.SetQuantity(container, name, edit.Quantity)
	if err != nil {
		s.logger.Error("set quantity failed", "container", container, "item", name, "error", err)
		return validate.QuantityEdit{}, fmt.Errorf("set quantity: %w", err)
	}
	if !found {
		return validate.QuantityEdit{}, ErrNotFound
	}
	s.logger.Info("quantity updated", "container", container, "item", name, "quantity", edit.Quantity)
	s.notify("item", "updated", container, name)
	return edit, nil
}

// UpdateFoodGroupTag assigns a food group. Values that are not members of
// model.FoodGroups are ignored and reported as false.
func (s *Service) UpdateFoodGroupTag(container, name string, value any) (bool, error) {
	var group model.FoodGroup
	switch v := value.(type) {
	case model.FoodGroup:
		group = v
	case tag.Generic[model.FoodGroup]:
		g, ok := v.Value()
		if !ok {
			return false, nil
		}
		group = g
	default:
		return false, nil
	}
	if !model.FoodGroups.Contains(group) {
		s.logger.Debug("food group ignored", "container", container, "item", name, "food_group", group)
		return false, nil
	}

	found, err := s.store.SetFoodGroupTag(container, name, group)
	if err != nil {
		s.logger.Error("set food group failed", "container", container, "item", name, "error", err)
		return false, fmt.Errorf("set food group: %w", err)
	}
	if !found {
		return false, ErrNotFound
	}
	s.logger.Info("food group updated", "container", container, "item", name, "food_group", group)
	s.notify("item", "updated", container, name)
	return true, nil
}

// SetCustomTag sets the free-form note on an item. An empty note clears it.
func (s *Service) SetCustomTag(container, name, note string) error {
	note = strings.TrimSpace(note)
	found, err := s.store.SetCustomTag(container, name, note)
	if err != nil {
		return fmt.Errorf("set custom tag: %w", err)
	}
	if !found {
		return ErrNotFound
	}
	s.logger.Info("custom tag updated", "container", container, "item", name)
	s.notify("item", "updated", container, name)
	return nil
}

// --- Freshness ---

// RefreshFreshness reclassifies every item in the container against the
// current date and returns how many tags changed.
func (s *Service) RefreshFreshness(container string) (int, error) {
	if err := s.requireContainer(container); err != nil {
		return 0, err
	}
	now := s.now()
	changed, err := s.store.BatchSetFreshness(container, func(items []model.Item) []freshness.Change {
		return s.classifier.Apply(items, now)
	})
	if err != nil {
		s.logger.Error("refresh freshness failed", "container", container, "error", err)
		return 0, fmt.Errorf("refresh freshness: %w", err)
	}
	if changed > 0 {
		s.logger.Debug("freshness refreshed", "container", container, "changed", changed)
		s.notify("container", "refreshed", container, "")
	}
	return changed, nil
}

// RefreshAll refreshes every container. It stops at the first failure.
func (s *Service) RefreshAll() (int, error) {
	names, err := s.ListContainers()
	if err != nil {
		return 0, err
	}
	total := 0
	for _, name := range names {
		n, err := s.RefreshFreshness(name)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// AllItems refreshes every container and returns all items with the name of
// the container holding them.
func (s *Service) AllItems() ([]model.ContainerItem, error) {
	names, err := s.ListContainers()
	if err != nil {
		return nil, err
	}
	var all []model.ContainerItem
	for _, name := range names {
		items, err := s.ListItems(name)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			all = append(all, model.ContainerItem{Container: name, Item: item})
		}
	}
	return all, nil
}

// Report summarizes a container by freshness after refreshing it.
type Report struct {
	Container string                  `json:"container"`
	Total     int                     `json:"total"`
	Quantity  int                     `json:"quantity"`
	Counts    map[model.Freshness]int `json:"counts"`
	Expiring  []model.Item            `json:"expiring"`
	Groups    map[model.FoodGroup]int `json:"groups"`
}

func (s *Service) Report(container string) (Report, error) {
	items, err := s.ListItems(container)
	if err != nil {
		return Report{}, err
	}
	r := Report{
		Container: container,
		Counts:    make(map[model.Freshness]int, len(model.Freshnesses.Values)),
		Groups:    make(map[model.FoodGroup]int),
	}
	for _, f := range model.Freshnesses.Values {
		r.Counts[f] = 0
	}
	for _, item := range items {
		r.Total++
		r.Quantity += item.Quantity
		f, ok := item.Freshness.Value()
		if !ok {
			continue
		}
		r.Counts[f]++
		if f != model.FreshnessFresh {
			r.Expiring = append(r.Expiring, item)
		}
		if g, ok := item.FoodGroup.Value(); ok {
			r.Groups[g]++
		}
	}
	return r, nil
}

// StorageTip returns advice for storing the named food, or "" if none.
func (s *Service) StorageTip(food string) (string, error) {
	food = strings.TrimSpace(food)
	if food == "" {
		return "", nil
	}
	tip, err := s.store.StorageTip(food)
	if err != nil {
		return "", fmt.Errorf("storage tip: %w", err)
	}
	return tip, nil
}

// IsValidation reports whether err carries a user-facing validation message.
func IsValidation(err error) bool {
	var verr *validate.Error
	return errors.As(err, &verr)
}
