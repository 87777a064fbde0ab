package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dukerupert/pantry/internal/freshness"
	"github.com/dukerupert/pantry/internal/model"
	"github.com/dukerupert/pantry/internal/tag"
)

// InventoryStore keeps containers and items in SQLite. Tags are stored by
// display name and read back through their domain, so a value no domain
// recognizes surfaces as a *tag.UnknownTagError.
type InventoryStore struct {
	db *sql.DB
}

func NewInventoryStore(db *sql.DB) *InventoryStore {
	return &InventoryStore{db: db}
}

// --- Container methods ---

func (s *InventoryStore) ListContainers() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM containers ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list containers: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan container: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *InventoryStore) ContainerExists(name string) (bool, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM containers WHERE name = ?`, name).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("container exists: %w", err)
	}
	return n > 0, nil
}

func (s *InventoryStore) CreateContainer(name string) error {
	_, err := s.db.Exec(`INSERT INTO containers (name) VALUES (?)`, name)
	if err != nil {
		return fmt.Errorf("insert container: %w", err)
	}
	return nil
}

// RenameContainer keeps the container's identity, so its items follow it.
func (s *InventoryStore) RenameContainer(oldName, newName string) error {
	_, err := s.db.Exec(`UPDATE containers SET name = ? WHERE name = ?`, newName, oldName)
	if err != nil {
		return fmt.Errorf("rename container: %w", err)
	}
	return nil
}

func (s *InventoryStore) DeleteContainer(name string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM items WHERE container_id = (SELECT id FROM containers WHERE name = ?)`, name); err != nil {
		return fmt.Errorf("delete container items: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM containers WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete container: %w", err)
	}
	return tx.Commit()
}

func (s *InventoryStore) EmptyContainer(name string) (int64, error) {
	result, err := s.db.Exec(`DELETE FROM items WHERE container_id = (SELECT id FROM containers WHERE name = ?)`, name)
	if err != nil {
		return 0, fmt.Errorf("empty container: %w", err)
	}
	return result.RowsAffected()
}

// --- Item methods ---

func scanItem(scanner interface{ Scan(...any) error }) (*model.Item, error) {
	var item model.Item
	var expiry string
	var foodGroup, freshness sql.NullString

	err := scanner.Scan(&item.Name, &item.Quantity, &expiry, &foodGroup, &freshness, &item.CustomTag)
	if err != nil {
		return nil, err
	}

	item.ExpiryDate, err = time.Parse(model.DateLayout, expiry)
	if err != nil {
		return nil, fmt.Errorf("parse expiry date %q: %w", expiry, err)
	}
	if foodGroup.Valid {
		item.FoodGroup, err = tag.FromDisplayName(model.FoodGroups, foodGroup.String)
		if err != nil {
			return nil, err
		}
	}
	if freshness.Valid {
		item.Freshness, err = tag.FromDisplayName(model.Freshnesses, freshness.String)
		if err != nil {
			return nil, err
		}
	}
	return &item, nil
}

const itemCols = `i.name, i.quantity, i.expiry_date, i.food_group, i.freshness, i.custom_tag`

const containerID = `(SELECT id FROM containers WHERE name = ?)`

type storedTag interface {
	IsSet() bool
	String() string
}

func nullTag(g storedTag) sql.NullString {
	if !g.IsSet() {
		return sql.NullString{}
	}
	return sql.NullString{String: g.String(), Valid: true}
}

func (s *InventoryStore) ListItems(container string) ([]model.Item, error) {
	rows, err := s.db.Query(
		`SELECT `+itemCols+` FROM items i JOIN containers c ON c.id = i.container_id WHERE c.name = ? ORDER BY i.name ASC`,
		container,
	)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (s *InventoryStore) GetItem(container, name string) (*model.Item, error) {
	row := s.db.QueryRow(
		`SELECT `+itemCols+` FROM items i JOIN containers c ON c.id = i.container_id WHERE c.name = ? AND i.name = ?`,
		container, name,
	)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

func (s *InventoryStore) InsertItem(container string, item model.Item) (bool, error) {
	result, err := s.db.Exec(
		`INSERT INTO items (container_id, name, quantity, expiry_date, food_group, freshness, custom_tag)
		 SELECT id, ?, ?, ?, ?, ?, ? FROM containers WHERE name = ?
		 ON CONFLICT (container_id, name) DO NOTHING`,
		item.Name, item.Quantity, item.ExpiryDate.Format(model.DateLayout),
		nullTag(item.FoodGroup), nullTag(item.Freshness), item.CustomTag, container,
	)
	if err != nil {
		return false, fmt.Errorf("insert item: %w", err)
	}
	return affected(result)
}

func (s *InventoryStore) DeleteItem(container, name string) (bool, error) {
	result, err := s.db.Exec(`DELETE FROM items WHERE container_id = `+containerID+` AND name = ?`, container, name)
	if err != nil {
		return false, fmt.Errorf("delete item: %w", err)
	}
	return affected(result)
}

func (s *InventoryStore) SetFoodGroupTag(container, name string, group model.FoodGroup) (bool, error) {
	return s.updateItem("food_group", group.DisplayName(), container, name)
}

func (s *InventoryStore) SetFreshnessTag(container, name string, f model.Freshness) (bool, error) {
	return s.updateItem("freshness", f.DisplayName(), container, name)
}

func (s *InventoryStore) SetCustomTag(container, name, note string) (bool, error) {
	return s.updateItem("custom_tag", note, container, name)
}

func (s *InventoryStore) SetQuantity(container, name string, quantity int) (bool, error) {
	return s.updateItem("quantity", quantity, container, name)
}

// updateItem sets one column. col is always a constant from this file.
func (s *InventoryStore) updateItem(col string, value any, container, name string) (bool, error) {
	result, err := s.db.Exec(
		`UPDATE items SET `+col+` = ?, updated_at = CURRENT_TIMESTAMP WHERE container_id = `+containerID+` AND name = ?`,
		value, container, name,
	)
	if err != nil {
		return false, fmt.Errorf("update item %s: %w", col, err)
	}
	return affected(result)
}

func affected(result sql.Result) (bool, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// BatchSetFreshness loads the container's items in one transaction, passes
// them to apply, and writes back the freshness of every item whose Change
// reports a difference.
func (s *InventoryStore) BatchSetFreshness(container string, apply func([]model.Item) []freshness.Change) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.Query(
		`SELECT `+itemCols+` FROM items i JOIN containers c ON c.id = i.container_id WHERE c.name = ?`,
		container,
	)
	if err != nil {
		return 0, fmt.Errorf("select items: %w", err)
	}
	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			rows.Close()
			return 0, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, err
	}
	rows.Close()

	changed := 0
	for _, ch := range apply(items) {
		if !ch.Changed() {
			continue
		}
		if _, err := tx.Exec(
			`UPDATE items SET freshness = ?, updated_at = CURRENT_TIMESTAMP WHERE container_id = `+containerID+` AND name = ?`,
			ch.Current.DisplayName(), container, ch.Name,
		); err != nil {
			return 0, fmt.Errorf("update freshness: %w", err)
		}
		changed++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit freshness: %w", err)
	}
	return changed, nil
}

// --- Storage tips ---

// StorageTip returns "" when no tip exists for food.
func (s *InventoryStore) StorageTip(food string) (string, error) {
	var tip string
	err := s.db.QueryRow(`SELECT tip FROM storage_tips WHERE food = ?`, food).Scan(&tip)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get storage tip: %w", err)
	}
	return tip, nil
}
