package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--db", dbPath}, args...))
	err := root.Execute()
	return out.String(), err
}

func tempDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "pantry.db")
}

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2-Jan-2006")
}

func TestVersion(t *testing.T) {
	out, err := run(t, tempDB(t), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "pantry "+Version)
}

func TestContainerCommands(t *testing.T) {
	db := tempDB(t)

	_, err := run(t, db, "container", "create", "Fridge")
	require.NoError(t, err)
	_, err = run(t, db, "container", "create", "Freezer")
	require.NoError(t, err)

	_, err = run(t, db, "container", "create", "Fridge")
	assert.Error(t, err, "duplicate container")

	out, err := run(t, db, "container", "list")
	require.NoError(t, err)
	assert.Equal(t, "Freezer\nFridge\n", out)

	_, err = run(t, db, "container", "rename", "Fridge", "Cooler")
	require.NoError(t, err)

	out, err = run(t, db, "--json", "container", "list")
	require.NoError(t, err)
	var names []string
	require.NoError(t, json.Unmarshal([]byte(out), &names))
	assert.Equal(t, []string{"Cooler", "Freezer"}, names)

	_, err = run(t, db, "container", "delete", "Cooler")
	require.NoError(t, err)
	_, err = run(t, db, "container", "delete", "Cooler")
	assert.Error(t, err)
}

func TestItemLifecycle(t *testing.T) {
	db := tempDB(t)
	_, err := run(t, db, "container", "create", "Fridge")
	require.NoError(t, err)

	out, err := run(t, db, "item", "add", "Fridge", "Milk", "2", futureDate(30))
	require.NoError(t, err)
	assert.Contains(t, out, "Added 2 x Milk")
	assert.Contains(t, out, "Dairy")

	out, err = run(t, db, "item", "add", "Fridge", "Milk", "5", futureDate(3))
	require.NoError(t, err)
	assert.Contains(t, out, "already in")

	out, err = run(t, db, "--json", "item", "list", "Fridge")
	require.NoError(t, err)
	var items []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Milk", items[0]["name"])
	assert.EqualValues(t, 2, items[0]["quantity"])
	assert.Equal(t, "Fresh", items[0]["freshness"])

	_, err = run(t, db, "item", "group", "Fridge", "Milk", "Dairy")
	require.NoError(t, err)
	_, err = run(t, db, "item", "note", "Fridge", "Milk", "opened")
	require.NoError(t, err)

	out, err = run(t, db, "item", "qty", "Fridge", "Milk", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "quantity 4")

	out, err = run(t, db, "item", "list", "Fridge")
	require.NoError(t, err)
	assert.Contains(t, out, "Milk")
	assert.Contains(t, out, "opened")

	out, err = run(t, db, "item", "qty", "Fridge", "Milk", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed")

	out, err = run(t, db, "--json", "item", "list", "Fridge")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)
}

func TestItemValidationErrors(t *testing.T) {
	db := tempDB(t)
	_, err := run(t, db, "container", "create", "Pantry")
	require.NoError(t, err)

	_, err = run(t, db, "item", "add", "Pantry", "Rice", "abc", futureDate(10))
	assert.Error(t, err)

	_, err = run(t, db, "item", "add", "Nowhere", "Rice", "1", futureDate(10))
	assert.Error(t, err)

	_, err = run(t, db, "item", "group", "Pantry", "Rice", "Mystery")
	assert.Error(t, err)

	_, err = run(t, db, "item", "remove", "Pantry", "Ghost")
	assert.Error(t, err)
}

func TestReportAndRefresh(t *testing.T) {
	db := tempDB(t)
	_, err := run(t, db, "container", "create", "Fridge")
	require.NoError(t, err)
	_, err = run(t, db, "item", "add", "Fridge", "Yogurt", "1", futureDate(2))
	require.NoError(t, err)
	_, err = run(t, db, "item", "add", "Fridge", "Cheese", "1", futureDate(60))
	require.NoError(t, err)

	out, err := run(t, db, "refresh")
	require.NoError(t, err)
	assert.Contains(t, out, "0 items changed")

	out, err = run(t, db, "--json", "report", "Fridge")
	require.NoError(t, err)
	var r struct {
		Total  int            `json:"total"`
		Counts map[string]int `json:"counts"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, 2, r.Total)
	assert.Equal(t, 1, r.Counts["Fresh"])
	assert.Equal(t, 1, r.Counts["Near Expiry"])

	out, err = run(t, db, "report", "Fridge")
	require.NoError(t, err)
	assert.Contains(t, out, "Use soon:")
	assert.Contains(t, out, "Yogurt")
}

func TestTip(t *testing.T) {
	db := tempDB(t)

	out, err := run(t, db, "tip", "milk")
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	_, err = run(t, db, "tip", "dragonfruit")
	assert.Error(t, err)
}

func TestSuggest(t *testing.T) {
	out, err := run(t, tempDB(t), "item", "suggest", "Bananas")
	require.NoError(t, err)
	assert.Equal(t, "Fruits\n", out)
}

func TestBackupAndRestore(t *testing.T) {
	db := tempDB(t)
	dir := filepath.Join(t.TempDir(), "backups")
	t.Setenv("PANTRY_BACKUP_DIR", dir)
	t.Setenv("PANTRY_BACKUP_PASSPHRASE", "correct horse")

	_, err := run(t, db, "container", "create", "Fridge")
	require.NoError(t, err)
	_, err = run(t, db, "backup")
	require.NoError(t, err)

	out, err := run(t, db, "--json", "backup", "list")
	require.NoError(t, err)
	var infos []struct {
		Path string `json:"path"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	require.Len(t, infos, 1)

	_, err = run(t, db, "container", "delete", "Fridge")
	require.NoError(t, err)

	_, err = run(t, db, "restore", infos[0].Path)
	require.NoError(t, err)

	out, err = run(t, db, "container", "list")
	require.NoError(t, err)
	assert.Equal(t, "Fridge\n", out)
}

func TestBackupRequiresPassphrase(t *testing.T) {
	db := tempDB(t)
	t.Setenv("PANTRY_BACKUP_DIR", t.TempDir())
	t.Setenv("PANTRY_BACKUP_PASSPHRASE", "")

	_, err := run(t, db, "backup")
	assert.Error(t, err)
}
