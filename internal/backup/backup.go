// Package backup writes encrypted snapshots of the inventory database and
// restores them.
package backup

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const (
	filePrefix = "pantry-"
	fileSuffix = ".db.enc"
	stampFmt   = "20060102T150405.000Z"

	// writeAttempts bounds how many later stamps Snapshot tries when a
	// snapshot with the same name already exists.
	writeAttempts = 1000
)

var ErrNoPassphrase = errors.New("backup passphrase is required")

// Info describes one snapshot file.
type Info struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
	SizeBytes int64     `json:"size_bytes"`
}

type Manager struct {
	db     *sql.DB
	dir    string
	logger *slog.Logger
	now    func() time.Time
}

func NewManager(db *sql.DB, dir string, logger *slog.Logger) *Manager {
	return &Manager{
		db:     db,
		dir:    dir,
		logger: logger.With("component", "backup"),
		now:    time.Now,
	}
}

// Snapshot copies the live database with VACUUM INTO, encrypts the copy,
// and writes it to the backup directory. It returns the snapshot's path.
func (m *Manager) Snapshot(ctx context.Context, passphrase string) (string, error) {
	if passphrase == "" {
		return "", ErrNoPassphrase
	}
	if err := os.MkdirAll(m.dir, 0o700); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	tmpDir, err := os.MkdirTemp("", "pantry-backup-")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	plainPath := filepath.Join(tmpDir, "snapshot.db")
	if _, err := m.db.ExecContext(ctx, `VACUUM INTO ?`, plainPath); err != nil {
		return "", fmt.Errorf("vacuum into: %w", err)
	}
	plaintext, err := os.ReadFile(plainPath)
	if err != nil {
		return "", fmt.Errorf("read snapshot: %w", err)
	}

	salt, err := GenerateSalt()
	if err != nil {
		return "", err
	}
	sealed, err := Encrypt(plaintext, passphrase, salt)
	if err != nil {
		return "", fmt.Errorf("encrypt snapshot: %w", err)
	}

	path, err := m.writeNew(sealed)
	if err != nil {
		return "", err
	}

	m.logger.Info("snapshot written", "path", path, "bytes", len(sealed))
	return path, nil
}

// writeNew writes data under a timestamped name that does not exist yet.
// On a clash it moves the stamp forward one millisecond and tries again.
func (m *Manager) writeNew(data []byte) (string, error) {
	stamp := m.now().UTC()
	for range writeAttempts {
		path := filepath.Join(m.dir, filePrefix+stamp.Format(stampFmt)+fileSuffix)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
		if errors.Is(err, os.ErrExist) {
			stamp = stamp.Add(time.Millisecond)
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create snapshot: %w", err)
		}
		if _, err := f.Write(data); err != nil {
			f.Close()
			os.Remove(path)
			return "", fmt.Errorf("write snapshot: %w", err)
		}
		if err := f.Close(); err != nil {
			os.Remove(path)
			return "", fmt.Errorf("close snapshot: %w", err)
		}
		return path, nil
	}
	return "", fmt.Errorf("write snapshot: no free name after %d attempts", writeAttempts)
}

// List returns the snapshots in the backup directory, newest first.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read backup dir: %w", err)
	}

	var infos []Info
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		stamp := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix)
		created, err := time.Parse(stampFmt, stamp)
		if err != nil {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", name, err)
		}
		infos = append(infos, Info{
			Name:      name,
			Path:      filepath.Join(m.dir, name),
			CreatedAt: created,
			SizeBytes: fi.Size(),
		})
	}
	slices.SortFunc(infos, func(a, b Info) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return infos, nil
}

// Prune keeps the newest keep snapshots and deletes the rest.
func (m *Manager) Prune(keep int) (int, error) {
	infos, err := m.List()
	if err != nil {
		return 0, err
	}
	if keep < 0 {
		keep = 0
	}
	removed := 0
	for _, info := range infos[min(keep, len(infos)):] {
		if err := os.Remove(info.Path); err != nil {
			return removed, fmt.Errorf("remove %s: %w", info.Name, err)
		}
		removed++
	}
	if removed > 0 {
		m.logger.Info("old snapshots pruned", "removed", removed)
	}
	return removed, nil
}

// Restore decrypts srcPath, checks it is an intact inventory database, and
// replaces the file at dbPath. The database must not be open while this runs.
func Restore(ctx context.Context, srcPath, dbPath, passphrase string) error {
	if passphrase == "" {
		return ErrNoPassphrase
	}
	sealed, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	plaintext, err := Decrypt(sealed, passphrase)
	if err != nil {
		return fmt.Errorf("decrypt snapshot: %w", err)
	}

	tmpPath := dbPath + ".restore"
	if err := os.WriteFile(tmpPath, plaintext, 0o600); err != nil {
		return fmt.Errorf("write restored db: %w", err)
	}
	defer os.Remove(tmpPath)

	if err := verify(ctx, tmpPath); err != nil {
		return err
	}

	if err := os.Rename(tmpPath, dbPath); err != nil {
		return fmt.Errorf("replace database: %w", err)
	}
	os.Remove(dbPath + "-wal")
	os.Remove(dbPath + "-shm")
	return nil
}

func verify(ctx context.Context, path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open restored db: %w", err)
	}
	defer db.Close()

	var integrity string
	if err := db.QueryRowContext(ctx, "PRAGMA integrity_check").Scan(&integrity); err != nil {
		return fmt.Errorf("integrity check: %w", err)
	}
	if integrity != "ok" {
		return fmt.Errorf("integrity check failed: %s", integrity)
	}

	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('containers', 'items')`).Scan(&n); err != nil {
		return fmt.Errorf("check schema: %w", err)
	}
	if n != 2 {
		return fmt.Errorf("snapshot is not an inventory database")
	}
	return nil
}
