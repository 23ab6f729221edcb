package snapshots

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// Writer persists league snapshots and the cache manifest.
type Writer struct {
	dir string
	now func() time.Time
}

// NewWriter constructs a writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{
		dir: dir,
		now: time.Now,
	}
}

// Dir exposes the writer root path.
func (w *Writer) Dir() string {
	if w == nil {
		return ""
	}
	return w.dir
}

// Write replaces the league snapshot atomically. Readers see either the previous file or the
// new one, never a partial write. Failures are returned as *CacheWriteError.
func (w *Writer) Write(snap Snapshot) error {
	if w == nil {
		return &CacheWriteError{Err: errors.New("snapshot writer not configured")}
	}
	if snap.LeagueKey == "" {
		return &CacheWriteError{Err: errors.New("league key required")}
	}

	target := SnapshotPath(w.dir, snap.LeagueKey)
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return &CacheWriteError{Path: target, Err: err}
	}
	if err := writeFileAtomic(target, data); err != nil {
		return &CacheWriteError{Path: target, Err: err}
	}
	return nil
}

// UpdateManifest records the latest fetch for a league in manifest.json.
func (w *Writer) UpdateManifest(sportKey string, fetchedAt time.Time, events int) error {
	if w == nil {
		return errors.New("snapshot writer not configured")
	}
	path := ManifestPath(w.dir)
	m, _ := readManifest(path)
	if m.Leagues == nil {
		m.Leagues = make(map[string]LeagueEntry)
	}
	m.Leagues[sportKey] = LeagueEntry{
		File:      filepath.Base(SnapshotPath(w.dir, sportKey)),
		FetchedAt: fetchedAt.UTC(),
		Events:    events,
	}
	m.GeneratedAt = w.now().UTC()
	return writeManifest(path, m)
}

// writeFileAtomic writes data to a temp file in the target directory, syncs it and renames
// it over target.
func writeFileAtomic(target string, data []byte) (err error) {
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, target)
}
