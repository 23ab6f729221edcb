package snapshots

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"

	"github.com/preston-bernstein/bestlines/internal/domain/odds"
)

// FSStore loads league snapshots from the filesystem.
type FSStore struct {
	dir string
}

// NewFSStore constructs an FS-backed snapshot store rooted at dir.
func NewFSStore(dir string) *FSStore {
	return &FSStore{dir: dir}
}

// Load reads {dir}/{sportKey}_cache.json, falling back to {dir}/{sportKey}_arb_data_cache.json
// written by earlier releases. A missing file returns an error satisfying
// errors.Is(err, os.ErrNotExist); unusable content returns *CacheCorruptError.
// Files holding a bare event array load with a zero FetchedAt.
func (s *FSStore) Load(sportKey string) (Snapshot, error) {
	if s == nil {
		return Snapshot{}, errors.New("snapshot store not configured")
	}
	if sportKey == "" {
		return Snapshot{}, errors.New("sport key required")
	}

	path := SnapshotPath(s.dir, sportKey)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		legacy := LegacySnapshotPath(s.dir, sportKey)
		if legacyData, legacyErr := os.ReadFile(legacy); legacyErr == nil {
			path, data, err = legacy, legacyData, nil
		}
	}
	if err != nil {
		return Snapshot{}, err
	}
	return decodeSnapshot(path, sportKey, data)
}

func decodeSnapshot(path, sportKey string, data []byte) (Snapshot, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Snapshot{}, &CacheCorruptError{Path: path, Reason: "empty file"}
	}

	if trimmed[0] == '[' {
		var payload odds.Payload
		if err := json.Unmarshal(trimmed, &payload); err != nil {
			return Snapshot{}, &CacheCorruptError{Path: path, Reason: "undecodable payload", Err: err}
		}
		return Snapshot{LeagueKey: sportKey, Payload: payload}, nil
	}

	var snap Snapshot
	if err := json.Unmarshal(trimmed, &snap); err != nil {
		return Snapshot{}, &CacheCorruptError{Path: path, Reason: "undecodable snapshot", Err: err}
	}
	if snap.LeagueKey != sportKey {
		return Snapshot{}, &CacheCorruptError{Path: path, Reason: "league key mismatch: " + snap.LeagueKey}
	}
	if snap.Payload == nil {
		return Snapshot{}, &CacheCorruptError{Path: path, Reason: "missing payload"}
	}
	return snap, nil
}
