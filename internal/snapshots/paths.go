package snapshots

import "path/filepath"

const (
	snapshotSuffix       = "_cache.json"
	legacySnapshotSuffix = "_arb_data_cache.json"
	manifestFileName     = "manifest.json"
)

// SnapshotPath builds the path to a league's cached payload.
func SnapshotPath(dir, sportKey string) string {
	return filepath.Join(dir, sportKey+snapshotSuffix)
}

// LegacySnapshotPath is where earlier releases kept a league's payload as a bare event array.
// It is only read, never written.
func LegacySnapshotPath(dir, sportKey string) string {
	return filepath.Join(dir, sportKey+legacySnapshotSuffix)
}

// ManifestPath builds the path to the cache manifest.
func ManifestPath(dir string) string {
	return filepath.Join(dir, manifestFileName)
}
