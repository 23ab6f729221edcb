package snapshots

import (
	"encoding/json"
	"os"
	"time"
)

const manifestVersion = 1

// Manifest tracks which leagues are cached and when they were fetched.
type Manifest struct {
	Version     int                    `json:"version"`
	GeneratedAt time.Time              `json:"generatedAt"`
	Leagues     map[string]LeagueEntry `json:"leagues"`
}

// LeagueEntry describes one cached league.
type LeagueEntry struct {
	File      string    `json:"file"`
	FetchedAt time.Time `json:"fetchedAt"`
	Events    int       `json:"events"`
}

func defaultManifest() Manifest {
	return Manifest{
		Version: manifestVersion,
		Leagues: map[string]LeagueEntry{},
	}
}

func readManifest(path string) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return defaultManifest(), err
	}
	defer f.Close()
	var m Manifest
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return defaultManifest(), err
	}
	if m.Version == 0 {
		m.Version = manifestVersion
	}
	return m, nil
}

// ReadManifest loads the manifest from dir. A missing or unreadable manifest yields an empty one
// alongside the error.
func ReadManifest(dir string) (Manifest, error) {
	return readManifest(ManifestPath(dir))
}

func writeManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data)
}
