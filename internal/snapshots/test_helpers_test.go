package snapshots

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/preston-bernstein/bestlines/internal/testutil"
)

const nflKey = "americanfootball_nfl"

var fetchedAt = time.Date(2024, 9, 8, 12, 0, 0, 0, time.UTC)

func sampleSnapshot(sportKey string) Snapshot {
	return Snapshot{
		LeagueKey: sportKey,
		FetchedAt: fetchedAt,
		Payload:   testutil.SamplePayload(sportKey),
	}
}

func writeRaw(t *testing.T, dir, sportKey, content string) string {
	t.Helper()
	path := SnapshotPath(dir, sportKey)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write raw snapshot: %v", err)
	}
	return path
}

func requireNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	if err != nil {
		t.Fatalf("glob failed: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("expected no temp files, found %v", matches)
	}
}
