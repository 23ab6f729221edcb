package snapshots

import (
	"time"

	"github.com/preston-bernstein/bestlines/internal/domain/odds"
)

// Snapshot is the on-disk form of one league's last fetched payload.
type Snapshot struct {
	LeagueKey string       `json:"league_key"`
	FetchedAt time.Time    `json:"fetched_at"`
	Payload   odds.Payload `json:"payload"`
}

// Age reports how old the snapshot is. Zero when fetched_at is unknown.
func (s Snapshot) Age(now time.Time) time.Duration {
	if s.FetchedAt.IsZero() {
		return 0
	}
	return now.Sub(s.FetchedAt)
}
