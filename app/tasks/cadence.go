package tasks

import "time"

// ShouldSync reports whether a feed synchronization is due. A feed that
// has never been synchronized is always due; otherwise at least
// minimumInterval must have passed since the last run.
func ShouldSync(lastSyncedAt *time.Time, minimumInterval time.Duration, now time.Time) bool {
	if lastSyncedAt == nil {
		return true
	}
	return !now.Before(lastSyncedAt.Add(minimumInterval))
}
