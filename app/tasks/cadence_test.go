package tasks

import (
	"testing"
	"time"
)

func TestShouldSync(t *testing.T) {
	now := time.Date(2011, 7, 24, 12, 0, 0, 0, time.UTC)
	interval := 12 * time.Hour

	tests := []struct {
		name         string
		lastSyncedAt *time.Time
		expected     bool
	}{
		{
			name:         "never synced",
			lastSyncedAt: nil,
			expected:     true,
		},
		{
			name:         "just synced",
			lastSyncedAt: timePtr(now.Add(-time.Minute)),
			expected:     false,
		},
		{
			name:         "exactly at the interval",
			lastSyncedAt: timePtr(now.Add(-interval)),
			expected:     true,
		},
		{
			name:         "well past the interval",
			lastSyncedAt: timePtr(now.Add(-24 * time.Hour)),
			expected:     true,
		},
		{
			name:         "one second short",
			lastSyncedAt: timePtr(now.Add(-interval + time.Second)),
			expected:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldSync(tt.lastSyncedAt, interval, now); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}
