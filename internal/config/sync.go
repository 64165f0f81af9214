package config

import (
	"os"
	"strconv"
)

const (
	calendarSyncURLEnv     = "CALENDAR_SYNC_URL"
	calendarSyncTimeoutEnv = "CALENDAR_SYNC_TIMEOUT_SECONDS"

	defaultCalendarSyncTimeout = 15
)

// SyncConfig configures the calendar sync collaborator. When the URL is
// empty, sync is disabled and plans stay local to this service.
type SyncConfig struct {
	CalendarSyncURL string
	TimeoutSeconds  int
}

func (c *SyncConfig) Enabled() bool {
	return c != nil && c.CalendarSyncURL != ""
}

func LoadSyncConfig() *SyncConfig {
	timeout := defaultCalendarSyncTimeout
	if v := os.Getenv(calendarSyncTimeoutEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			timeout = parsed
		}
	}

	return &SyncConfig{
		CalendarSyncURL: os.Getenv(calendarSyncURLEnv),
		TimeoutSeconds:  timeout,
	}
}
