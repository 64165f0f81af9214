package config

import (
	"os"
	"strconv"
)

const (
	workdayStartHourEnv   = "WORKDAY_START_HOUR"
	workdayEndHourEnv     = "WORKDAY_END_HOUR"
	suggestHorizonDaysEnv = "SUGGEST_HORIZON_DAYS"

	defaultWorkdayStartHour   = 9
	defaultWorkdayEndHour     = 17
	defaultSuggestHorizonDays = 14
)

// SchedulerConfig bounds slot placement: the daily working-hour window
// and the search horizon for single-task suggestions.
type SchedulerConfig struct {
	WorkdayStartHour   int
	WorkdayEndHour     int
	SuggestHorizonDays int
}

func LoadSchedulerConfig() *SchedulerConfig {
	startHour := defaultWorkdayStartHour
	if v := os.Getenv(workdayStartHourEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed < 24 {
			startHour = parsed
		}
	}

	endHour := defaultWorkdayEndHour
	if v := os.Getenv(workdayEndHourEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= 24 {
			endHour = parsed
		}
	}

	horizonDays := defaultSuggestHorizonDays
	if v := os.Getenv(suggestHorizonDaysEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			horizonDays = parsed
		}
	}

	return &SchedulerConfig{
		WorkdayStartHour:   startHour,
		WorkdayEndHour:     endHour,
		SuggestHorizonDays: horizonDays,
	}
}

func (c *SchedulerConfig) Validate() error {
	if c == nil {
		return ErrInvalidWorkingHours
	}
	if c.WorkdayStartHour >= c.WorkdayEndHour {
		return ErrInvalidWorkingHours
	}
	return nil
}
