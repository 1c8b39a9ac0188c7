// Package streak implements the consecutive-day check-in engine.
//
// All calculations are pure: they take the current progress record, the
// current time and a Params instance, and return an updated copy. Callers
// are responsible for persisting the result. Day boundaries follow the
// timezone configured in Params, never the implicit OS default.
package streak

import (
	"fmt"
	"time"
)

// Params defines all configurable parameters for the streak engine.
type Params struct {
	// HistoryLimit bounds the rolling activity history. Once the history
	// exceeds this many entries the oldest are evicted first.
	HistoryLimit int

	// RecentWindow is how many of the newest history entries a status
	// query returns.
	RecentWindow int

	// Location is the timezone used to normalize timestamps to calendar
	// days. A check-in at 23:59 and one at 00:01 the next day count as
	// different days in this location.
	Location *time.Location
}

// ParamsConfig allows overriding the default parameters when creating a new Params instance.
type ParamsConfig struct {
	HistoryLimit int
	RecentWindow int

	// Timezone is an IANA timezone name (e.g. "Asia/Kolkata").
	// Empty means UTC.
	Timezone string
}

// NewDefaultParams creates a new Params instance with default values:
// a 30-entry history, a 7-day status window, and UTC day boundaries.
func NewDefaultParams() *Params {
	return &Params{
		HistoryLimit: 30,
		RecentWindow: 7,
		Location:     time.UTC,
	}
}

// NewParams creates a new Params instance with custom configuration.
// Returns an error if the timezone name cannot be resolved.
func NewParams(config ParamsConfig) (*Params, error) {
	params := NewDefaultParams()

	if config.HistoryLimit > 0 {
		params.HistoryLimit = config.HistoryLimit
	}
	if config.RecentWindow > 0 {
		params.RecentWindow = config.RecentWindow
	}
	if config.Timezone != "" {
		loc, err := time.LoadLocation(config.Timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid streak timezone %q: %w", config.Timezone, err)
		}
		params.Location = loc
	}

	return params, nil
}
