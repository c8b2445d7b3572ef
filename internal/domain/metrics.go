package domain

import "time"

// DailyMetrics is the per-site, per-calendar-day status row.
type DailyMetrics struct {
	SiteKey      string
	Date         time.Time
	Steps        int
	EntryCount   int
	CurrentMusic string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// MetricsUpdate carries the fields to write on upsert. Nil fields are left
// untouched on an existing row and default to zero values on insert.
type MetricsUpdate struct {
	Steps        *int
	EntryCount   *int
	CurrentMusic *string
}

// IsEmpty reports whether no field is set.
func (u MetricsUpdate) IsEmpty() bool {
	return u.Steps == nil && u.EntryCount == nil && u.CurrentMusic == nil
}
