package models

import "time"

// Alert is a materialized high-stress warning. Rows are written only by the
// alert materializer; week_number is the later week of the triggering pair.
type Alert struct {
	ID         int64     `db:"id" json:"id"`
	StudentID  int64     `db:"student_id" json:"student_id"`
	ModuleID   *int64    `db:"module_id" json:"module_id,omitempty"`
	WeekNumber int       `db:"week_number" json:"week_number"`
	Reason     string    `db:"reason" json:"reason"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	Resolved   bool      `db:"resolved" json:"resolved"`
	IsActive   bool      `db:"is_active" json:"is_active"`
}

// AlertFilter scopes alert list queries.
type AlertFilter struct {
	StudentID       *int64
	ModuleID        *int64
	Resolved        *bool
	IncludeInactive bool
}
