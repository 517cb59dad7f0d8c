package models

import "time"

// SurveyResponse is one weekly wellbeing survey entry. ModuleID is nullable:
// a response may concern the student's overall week rather than one module.
type SurveyResponse struct {
	ID          int64      `db:"id" json:"id"`
	StudentID   int64      `db:"student_id" json:"student_id"`
	ModuleID    *int64     `db:"module_id" json:"module_id,omitempty"`
	WeekNumber  int        `db:"week_number" json:"week_number"`
	StressLevel int        `db:"stress_level" json:"stress_level"`
	HoursSlept  *float64   `db:"hours_slept" json:"hours_slept,omitempty"`
	MoodComment *string    `db:"mood_comment" json:"mood_comment,omitempty"`
	CreatedAt   *time.Time `db:"created_at" json:"created_at,omitempty"`
	IsActive    bool       `db:"is_active" json:"is_active"`
}

// SurveyFilter scopes survey response queries.
type SurveyFilter struct {
	StudentID       *int64
	ModuleID        *int64
	WeekNumber      *int
	IncludeInactive bool
}
