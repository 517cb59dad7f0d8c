package models

// AttendanceRecord captures weekly attendance per student and module.
// attendance_rate is stored as a fraction in [0,1].
type AttendanceRecord struct {
	ID               int64    `db:"id" json:"id"`
	StudentID        int64    `db:"student_id" json:"student_id"`
	ModuleID         int64    `db:"module_id" json:"module_id"`
	WeekNumber       int      `db:"week_number" json:"week_number"`
	AttendedSessions *int     `db:"attended_sessions" json:"attended_sessions,omitempty"`
	TotalSessions    *int     `db:"total_sessions" json:"total_sessions,omitempty"`
	AttendanceRate   *float64 `db:"attendance_rate" json:"attendance_rate,omitempty"`
	IsActive         bool     `db:"is_active" json:"is_active"`
}

// AttendanceFilter scopes attendance record queries.
type AttendanceFilter struct {
	StudentID       *int64
	ModuleID        *int64
	WeekNumber      *int
	IncludeInactive bool
}
