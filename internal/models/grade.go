package models

// Grade stores an assessment grade on a 0-100 scale.
type Grade struct {
	ID             int64    `db:"id" json:"id"`
	StudentID      int64    `db:"student_id" json:"student_id"`
	ModuleID       int64    `db:"module_id" json:"module_id"`
	AssessmentName string   `db:"assessment_name" json:"assessment_name"`
	Grade          *float64 `db:"grade" json:"grade,omitempty"`
	IsActive       bool     `db:"is_active" json:"is_active"`
}

// GradeFilter scopes grade queries.
type GradeFilter struct {
	StudentID       *int64
	ModuleID        *int64
	IncludeInactive bool
}
