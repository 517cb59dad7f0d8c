package models

// SubmissionRecord tracks an assignment submission per student and module.
type SubmissionRecord struct {
	ID             int64   `db:"id" json:"id"`
	StudentID      int64   `db:"student_id" json:"student_id"`
	ModuleID       int64   `db:"module_id" json:"module_id"`
	AssessmentName string  `db:"assessment_name" json:"assessment_name"`
	DueDate        *string `db:"due_date" json:"due_date,omitempty"`
	SubmittedDate  *string `db:"submitted_date" json:"submitted_date,omitempty"`
	IsSubmitted    bool    `db:"is_submitted" json:"is_submitted"`
	IsLate         bool    `db:"is_late" json:"is_late"`
	IsActive       bool    `db:"is_active" json:"is_active"`
}

// SubmissionFilter scopes submission record queries.
type SubmissionFilter struct {
	StudentID       *int64
	ModuleID        *int64
	IncludeInactive bool
}
