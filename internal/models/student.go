package models

// Student represents a tracked student. Shared lifecycle fields (id,
// is_active) live directly on each record rather than on a base type.
type Student struct {
	ID            int64   `db:"id" json:"id"`
	StudentNumber string  `db:"student_number" json:"student_number"`
	FullName      string  `db:"full_name" json:"full_name"`
	Email         *string `db:"email" json:"email,omitempty"`
	CourseName    *string `db:"course_name" json:"course_name,omitempty"`
	YearOfStudy   *int    `db:"year_of_study" json:"year_of_study,omitempty"`
	IsActive      bool    `db:"is_active" json:"is_active"`
}

// StudentFilter scopes student list queries.
type StudentFilter struct {
	Search          string
	IncludeInactive bool
	Page            int
	PageSize        int
}
