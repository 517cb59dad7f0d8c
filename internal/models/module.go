package models

// Module represents a taught module.
type Module struct {
	ID           int64   `db:"id" json:"id"`
	ModuleCode   string  `db:"module_code" json:"module_code"`
	ModuleTitle  string  `db:"module_title" json:"module_title"`
	Credit       *int    `db:"credit" json:"credit,omitempty"`
	AcademicYear *string `db:"academic_year" json:"academic_year,omitempty"`
	IsActive     bool    `db:"is_active" json:"is_active"`
}

// Enrolment links a student to a module.
type Enrolment struct {
	ID        int64   `db:"id" json:"id"`
	StudentID int64   `db:"student_id" json:"student_id"`
	ModuleID  int64   `db:"module_id" json:"module_id"`
	EnrolDate *string `db:"enrol_date" json:"enrol_date,omitempty"`
	IsActive  bool    `db:"is_active" json:"is_active"`
}
