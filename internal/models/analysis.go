package models

import "time"

// TrendFilter scopes trend and attendance analysis reads.
type TrendFilter struct {
	ModuleID        *int64
	IncludeInactive bool
}

// StressTrendPoint is one step of a student's weekly stress curve.
type StressTrendPoint struct {
	WeekNumber  int        `db:"week_number" json:"week_number"`
	StressLevel int        `db:"stress_level" json:"stress_level"`
	CreatedAt   *time.Time `db:"created_at" json:"created_at,omitempty"`
}

// StudentAttendanceAverage is the mean attendance_rate for one student.
type StudentAttendanceAverage struct {
	StudentID             int64   `db:"student_id" json:"student_id"`
	AverageAttendanceRate float64 `db:"average_attendance_rate" json:"average_attendance_rate"`
}

// ModuleComparisonFilter scopes the cross-module stress/grade comparison.
type ModuleComparisonFilter struct {
	ModuleIDs       []int64
	IncludeInactive bool
}

// StressGradeAggregate carries the per-module aggregate sums the correlation
// is derived from.
type StressGradeAggregate struct {
	ModuleID   int64   `db:"module_id"`
	SampleSize int     `db:"sample_size"`
	AvgStress  float64 `db:"avg_stress"`
	AvgGrade   float64 `db:"avg_grade"`
	SumXY      float64 `db:"sum_xy"`
	SumX2      float64 `db:"sum_x2"`
	SumY2      float64 `db:"sum_y2"`
}

// ModuleStressGradeComparison is one row of the module comparison result.
// PearsonCorr is nil when the sample is too small or has zero variance.
type ModuleStressGradeComparison struct {
	ModuleID           int64    `json:"module_id"`
	AverageStressLevel float64  `json:"average_stress_level"`
	AverageGrade       float64  `json:"average_grade"`
	SampleSize         int      `json:"sample_size"`
	PearsonCorr        *float64 `json:"pearson_corr"`
}

// GradeBin is a half-open grade interval [Low, High).
type GradeBin struct {
	Low  float64
	High float64
}

// GradeBucket is one labelled histogram bar.
type GradeBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// StressGradePair is a raw scatter point from the survey x grade join.
type StressGradePair struct {
	StudentID   int64   `db:"student_id" json:"student_id"`
	ModuleID    int64   `db:"module_id" json:"module_id"`
	WeekNumber  int     `db:"week_number" json:"week_number"`
	StressLevel int     `db:"stress_level" json:"stress_level"`
	Grade       float64 `db:"grade" json:"grade"`
}

// SurveyScanRow is the detector's input shape: one survey row in
// (student_id, module_id, week_number) scan order.
type SurveyScanRow struct {
	StudentID   int64  `db:"student_id"`
	ModuleID    *int64 `db:"module_id"`
	WeekNumber  int    `db:"week_number"`
	StressLevel int    `db:"stress_level"`
}

// StressEvent records one consecutive-week high-stress hit.
type StressEvent struct {
	StudentID  int64  `json:"student_id"`
	ModuleID   *int64 `json:"module_id"`
	WeekStart  int    `json:"week_start"`
	WeekNext   int    `json:"week_next"`
	StressPrev int    `json:"stress_prev"`
	StressCurr int    `json:"stress_curr"`
}
