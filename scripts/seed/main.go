// Command seed loads a small demo dataset so the analysis and alert
// endpoints have something to chew on in a fresh environment.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type studentSeed struct {
	Number string
	Name   string
	Course string
}

type surveySeed struct {
	Student int64
	Module  *int64
	Week    int
	Stress  int
}

func main() {
	var dsn string
	flag.StringVar(&dsn, "dsn", "host=localhost port=5432 user=wellbeing password=wellbeing dbname=wellbeing sslmode=disable", "PostgreSQL DSN")
	flag.Parse()

	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := seed(ctx, db); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	fmt.Println("seed complete")
}

func seed(ctx context.Context, db *sqlx.DB) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	students := []studentSeed{
		{"S1001", "Aigerim Bekova", "Computer Science"},
		{"S1002", "Tomasz Nowak", "Computer Science"},
		{"S1003", "Priya Raman", "Data Science"},
	}
	studentIDs := make([]int64, 0, len(students))
	for _, s := range students {
		var id int64
		err := tx.QueryRowxContext(ctx,
			`INSERT INTO students (student_number, full_name, course_name, is_active)
             VALUES ($1, $2, $3, TRUE) ON CONFLICT (student_number) DO UPDATE SET full_name = EXCLUDED.full_name
             RETURNING id`,
			s.Number, s.Name, s.Course,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert student %s: %w", s.Number, err)
		}
		studentIDs = append(studentIDs, id)
	}

	moduleIDs := make([]int64, 0, 2)
	for _, m := range []struct{ Code, Title string }{
		{"CS101", "Introduction to Programming"},
		{"CS205", "Databases"},
	} {
		var id int64
		err := tx.QueryRowxContext(ctx,
			`INSERT INTO modules (module_code, module_title, credit, is_active)
             VALUES ($1, $2, 15, TRUE) ON CONFLICT (module_code) DO UPDATE SET module_title = EXCLUDED.module_title
             RETURNING id`,
			m.Code, m.Title,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert module %s: %w", m.Code, err)
		}
		moduleIDs = append(moduleIDs, id)
	}

	for _, sid := range studentIDs {
		for _, mid := range moduleIDs {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO enrolments (student_id, module_id, is_active)
                 VALUES ($1, $2, TRUE) ON CONFLICT (student_id, module_id) DO NOTHING`,
				sid, mid,
			); err != nil {
				return fmt.Errorf("insert enrolment: %w", err)
			}
		}
	}

	// Student one carries a consecutive high-stress pair in weeks 3 and 4.
	surveys := []surveySeed{
		{studentIDs[0], &moduleIDs[0], 1, 2},
		{studentIDs[0], &moduleIDs[0], 2, 3},
		{studentIDs[0], &moduleIDs[0], 3, 4},
		{studentIDs[0], &moduleIDs[0], 4, 5},
		{studentIDs[1], &moduleIDs[0], 1, 1},
		{studentIDs[1], &moduleIDs[0], 2, 2},
		{studentIDs[2], nil, 1, 3},
		{studentIDs[2], nil, 2, 4},
	}
	for _, s := range surveys {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO survey_responses (student_id, module_id, week_number, stress_level, is_active)
             VALUES ($1, $2, $3, $4, TRUE)`,
			s.Student, s.Module, s.Week, s.Stress,
		); err != nil {
			return fmt.Errorf("insert survey: %w", err)
		}
	}

	for i, sid := range studentIDs {
		rate := 0.95 - float64(i)*0.1
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO attendance_records (student_id, module_id, week_number, attendance_rate, is_active)
             VALUES ($1, $2, 1, $3, TRUE)`,
			sid, moduleIDs[0], rate,
		); err != nil {
			return fmt.Errorf("insert attendance: %w", err)
		}
	}

	grades := []float64{55, 68, 74, 88, 95, 62}
	for i, g := range grades {
		sid := studentIDs[i%len(studentIDs)]
		mid := moduleIDs[i%len(moduleIDs)]
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO grades (student_id, module_id, assessment_name, grade, is_active)
             VALUES ($1, $2, $3, $4, TRUE)`,
			sid, mid, fmt.Sprintf("Assessment %d", i+1), g,
		); err != nil {
			return fmt.Errorf("insert grade: %w", err)
		}
	}

	return tx.Commit()
}
