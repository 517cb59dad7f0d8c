package repository

import (
	"database/sql"
	"fmt"
)

// requireRowAffected converts a zero-row write into sql.ErrNoRows so services
// can map it to a not-found error.
func requireRowAffected(res sql.Result, entity string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for %s: %w", entity, err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
