package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"question_review/internal/common"
)

// requireRowMatched turns a zero-row UPDATE into ErrNotFound. The original
// behavior here was a silent no-op; reporting it is the contract now.
func requireRowMatched(res sql.Result, kind string, id int64) error {
	count, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for %s %d: %w", kind, id, err)
	}
	if count == 0 {
		return fmt.Errorf("%s %d: %w", kind, id, common.ErrNotFound)
	}
	return nil
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
