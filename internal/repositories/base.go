package repositories

import (
	"database/sql"
	"errors"

	intconfig "movi/internal/config"
	intdb "movi/internal/db"
)

var errNoDB = errors.New("database belum terhubung")

// conn picks the handle a repository runs on: an open transaction first,
// then the repository's own DB, then the shared connection.
func conn(tx *sql.Tx, db *sql.DB) (intdb.Querier, error) {
	if tx != nil {
		return tx, nil
	}
	if db != nil {
		return db, nil
	}
	if intconfig.DB != nil {
		return intconfig.DB, nil
	}
	return nil, errNoDB
}

func nullInt64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	x := v.Int64
	return &x
}

func nullFloat64Ptr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	x := v.Float64
	return &x
}
