package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"movi/internal/domain/models"
)

type OperatorRepository struct {
	DB *sql.DB
}

// FindByUsername loads an active or inactive operator. found is false when
// no operator has that username.
func (r OperatorRepository) FindByUsername(ctx context.Context, username string) (models.Operator, bool, error) {
	q, err := conn(nil, r.DB)
	if err != nil {
		return models.Operator{}, false, err
	}
	var op models.Operator
	err = q.QueryRowContext(ctx, `
		SELECT id, username, password_hash, role, status
		FROM operators
		WHERE username = ?
		LIMIT 1
	`, strings.TrimSpace(username)).Scan(&op.ID, &op.Username, &op.PasswordHash, &op.Role, &op.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Operator{}, false, nil
	}
	if err != nil {
		return models.Operator{}, false, err
	}
	return op, true, nil
}
