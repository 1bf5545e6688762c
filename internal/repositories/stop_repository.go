package repositories

import (
	"context"
	"database/sql"

	"movi/internal/domain/models"
)

type StopRepository struct {
	DB *sql.DB
}

// List returns all stops ordered by id.
func (r StopRepository) List(ctx context.Context) ([]models.Stop, error) {
	q, err := conn(nil, r.DB)
	if err != nil {
		return nil, err
	}
	rows, err := q.QueryContext(ctx, `SELECT stop_id, name, latitude, longitude FROM stops ORDER BY stop_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Stop{}
	for rows.Next() {
		var (
			s        models.Stop
			lat, lng sql.NullFloat64
		)
		if err := rows.Scan(&s.ID, &s.Name, &lat, &lng); err != nil {
			return out, err
		}
		s.Latitude = nullFloat64Ptr(lat)
		s.Longitude = nullFloat64Ptr(lng)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r StopRepository) Create(ctx context.Context, in models.StopInput) (int64, error) {
	q, err := conn(nil, r.DB)
	if err != nil {
		return 0, err
	}
	res, err := q.ExecContext(ctx,
		`INSERT INTO stops (name, latitude, longitude) VALUES (?, ?, ?)`,
		in.Name, in.Latitude, in.Longitude,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
