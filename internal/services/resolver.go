package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	intconfig "movi/internal/config"
	"movi/internal/domain/models"
	"movi/internal/repositories"

	"github.com/agnivade/levenshtein"
)

// TripResolver finds the trip an operator refers to.
type TripResolver interface {
	// ResolveTrip returns the first trip whose display name contains text
	// (case-insensitive, lowest trip id on ties). No match is not an error.
	ResolveTrip(ctx context.Context, text string) (models.Trip, bool, error)
	// Suggest returns the closest display name to text, or "" when nothing
	// is close enough. Best-effort: errors yield "".
	Suggest(ctx context.Context, text string) string
}

// Resolver implements TripResolver on the daily_trips table.
type Resolver struct {
	DB    *sql.DB
	Trips repositories.TripRepository
}

func (r Resolver) trips() repositories.TripRepository {
	if r.Trips.DB != nil {
		return r.Trips
	}
	if r.DB != nil {
		return repositories.TripRepository{DB: r.DB}
	}
	return repositories.TripRepository{DB: intconfig.DB}
}

func (r Resolver) ResolveTrip(ctx context.Context, text string) (models.Trip, bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Trip{}, false, nil
	}
	trip, found, err := r.trips().FindByText(ctx, text)
	if err != nil {
		return models.Trip{}, false, fmt.Errorf("resolve trip %q: %w", text, err)
	}
	return trip, found, nil
}

func (r Resolver) Suggest(ctx context.Context, text string) string {
	names, err := r.trips().DisplayNames(ctx)
	if err != nil {
		return ""
	}
	return ClosestName(text, names)
}

// ClosestName returns the name with the smallest edit distance to text,
// compared case-insensitively, if that distance is within a limit scaled
// to the name length. Earlier names win ties.
func ClosestName(text string, names []string) string {
	needle := strings.ToLower(strings.TrimSpace(text))
	if len(needle) < 3 {
		return ""
	}

	best, bestDist := "", -1
	for _, name := range names {
		candidate := strings.ToLower(strings.TrimSpace(name))
		if candidate == "" {
			continue
		}
		dist := levenshtein.ComputeDistance(needle, candidate)
		if dist > suggestLimit(len(candidate)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = name, dist
		}
	}
	return best
}

func suggestLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
