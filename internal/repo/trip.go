// Package repo contains all database access logic for the trip builder.
// Saved trips are the only persisted resource. No business logic lives
// here, only SQL and type mapping.
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/trip-builder/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, pgx.Tx
// and pgxmock's pool. Integration tests pass a transaction that is rolled
// back after each test; unit tests pass a pgxmock pool.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripRepo defines the persistence operations for saved trips.
type TripRepo interface {
	// Save inserts the trip or overwrites the row with the same ID and
	// returns the stored record. created_at is kept from the first save.
	Save(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a saved trip. Returns domain.ErrNotFound if no trip
	// with that ID exists.
	GetByID(ctx context.Context, id string) (domain.Trip, error)

	// List returns one page of saved trips, most recently updated first,
	// and the total number of saved trips.
	List(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)

	// Delete removes a saved trip. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx or a pgxmock pool.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

// tripDocument is the JSONB part of a trip row: everything that is nested
// or only ever read back whole.
type tripDocument struct {
	Days      []domain.TripDay `json:"days"`
	Locations []string         `json:"locations"`
}

const tripColumns = `id, title, description, start_date, end_date, total_price,
		creator_id, is_published, document, created_at, updated_at`

// Save upserts a trip row keyed by its ID.
func (r *pgTripRepo) Save(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if strings.TrimSpace(trip.ID) == "" {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Save: %w: trip id is required", domain.ErrValidation)
	}
	doc, err := json.Marshal(tripDocument{Days: trip.Days, Locations: trip.Locations})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Save: encode document: %w", err)
	}

	const q = `
		INSERT INTO trips (id, title, description, start_date, end_date, total_price,
		                   creator_id, is_published, document, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
		ON CONFLICT (id) DO UPDATE
		SET title        = EXCLUDED.title,
		    description  = EXCLUDED.description,
		    start_date   = EXCLUDED.start_date,
		    end_date     = EXCLUDED.end_date,
		    total_price  = EXCLUDED.total_price,
		    creator_id   = EXCLUDED.creator_id,
		    is_published = EXCLUDED.is_published,
		    document     = EXCLUDED.document,
		    updated_at   = now()
		RETURNING ` + tripColumns

	row := r.db.QueryRow(ctx, q,
		trip.ID,
		trip.Title,
		trip.Description,
		trip.StartDate,
		trip.EndDate,
		domain.CalculateTripTotal(trip.Days),
		trip.CreatorID,
		trip.IsPublished,
		doc,
	)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Save: %w", err)
	}
	return result, nil
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id string) (domain.Trip, error) {
	q := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1`

	result, err := scanTrip(r.db.QueryRow(ctx, q, id))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns one page of trips ordered by updated_at descending.
func (r *pgTripRepo) List(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM trips`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.List: count: %w", err)
	}

	q := `SELECT ` + tripColumns + `
		FROM trips
		ORDER BY updated_at DESC, id
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, q, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.List: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.List: rows: %w", err)
	}
	return trips, total, nil
}

// Delete removes a trip by primary key.
func (r *pgTripRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM trips WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanTrip to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip, decoding the
// JSONB document back into days and locations.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t          domain.Trip
		start, end time.Time
		raw        []byte
	)
	err := s.Scan(
		&t.ID, &t.Title, &t.Description, &start, &end, &t.TotalPrice,
		&t.CreatorID, &t.IsPublished, &raw, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	var doc tripDocument
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &doc); err != nil {
			return domain.Trip{}, fmt.Errorf("decode document: %w", err)
		}
	}
	t.StartDate = start
	t.EndDate = end
	t.Days = doc.Days
	if t.Days == nil {
		t.Days = []domain.TripDay{}
	}
	t.Locations = doc.Locations
	if t.Locations == nil {
		t.Locations = []string{}
	}
	return t, nil
}
