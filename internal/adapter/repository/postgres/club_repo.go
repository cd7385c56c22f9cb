package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/simaogato/transfermarket-backend/internal/domain"
)

// ClubRepository implements domain.ClubRepository using PostgreSQL
type ClubRepository struct {
	db *DB
}

// NewClubRepository creates a new PostgreSQL club repository
func NewClubRepository(db *DB) *ClubRepository {
	return &ClubRepository{db: db}
}

// GetByID retrieves a club by its ID
func (r *ClubRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Club, error) {
	query := `
		SELECT id, name, budget
		FROM clubs
		WHERE id = $1` + forUpdate(ctx)

	club, err := scanClub(r.db.conn(ctx).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("club", id)
		}
		return nil, fmt.Errorf("failed to get club: %w", err)
	}

	return club, nil
}

// GetByName retrieves a club by its exact name
func (r *ClubRepository) GetByName(ctx context.Context, name string) (*domain.Club, error) {
	query := `
		SELECT id, name, budget
		FROM clubs
		WHERE name = $1`

	club, err := scanClub(r.db.conn(ctx).QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("club %q: %w", name, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get club by name: %w", err)
	}

	return club, nil
}

// Save inserts a club or updates it when the ID already exists
func (r *ClubRepository) Save(ctx context.Context, club *domain.Club) error {
	query := `
		INSERT INTO clubs (id, name, budget)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			budget = EXCLUDED.budget`

	if _, err := r.db.conn(ctx).ExecContext(ctx, query, club.ID, club.Name, club.Budget); err != nil {
		return translateError(err, "save club")
	}

	return nil
}

// List retrieves all clubs ordered by name
func (r *ClubRepository) List(ctx context.Context) ([]*domain.Club, error) {
	query := `
		SELECT id, name, budget
		FROM clubs
		ORDER BY name ASC`

	rows, err := r.db.conn(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query clubs: %w", err)
	}
	defer rows.Close()

	var clubs []*domain.Club
	for rows.Next() {
		club, err := scanClub(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan club: %w", err)
		}
		clubs = append(clubs, club)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating clubs: %w", err)
	}

	return clubs, nil
}

// Delete removes a club.
// Clubs still referenced by players or transfers cannot be deleted.
func (r *ClubRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM clubs WHERE id = $1`

	result, err := r.db.conn(ctx).ExecContext(ctx, query, id)
	if err != nil {
		return translateError(err, "delete club")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.NewNotFoundError("club", id)
	}

	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanClub(row rowScanner) (*domain.Club, error) {
	var club domain.Club
	if err := row.Scan(&club.ID, &club.Name, &club.Budget); err != nil {
		return nil, err
	}
	return &club, nil
}
