package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/simaogato/transfermarket-backend/internal/domain"
)

// PlayerRepository implements domain.PlayerRepository using PostgreSQL
type PlayerRepository struct {
	db *DB
}

// NewPlayerRepository creates a new PostgreSQL player repository
func NewPlayerRepository(db *DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// GetByID retrieves a player by its ID
func (r *PlayerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Player, error) {
	query := `
		SELECT id, name, current_market_value, current_club_id
		FROM players
		WHERE id = $1` + forUpdate(ctx)

	player, err := scanPlayer(r.db.conn(ctx).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("player", id)
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}

// GetByName retrieves a player by its exact name
func (r *PlayerRepository) GetByName(ctx context.Context, name string) (*domain.Player, error) {
	query := `
		SELECT id, name, current_market_value, current_club_id
		FROM players
		WHERE name = $1`

	player, err := scanPlayer(r.db.conn(ctx).QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("player %q: %w", name, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get player by name: %w", err)
	}

	return player, nil
}

// Save inserts a player or updates it when the ID already exists
func (r *PlayerRepository) Save(ctx context.Context, player *domain.Player) error {
	query := `
		INSERT INTO players (id, name, current_market_value, current_club_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			current_market_value = EXCLUDED.current_market_value,
			current_club_id = EXCLUDED.current_club_id`

	_, err := r.db.conn(ctx).ExecContext(ctx, query,
		player.ID,
		player.Name,
		player.CurrentMarketValue,
		player.CurrentClubID,
	)
	if err != nil {
		return translateError(err, "save player")
	}

	return nil
}

// List retrieves all players ordered by name
func (r *PlayerRepository) List(ctx context.Context) ([]*domain.Player, error) {
	query := `
		SELECT id, name, current_market_value, current_club_id
		FROM players
		ORDER BY name ASC`

	rows, err := r.db.conn(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	var players []*domain.Player
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, player)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating players: %w", err)
	}

	return players, nil
}

// Delete removes a player.
// Players referenced by transfers cannot be deleted.
func (r *PlayerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM players WHERE id = $1`

	result, err := r.db.conn(ctx).ExecContext(ctx, query, id)
	if err != nil {
		return translateError(err, "delete player")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.NewNotFoundError("player", id)
	}

	return nil
}

func scanPlayer(row rowScanner) (*domain.Player, error) {
	var player domain.Player
	if err := row.Scan(&player.ID, &player.Name, &player.CurrentMarketValue, &player.CurrentClubID); err != nil {
		return nil, err
	}
	return &player, nil
}
