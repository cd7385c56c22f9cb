package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/simaogato/transfermarket-backend/internal/domain"
)

// TransferRepository implements domain.TransferRepository using PostgreSQL
type TransferRepository struct {
	db *DB
}

// NewTransferRepository creates a new PostgreSQL transfer repository
func NewTransferRepository(db *DB) *TransferRepository {
	return &TransferRepository{db: db}
}

// GetByID retrieves a transfer by its ID
func (r *TransferRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transfer, error) {
	query := `
		SELECT id, player_id, from_club_id, to_club_id, status, initiated_at, updated_at
		FROM transfers
		WHERE id = $1` + forUpdate(ctx)

	transfer, err := scanTransfer(r.db.conn(ctx).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("transfer", id)
		}
		return nil, fmt.Errorf("failed to get transfer: %w", err)
	}

	return transfer, nil
}

// Save inserts a transfer or updates its status when the ID already exists.
// Parties and initiation time never change after creation.
func (r *TransferRepository) Save(ctx context.Context, transfer *domain.Transfer) error {
	query := `
		INSERT INTO transfers (id, player_id, from_club_id, to_club_id, status, initiated_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.conn(ctx).ExecContext(ctx, query,
		transfer.ID,
		transfer.PlayerID,
		transfer.FromClubID,
		transfer.ToClubID,
		string(transfer.Status),
		transfer.InitiatedAt,
		transfer.UpdatedAt,
	)
	if err != nil {
		return translateError(err, "save transfer")
	}

	return nil
}

// ExistsActiveForPlayer reports whether the player has a transfer in one of the given statuses
func (r *TransferRepository) ExistsActiveForPlayer(ctx context.Context, playerID uuid.UUID, statuses []domain.TransferStatus) (bool, error) {
	if len(statuses) == 0 {
		return false, nil
	}

	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}

	query := `
		SELECT EXISTS (
			SELECT 1 FROM transfers
			WHERE player_id = $1 AND status = ANY($2)
		)`

	var exists bool
	if err := r.db.conn(ctx).QueryRowContext(ctx, query, playerID, pq.Array(names)).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check active transfers: %w", err)
	}

	return exists, nil
}

// List retrieves all transfers, most recently initiated first
func (r *TransferRepository) List(ctx context.Context) ([]*domain.Transfer, error) {
	query := `
		SELECT id, player_id, from_club_id, to_club_id, status, initiated_at, updated_at
		FROM transfers
		ORDER BY initiated_at DESC`

	rows, err := r.db.conn(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query transfers: %w", err)
	}
	defer rows.Close()

	var transfers []*domain.Transfer
	for rows.Next() {
		transfer, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transfer: %w", err)
		}
		transfers = append(transfers, transfer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transfers: %w", err)
	}

	return transfers, nil
}

func scanTransfer(row rowScanner) (*domain.Transfer, error) {
	var (
		transfer domain.Transfer
		status   string
	)
	err := row.Scan(
		&transfer.ID,
		&transfer.PlayerID,
		&transfer.FromClubID,
		&transfer.ToClubID,
		&status,
		&transfer.InitiatedAt,
		&transfer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	transfer.Status = domain.TransferStatus(status)
	return &transfer, nil
}
