package domain

import (
	"context"

	"github.com/google/uuid"
)

// TransferRepository defines the interface for transfer persistence operations
type TransferRepository interface {
	// GetByID retrieves a transfer by its ID.
	// Returns an error matching ErrNotFound when the transfer does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*Transfer, error)

	// Save inserts or updates a transfer
	Save(ctx context.Context, transfer *Transfer) error

	// ExistsActiveForPlayer reports whether the player is referenced by a transfer in one of the given statuses
	ExistsActiveForPlayer(ctx context.Context, playerID uuid.UUID, statuses []TransferStatus) (bool, error)

	// List retrieves all transfers, most recently initiated first
	List(ctx context.Context) ([]*Transfer, error)
}

// PlayerRepository defines the interface for player persistence operations
type PlayerRepository interface {
	// GetByID retrieves a player by its ID.
	// Returns an error matching ErrNotFound when the player does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*Player, error)

	// GetByName retrieves a player by its exact name
	GetByName(ctx context.Context, name string) (*Player, error)

	// Save inserts or updates a player
	Save(ctx context.Context, player *Player) error

	// List retrieves all players ordered by name
	List(ctx context.Context) ([]*Player, error)

	// Delete removes a player
	Delete(ctx context.Context, id uuid.UUID) error
}

// ClubRepository defines the interface for club persistence operations
type ClubRepository interface {
	// GetByID retrieves a club by its ID.
	// Returns an error matching ErrNotFound when the club does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*Club, error)

	// GetByName retrieves a club by its exact name
	GetByName(ctx context.Context, name string) (*Club, error)

	// Save inserts or updates a club
	Save(ctx context.Context, club *Club) error

	// List retrieves all clubs ordered by name
	List(ctx context.Context) ([]*Club, error)

	// Delete removes a club
	Delete(ctx context.Context, id uuid.UUID) error
}

// TxManager runs a unit of work atomically.
// Repository calls made with the context passed to fn take part in the same transaction;
// if fn returns an error nothing it wrote is kept.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
