package player

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/transfermarket-backend/internal/domain"
	"github.com/simaogato/transfermarket-backend/internal/usecase/validation"
)

// PlayerInput represents the input for creating or updating a player
type PlayerInput struct {
	Name               string `validate:"required,max=255"`
	CurrentMarketValue decimal.NullDecimal
	CurrentClubID      *uuid.UUID // nil registers the player as a free agent
}

// PlayerService handles player management
type PlayerService struct {
	PlayerRepo domain.PlayerRepository
	ClubRepo   domain.ClubRepository
}

// NewPlayerService creates a new PlayerService instance
func NewPlayerService(playerRepo domain.PlayerRepository, clubRepo domain.ClubRepository) *PlayerService {
	return &PlayerService{
		PlayerRepo: playerRepo,
		ClubRepo:   clubRepo,
	}
}

// Create creates a new player
func (s *PlayerService) Create(ctx context.Context, input PlayerInput) (*domain.Player, error) {
	player := &domain.Player{ID: uuid.New()}
	if err := s.apply(ctx, player, input); err != nil {
		return nil, err
	}

	if err := s.PlayerRepo.Save(ctx, player); err != nil {
		return nil, err
	}

	return player, nil
}

// Get retrieves a player by its ID
func (s *PlayerService) Get(ctx context.Context, id uuid.UUID) (*domain.Player, error) {
	return s.PlayerRepo.GetByID(ctx, id)
}

// List retrieves all players
func (s *PlayerService) List(ctx context.Context) ([]*domain.Player, error) {
	return s.PlayerRepo.List(ctx)
}

// Update replaces the name, market value and club of an existing player.
// A nil CurrentClubID unsets the club.
func (s *PlayerService) Update(ctx context.Context, id uuid.UUID, input PlayerInput) (*domain.Player, error) {
	player, err := s.PlayerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.apply(ctx, player, input); err != nil {
		return nil, err
	}

	if err := s.PlayerRepo.Save(ctx, player); err != nil {
		return nil, err
	}

	return player, nil
}

// Delete removes a player
func (s *PlayerService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.PlayerRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.PlayerRepo.Delete(ctx, id)
}

// apply validates input and copies it onto player
func (s *PlayerService) apply(ctx context.Context, player *domain.Player, input PlayerInput) error {
	if err := validation.Struct(input); err != nil {
		return err
	}

	player.Name = input.Name
	player.CurrentMarketValue = input.CurrentMarketValue
	player.CurrentClubID = uuid.NullUUID{}

	if input.CurrentClubID != nil {
		club, err := s.ClubRepo.GetByID(ctx, *input.CurrentClubID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("%w: club not found with ID %s for player %s", domain.ErrInvalidArgument, *input.CurrentClubID, input.Name)
			}
			return err
		}
		player.MoveTo(club.ID)
	}

	if err := player.Validate(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}
	return nil
}
