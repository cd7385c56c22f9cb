package club

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/transfermarket-backend/internal/domain"
	"github.com/simaogato/transfermarket-backend/internal/usecase/validation"
)

// ClubInput represents the input for creating or updating a club
type ClubInput struct {
	Name   string `validate:"required,max=255"`
	Budget decimal.NullDecimal
}

// ClubService handles club management
type ClubService struct {
	ClubRepo domain.ClubRepository
}

// NewClubService creates a new ClubService instance
func NewClubService(clubRepo domain.ClubRepository) *ClubService {
	return &ClubService{
		ClubRepo: clubRepo,
	}
}

// Create creates a new club
func (s *ClubService) Create(ctx context.Context, input ClubInput) (*domain.Club, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	club := &domain.Club{
		ID:     uuid.New(),
		Name:   input.Name,
		Budget: input.Budget,
	}
	if err := club.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}

	if err := s.ClubRepo.Save(ctx, club); err != nil {
		return nil, err
	}

	return club, nil
}

// Get retrieves a club by its ID
func (s *ClubService) Get(ctx context.Context, id uuid.UUID) (*domain.Club, error) {
	return s.ClubRepo.GetByID(ctx, id)
}

// List retrieves all clubs
func (s *ClubService) List(ctx context.Context) ([]*domain.Club, error) {
	return s.ClubRepo.List(ctx)
}

// Update replaces the name and budget of an existing club
func (s *ClubService) Update(ctx context.Context, id uuid.UUID, input ClubInput) (*domain.Club, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	club, err := s.ClubRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	club.Name = input.Name
	club.Budget = input.Budget
	if err := club.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}

	if err := s.ClubRepo.Save(ctx, club); err != nil {
		return nil, err
	}

	return club, nil
}

// Delete removes a club
func (s *ClubService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.ClubRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.ClubRepo.Delete(ctx, id)
}
