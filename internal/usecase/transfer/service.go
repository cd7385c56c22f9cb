package transfer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/transfermarket-backend/internal/domain"
	"github.com/simaogato/transfermarket-backend/internal/usecase/feecalc"
	"github.com/simaogato/transfermarket-backend/internal/usecase/validation"
	"github.com/simaogato/transfermarket-backend/internal/usecase/workflow"
)

// InitiateTransferInput represents the input for initiating a transfer
type InitiateTransferInput struct {
	PlayerID   uuid.UUID `validate:"required"`
	FromClubID uuid.UUID `validate:"required"`
	ToClubID   uuid.UUID `validate:"required"`
	// Clauses only feed the budget pre-check; they are not stored with the transfer.
	Clauses []domain.ContractClause
}

// InitiateResult is a newly created DRAFT transfer with the fee estimated for it
type InitiateResult struct {
	Transfer     *domain.Transfer
	EstimatedFee decimal.Decimal
}

// CompletionResult holds every record touched by a completed transfer
type CompletionResult struct {
	Transfer *domain.Transfer
	Player   *domain.Player
	FromClub *domain.Club
	ToClub   *domain.Club
	Fee      decimal.Decimal
}

// TransferService handles the transfer lifecycle: initiation, workflow moves and completion
type TransferService struct {
	TransferRepo domain.TransferRepository
	PlayerRepo   domain.PlayerRepository
	ClubRepo     domain.ClubRepository
	TxManager    domain.TxManager
	Engine       *workflow.Engine
	Calculator   *feecalc.Calculator
}

// NewTransferService creates a new TransferService instance
func NewTransferService(
	transferRepo domain.TransferRepository,
	playerRepo domain.PlayerRepository,
	clubRepo domain.ClubRepository,
	txManager domain.TxManager,
	engine *workflow.Engine,
	calculator *feecalc.Calculator,
) *TransferService {
	return &TransferService{
		TransferRepo: transferRepo,
		PlayerRepo:   playerRepo,
		ClubRepo:     clubRepo,
		TxManager:    txManager,
		Engine:       engine,
		Calculator:   calculator,
	}
}

// Initiate creates a DRAFT transfer
// Logic:
//  1. Resolve Player, FromClub and ToClub (a missing one is an invalid argument)
//  2. Reject when the player already has an active transfer, whatever clubs the new request names
//  3. Reject identical originating and destination clubs
//  4. Estimate the fee with the supplied clauses; the destination club must afford it
//     (a NULL budget never passes, it is reported as 0 available)
//  5. Persist the transfer in DRAFT
func (s *TransferService) Initiate(ctx context.Context, input InitiateTransferInput) (*InitiateResult, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	var result *InitiateResult
	err := s.TxManager.WithinTx(ctx, func(ctx context.Context) error {
		player, err := s.resolvePlayer(ctx, input.PlayerID)
		if err != nil {
			return err
		}
		fromClub, err := s.resolveClub(ctx, input.FromClubID, "originating club")
		if err != nil {
			return err
		}
		toClub, err := s.resolveClub(ctx, input.ToClubID, "destination club")
		if err != nil {
			return err
		}

		active, err := s.TransferRepo.ExistsActiveForPlayer(ctx, player.ID, domain.ActiveTransferStatuses)
		if err != nil {
			return err
		}
		if active {
			return fmt.Errorf("%w: player with ID %s is already in an active transfer", domain.ErrStateConflict, player.ID)
		}

		if fromClub.ID == toClub.ID {
			return fmt.Errorf("%w: originating and destination club must differ", domain.ErrInvalidArgument)
		}

		estimatedFee := s.Calculator.Calculate(player, toClub, input.Clauses)
		if !toClub.Budget.Valid || toClub.Budget.Decimal.LessThan(estimatedFee) {
			return fmt.Errorf("%w: destination club %s cannot afford this transfer, required %s, available %s",
				domain.ErrInsufficientBudget, toClub.ID, estimatedFee, toClub.AvailableBudget())
		}

		now := time.Now().UTC()
		transfer := &domain.Transfer{
			ID:          uuid.New(),
			PlayerID:    player.ID,
			FromClubID:  fromClub.ID,
			ToClubID:    toClub.ID,
			Status:      domain.TransferStatusDraft,
			InitiatedAt: now,
			UpdatedAt:   now,
		}
		if err := transfer.Validate(); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
		}

		if err := s.TransferRepo.Save(ctx, transfer); err != nil {
			return err
		}

		result = &InitiateResult{Transfer: transfer, EstimatedFee: estimatedFee}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Get retrieves a transfer by its ID
func (s *TransferService) Get(ctx context.Context, id uuid.UUID) (*domain.Transfer, error) {
	return s.TransferRepo.GetByID(ctx, id)
}

// List retrieves all transfers, most recently initiated first
func (s *TransferService) List(ctx context.Context) ([]*domain.Transfer, error) {
	return s.TransferRepo.List(ctx)
}

// Submit moves the transfer to SUBMITTED
func (s *TransferService) Submit(ctx context.Context, id uuid.UUID) (*domain.Transfer, error) {
	return s.advance(ctx, id, domain.TransferActionSubmit)
}

// Negotiate moves the transfer to NEGOTIATION
func (s *TransferService) Negotiate(ctx context.Context, id uuid.UUID) (*domain.Transfer, error) {
	return s.advance(ctx, id, domain.TransferActionNegotiate)
}

// Approve moves the transfer to APPROVED
func (s *TransferService) Approve(ctx context.Context, id uuid.UUID) (*domain.Transfer, error) {
	return s.advance(ctx, id, domain.TransferActionApprove)
}

// Cancel moves the transfer to CANCELED
func (s *TransferService) Cancel(ctx context.Context, id uuid.UUID) (*domain.Transfer, error) {
	return s.advance(ctx, id, domain.TransferActionCancel)
}

// advance loads the transfer and applies a status-only workflow action.
// Completion has side effects and goes through Complete instead.
func (s *TransferService) advance(ctx context.Context, id uuid.UUID, action domain.TransferAction) (*domain.Transfer, error) {
	var updated *domain.Transfer
	err := s.TxManager.WithinTx(ctx, func(ctx context.Context) error {
		transfer, err := s.TransferRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		updated, err = s.Engine.Apply(ctx, transfer, action)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Complete finishes an APPROVED transfer and moves the player and the money.
// All steps run in one transaction; a failure at any step leaves nothing behind.
// Logic:
//  1. Workflow: APPROVED -> COMPLETED (persisted)
//  2. Resolve Player, ToClub and FromClub referenced by the transfer;
//     clubs are read in ascending ID order so opposite-direction completions lock them alike
//  3. Register the player with ToClub
//  4. Fee = calculator(player, ToClub, no clauses); initiation clauses are not retained
//  5. Debit ToClub and credit FromClub; NULL budgets stay NULL
//  6. Persist Player, ToClub, FromClub
func (s *TransferService) Complete(ctx context.Context, id uuid.UUID) (*CompletionResult, error) {
	var result *CompletionResult
	err := s.TxManager.WithinTx(ctx, func(ctx context.Context) error {
		transfer, err := s.TransferRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		// 1. Workflow transition
		transfer, err = s.Engine.Complete(ctx, transfer)
		if err != nil {
			return err
		}

		// 2. Resolve the parties
		player, err := s.PlayerRepo.GetByID(ctx, transfer.PlayerID)
		if err != nil {
			return fmt.Errorf("player of transfer %s: %w", transfer.ID, err)
		}
		toClub, fromClub, err := s.loadClubs(ctx, transfer)
		if err != nil {
			return err
		}

		// 3. Ownership
		player.MoveTo(toClub.ID)

		// 4. Fee
		fee := s.Calculator.Calculate(player, toClub, nil)

		// 5. Budgets
		toClub.Debit(fee)
		fromClub.Credit(fee)

		// 6. Persist
		if err := s.PlayerRepo.Save(ctx, player); err != nil {
			return err
		}
		if err := s.ClubRepo.Save(ctx, toClub); err != nil {
			return err
		}
		if err := s.ClubRepo.Save(ctx, fromClub); err != nil {
			return err
		}

		result = &CompletionResult{
			Transfer: transfer,
			Player:   player,
			FromClub: fromClub,
			ToClub:   toClub,
			Fee:      fee,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// EstimateFee returns the fee buyer would pay for player under the given clauses
func (s *TransferService) EstimateFee(ctx context.Context, playerID, buyerClubID uuid.UUID, clauses []domain.ContractClause) (decimal.Decimal, error) {
	player, err := s.PlayerRepo.GetByID(ctx, playerID)
	if err != nil {
		return decimal.Zero, err
	}
	buyer, err := s.ClubRepo.GetByID(ctx, buyerClubID)
	if err != nil {
		return decimal.Zero, err
	}
	return s.Calculator.Calculate(player, buyer, clauses), nil
}

// loadClubs reads the destination and originating clubs of transfer, lowest ID first
func (s *TransferService) loadClubs(ctx context.Context, transfer *domain.Transfer) (toClub, fromClub *domain.Club, err error) {
	load := func(id uuid.UUID, role string) (*domain.Club, error) {
		club, err := s.ClubRepo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("%s of transfer %s: %w", role, transfer.ID, err)
		}
		return club, nil
	}

	if bytes.Compare(transfer.FromClubID[:], transfer.ToClubID[:]) < 0 {
		if fromClub, err = load(transfer.FromClubID, "originating club"); err != nil {
			return nil, nil, err
		}
		if toClub, err = load(transfer.ToClubID, "destination club"); err != nil {
			return nil, nil, err
		}
		return toClub, fromClub, nil
	}

	if toClub, err = load(transfer.ToClubID, "destination club"); err != nil {
		return nil, nil, err
	}
	if fromClub, err = load(transfer.FromClubID, "originating club"); err != nil {
		return nil, nil, err
	}
	return toClub, fromClub, nil
}

// resolvePlayer loads a player referenced by a creation request
func (s *TransferService) resolvePlayer(ctx context.Context, id uuid.UUID) (*domain.Player, error) {
	player, err := s.PlayerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: player not found with ID %s", domain.ErrInvalidArgument, id)
		}
		return nil, err
	}
	return player, nil
}

// resolveClub loads a club referenced by a creation request; role names it in the error
func (s *TransferService) resolveClub(ctx context.Context, id uuid.UUID, role string) (*domain.Club, error) {
	club, err := s.ClubRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s not found with ID %s", domain.ErrInvalidArgument, role, id)
		}
		return nil, err
	}
	return club, nil
}
