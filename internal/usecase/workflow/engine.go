package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/simaogato/transfermarket-backend/internal/domain"
)

// Engine enforces the legal status transitions of a transfer and persists every change
type Engine struct {
	TransferRepo domain.TransferRepository
}

// NewEngine creates a new Engine instance
func NewEngine(transferRepo domain.TransferRepository) *Engine {
	return &Engine{
		TransferRepo: transferRepo,
	}
}

// Submit moves a DRAFT transfer to SUBMITTED
func (e *Engine) Submit(ctx context.Context, transfer *domain.Transfer) (*domain.Transfer, error) {
	return e.apply(ctx, transfer, domain.TransferActionSubmit)
}

// MoveToNegotiation moves a SUBMITTED transfer to NEGOTIATION
func (e *Engine) MoveToNegotiation(ctx context.Context, transfer *domain.Transfer) (*domain.Transfer, error) {
	return e.apply(ctx, transfer, domain.TransferActionNegotiate)
}

// Approve moves a NEGOTIATION transfer to APPROVED
func (e *Engine) Approve(ctx context.Context, transfer *domain.Transfer) (*domain.Transfer, error) {
	return e.apply(ctx, transfer, domain.TransferActionApprove)
}

// Complete moves an APPROVED transfer to COMPLETED.
// It only changes the status; moving the player and the money is the transfer service's job.
func (e *Engine) Complete(ctx context.Context, transfer *domain.Transfer) (*domain.Transfer, error) {
	return e.apply(ctx, transfer, domain.TransferActionComplete)
}

// Cancel moves any non-terminal transfer to CANCELED
func (e *Engine) Cancel(ctx context.Context, transfer *domain.Transfer) (*domain.Transfer, error) {
	return e.apply(ctx, transfer, domain.TransferActionCancel)
}

// Apply runs the given action. It lets callers drive the engine from a TransferAction value.
func (e *Engine) Apply(ctx context.Context, transfer *domain.Transfer, action domain.TransferAction) (*domain.Transfer, error) {
	return e.apply(ctx, transfer, action)
}

// apply validates the transition, sets the new status and saves the transfer.
// On any failure the transfer keeps its previous status.
func (e *Engine) apply(ctx context.Context, transfer *domain.Transfer, action domain.TransferAction) (*domain.Transfer, error) {
	if transfer == nil {
		return nil, fmt.Errorf("%w: transfer cannot be nil", domain.ErrInvalidArgument)
	}

	next, err := transfer.Status.Next(action)
	if err != nil {
		return nil, err
	}

	previousStatus := transfer.Status
	previousUpdatedAt := transfer.UpdatedAt

	transfer.Status = next
	transfer.UpdatedAt = time.Now().UTC()

	if err := e.TransferRepo.Save(ctx, transfer); err != nil {
		transfer.Status = previousStatus
		transfer.UpdatedAt = previousUpdatedAt
		return nil, fmt.Errorf("failed to save transfer after %s: %w", action, err)
	}

	return transfer, nil
}
