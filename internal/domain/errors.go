package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error kinds surfaced by the transfer core. Callers match them with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrStateConflict      = errors.New("state conflict")
	ErrInsufficientBudget = errors.New("insufficient budget")
)

// TransitionError is returned when a workflow action is not allowed from the current status
type TransitionError struct {
	Action TransferAction
	Status TransferStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s transfer: current status is %s", e.Action, e.Status)
}

// Is makes TransitionError match ErrStateConflict
func (e *TransitionError) Is(target error) bool {
	return target == ErrStateConflict
}

// EntityNotFoundError names the entity that could not be resolved
type EntityNotFoundError struct {
	Entity string
	ID     uuid.UUID
}

func (e *EntityNotFoundError) Error() string {
	return fmt.Sprintf("%s not found with ID %s", e.Entity, e.ID)
}

// Is makes EntityNotFoundError match ErrNotFound
func (e *EntityNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates an EntityNotFoundError
func NewNotFoundError(entity string, id uuid.UUID) error {
	return &EntityNotFoundError{Entity: entity, ID: id}
}
