package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// TransferStatus represents the lifecycle status of a transfer
type TransferStatus string

const (
	TransferStatusDraft       TransferStatus = "DRAFT"
	TransferStatusSubmitted   TransferStatus = "SUBMITTED"
	TransferStatusNegotiation TransferStatus = "NEGOTIATION"
	TransferStatusApproved    TransferStatus = "APPROVED"
	TransferStatusCompleted   TransferStatus = "COMPLETED"
	TransferStatusCanceled    TransferStatus = "CANCELED"
)

// ActiveTransferStatuses are the statuses in which a player is considered to be in an active transfer.
// A player may be referenced by at most one transfer in one of these statuses.
var ActiveTransferStatuses = []TransferStatus{
	TransferStatusSubmitted,
	TransferStatusNegotiation,
	TransferStatusApproved,
}

// IsValid reports whether s is one of the known statuses
func (s TransferStatus) IsValid() bool {
	switch s {
	case TransferStatusDraft, TransferStatusSubmitted, TransferStatusNegotiation,
		TransferStatusApproved, TransferStatusCompleted, TransferStatusCanceled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is possible from s
func (s TransferStatus) IsTerminal() bool {
	return s == TransferStatusCompleted || s == TransferStatusCanceled
}

// IsActive reports whether s counts towards the active-transfer uniqueness rule
func (s TransferStatus) IsActive() bool {
	for _, active := range ActiveTransferStatuses {
		if s == active {
			return true
		}
	}
	return false
}

// TransferAction is a workflow operation on a transfer
type TransferAction string

const (
	TransferActionSubmit    TransferAction = "submit"
	TransferActionNegotiate TransferAction = "negotiate"
	TransferActionApprove   TransferAction = "approve"
	TransferActionComplete  TransferAction = "complete"
	TransferActionCancel    TransferAction = "cancel"
)

type transition struct {
	from []TransferStatus
	to   TransferStatus
}

// transitions is the complete set of legal workflow moves.
// Anything not listed here is a state conflict.
var transitions = map[TransferAction]transition{
	TransferActionSubmit: {
		from: []TransferStatus{TransferStatusDraft},
		to:   TransferStatusSubmitted,
	},
	TransferActionNegotiate: {
		from: []TransferStatus{TransferStatusSubmitted},
		to:   TransferStatusNegotiation,
	},
	TransferActionApprove: {
		from: []TransferStatus{TransferStatusNegotiation},
		to:   TransferStatusApproved,
	},
	TransferActionComplete: {
		from: []TransferStatus{TransferStatusApproved},
		to:   TransferStatusCompleted,
	},
	TransferActionCancel: {
		from: []TransferStatus{
			TransferStatusDraft,
			TransferStatusSubmitted,
			TransferStatusNegotiation,
			TransferStatusApproved,
		},
		to: TransferStatusCanceled,
	},
}

// TransferActions lists every workflow action in chain order, cancel last
func TransferActions() []TransferAction {
	return []TransferAction{
		TransferActionSubmit,
		TransferActionNegotiate,
		TransferActionApprove,
		TransferActionComplete,
		TransferActionCancel,
	}
}

// Next returns the status reached by applying action to s.
// It returns a *TransitionError when the action is not allowed from s.
func (s TransferStatus) Next(action TransferAction) (TransferStatus, error) {
	t, ok := transitions[action]
	if !ok {
		return s, errors.New("unknown transfer action: " + string(action))
	}
	for _, from := range t.from {
		if s == from {
			return t.to, nil
		}
	}
	return s, &TransitionError{Action: action, Status: s}
}

// Transfer represents a player's proposed or completed move between two clubs
type Transfer struct {
	ID          uuid.UUID
	PlayerID    uuid.UUID
	FromClubID  uuid.UUID
	ToClubID    uuid.UUID
	Status      TransferStatus
	InitiatedAt time.Time
	UpdatedAt   time.Time
}

// Validate ensures the transfer adheres to domain rules
func (t *Transfer) Validate() error {
	if t.PlayerID == uuid.Nil {
		return errors.New("transfer must reference a player")
	}
	if t.FromClubID == uuid.Nil || t.ToClubID == uuid.Nil {
		return errors.New("transfer must reference both an originating and a destination club")
	}
	if t.FromClubID == t.ToClubID {
		return errors.New("transfer must reference two distinct clubs")
	}
	if !t.Status.IsValid() {
		return errors.New("invalid transfer status: " + string(t.Status))
	}
	return nil
}
