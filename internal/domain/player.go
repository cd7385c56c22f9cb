package domain

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Player represents a football player in the domain layer
type Player struct {
	ID                 uuid.UUID
	Name               string
	CurrentMarketValue decimal.NullDecimal // NULL when the player has no valuation
	CurrentClubID      uuid.NullUUID       // NULL for free agents
}

// Validate ensures the player adheres to domain rules
func (p *Player) Validate() error {
	if p.Name == "" {
		return errors.New("player name cannot be empty")
	}
	if p.CurrentMarketValue.Valid && p.CurrentMarketValue.Decimal.IsNegative() {
		return errors.New("player market value cannot be negative")
	}
	return nil
}

// IsFreeAgent reports whether the player is not registered with any club
func (p *Player) IsFreeAgent() bool {
	return !p.CurrentClubID.Valid
}

// MoveTo registers the player with the given club
func (p *Player) MoveTo(clubID uuid.UUID) {
	p.CurrentClubID = uuid.NullUUID{UUID: clubID, Valid: true}
}
