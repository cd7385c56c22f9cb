package domain

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Club represents a football club in the domain layer
type Club struct {
	ID   uuid.UUID
	Name string
	// Budget is nullable. A NULL budget is left untouched by transfer completion
	// but counts as zero when a new transfer is pre-checked.
	Budget decimal.NullDecimal
}

// Validate ensures the club adheres to domain rules
func (c *Club) Validate() error {
	if c.Name == "" {
		return errors.New("club name cannot be empty")
	}
	return nil
}

// AvailableBudget returns the budget used for affordability checks (NULL counts as zero)
func (c *Club) AvailableBudget() decimal.Decimal {
	if !c.Budget.Valid {
		return decimal.Zero
	}
	return c.Budget.Decimal
}

// Debit subtracts amount from the budget. A NULL budget stays NULL.
func (c *Club) Debit(amount decimal.Decimal) {
	if c.Budget.Valid {
		c.Budget.Decimal = c.Budget.Decimal.Sub(amount)
	}
}

// Credit adds amount to the budget. A NULL budget stays NULL.
func (c *Club) Credit(amount decimal.Decimal) {
	if c.Budget.Valid {
		c.Budget.Decimal = c.Budget.Decimal.Add(amount)
	}
}

// NewBudget wraps a decimal as a non-NULL budget or market value
func NewBudget(amount decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: amount, Valid: true}
}
