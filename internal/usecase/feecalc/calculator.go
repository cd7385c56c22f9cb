package feecalc

import (
	"github.com/shopspring/decimal"
	"github.com/simaogato/transfermarket-backend/internal/domain"
)

// DefaultBaseFee is used when the player has no market value
var DefaultBaseFee = decimal.NewFromInt(1000000)

// Calculator computes transfer fees
type Calculator struct{}

// NewCalculator creates a new Calculator instance
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Calculate returns the transfer fee for moving player to buyer under the given clauses
// Logic:
//  1. Base fee = player's market value, or DefaultBaseFee when it is NULL
//  2. For each clause, in order:
//     - SELL_ON (any case) with a percentage: add base * percentage / 100
//     - otherwise, with an amount: add the amount
//     - otherwise: nothing
//
// Percentages always scale the base fee, never the running total.
// buyer does not take part in the arithmetic yet; it is reserved for club-specific adjustments.
func (c *Calculator) Calculate(player *domain.Player, buyer *domain.Club, clauses []domain.ContractClause) decimal.Decimal {
	baseFee := BaseFee(player)
	total := baseFee

	for _, clause := range clauses {
		total = total.Add(clauseContribution(baseFee, clause))
	}

	return total
}

// BaseFee returns the anchor for percentage clauses
func BaseFee(player *domain.Player) decimal.Decimal {
	if player == nil || !player.CurrentMarketValue.Valid {
		return DefaultBaseFee
	}
	return player.CurrentMarketValue.Decimal
}

func clauseContribution(baseFee decimal.Decimal, clause domain.ContractClause) decimal.Decimal {
	if clause.IsSellOn() && clause.Percentage.Valid {
		// Shift(-2) divides by 100 exactly, no rounding involved
		return baseFee.Mul(clause.Percentage.Decimal).Shift(-2)
	}
	if clause.Amount.Valid {
		return clause.Amount.Decimal
	}
	return decimal.Zero
}
