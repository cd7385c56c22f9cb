package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ClauseTypeSellOn is the only clause type with percentage semantics
const ClauseTypeSellOn = "SELL_ON"

// ContractClause is a request-scoped fee modifier. It is never persisted.
// Type is free-form; only SELL_ON (any case) is recognized.
type ContractClause struct {
	Type       string
	Percentage decimal.NullDecimal
	Amount     decimal.NullDecimal
}

// IsSellOn reports whether the clause is a sell-on clause
func (c ContractClause) IsSellOn() bool {
	return strings.EqualFold(c.Type, ClauseTypeSellOn)
}
