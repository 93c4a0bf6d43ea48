package service

import (
	"github.com/shopspring/decimal"
)

// LimitStatus is the result of a single-category limit check.
type LimitStatus struct {
	CategoryID   int16
	CategoryName string
	LimitValue   decimal.Decimal
	TotalSpent   decimal.Decimal
	Exceeded     bool
}
