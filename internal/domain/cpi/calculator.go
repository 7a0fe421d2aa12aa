package cpi

import (
	"github.com/shopspring/decimal"

	"github.com/mkravets/cpi-worker/internal/domain"
)

// percent scales the accumulated index into a percentage value.
var percent = decimal.NewFromInt(100)

// Calculate computes the personal CPI for one application.
//
// For every category with userSpent > 0 and basePrice > 0:
//
//	weight = userSpent / totalSpent
//	change = (userSpent - basePrice) / basePrice
//	index += weight * change
//
// Categories failing the condition are skipped entirely; their weights
// are not redistributed among the remaining ones, so the weights of the
// valid categories may sum to less than 1. The result is index * 100
// rounded to two decimal places, halves rounded away from zero.
//
// The outcome carries Success=false (and a nil PersonalCPI) when the
// category list is empty, total spend is zero, or no category passes
// the validity condition.
func Calculate(id string, data domain.RequestData) domain.CalculationOutcome {
	if len(data.Categories) == 0 {
		return domain.FailedOutcome(id)
	}

	totalSpent := decimal.Zero
	for _, cat := range data.Categories {
		totalSpent = totalSpent.Add(decimal.NewFromFloat(cat.Spent()))
	}
	if !totalSpent.IsPositive() {
		return domain.FailedOutcome(id)
	}

	index := decimal.Zero
	hasValidCategory := false
	for _, cat := range data.Categories {
		spent := decimal.NewFromFloat(cat.Spent())
		base := decimal.NewFromFloat(cat.Base())
		if !spent.IsPositive() || !base.IsPositive() {
			continue
		}

		weight := spent.Div(totalSpent)
		change := spent.Sub(base).Div(base)
		index = index.Add(weight.Mul(change))
		hasValidCategory = true
	}

	if !hasValidCategory {
		return domain.FailedOutcome(id)
	}

	personalCPI, _ := index.Mul(percent).Round(2).Float64()
	return domain.CalculationOutcome{
		ID:          id,
		PersonalCPI: &personalCPI,
		Success:     true,
	}
}
