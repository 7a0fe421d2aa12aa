package cpi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkravets/cpi-worker/internal/domain"
)

// fp is a shortcut for building the nullable numeric fields in test data.
func fp(v float64) *float64 {
	return &v
}

func TestCalculate_NoResultOutcomes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data domain.RequestData
	}{
		{
			name: "nil categories",
			data: domain.RequestData{},
		},
		{
			name: "empty categories",
			data: domain.RequestData{Categories: []domain.Category{}},
		},
		{
			name: "zero total spend",
			data: domain.RequestData{Categories: []domain.Category{
				{ID: "1", UserSpent: fp(0), BasePrice: fp(100)},
				{ID: "2", UserSpent: nil, BasePrice: fp(50)},
			}},
		},
		{
			name: "no valid category",
			data: domain.RequestData{Categories: []domain.Category{
				{ID: "1", UserSpent: fp(100), BasePrice: fp(0)},
				{ID: "2", UserSpent: fp(50), BasePrice: nil},
			}},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			outcome := Calculate("req-1", tc.data)

			assert.Equal(t, "req-1", outcome.ID)
			assert.False(t, outcome.Success)
			assert.Nil(t, outcome.PersonalCPI)
		})
	}
}

func TestCalculate_SingleCategory(t *testing.T) {
	t.Parallel()

	// weight = 1.0, change = (150-100)/100 = 0.5 -> 50.00%
	data := domain.RequestData{Categories: []domain.Category{
		{ID: "1", UserSpent: fp(150), BasePrice: fp(100)},
	}}

	outcome := Calculate("req-1", data)

	require.True(t, outcome.Success)
	require.NotNil(t, outcome.PersonalCPI)
	assert.InDelta(t, 50.00, *outcome.PersonalCPI, 0.001)
}

func TestCalculate_TwoCategories(t *testing.T) {
	t.Parallel()

	// A: weight 0.5, change 0 -> contributes 0.
	// B: weight 0.5, change 1.0 -> contributes 0.5. Total 50.00%.
	data := domain.RequestData{Categories: []domain.Category{
		{ID: "a", UserSpent: fp(50), BasePrice: fp(50)},
		{ID: "b", UserSpent: fp(50), BasePrice: fp(25)},
	}}

	outcome := Calculate("req-2", data)

	require.True(t, outcome.Success)
	require.NotNil(t, outcome.PersonalCPI)
	assert.InDelta(t, 50.00, *outcome.PersonalCPI, 0.001)
}

func TestCalculate_SkippedCategoryWeightNotRedistributed(t *testing.T) {
	t.Parallel()

	// The skipped category still counts toward totalSpent, so the valid
	// category keeps weight 0.5 rather than being renormalized to 1.0.
	data := domain.RequestData{Categories: []domain.Category{
		{ID: "skipped", UserSpent: fp(100), BasePrice: fp(0)},
		{ID: "valid", UserSpent: fp(100), BasePrice: fp(50)},
	}}

	outcome := Calculate("req-3", data)

	require.True(t, outcome.Success)
	require.NotNil(t, outcome.PersonalCPI)
	assert.InDelta(t, 50.00, *outcome.PersonalCPI, 0.001)
}

func TestCalculate_NegativeChange(t *testing.T) {
	t.Parallel()

	// Prices fell: change = (80-100)/100 = -0.2 -> -20.00%.
	data := domain.RequestData{Categories: []domain.Category{
		{ID: "1", UserSpent: fp(80), BasePrice: fp(100)},
	}}

	outcome := Calculate("req-4", data)

	require.True(t, outcome.Success)
	require.NotNil(t, outcome.PersonalCPI)
	assert.InDelta(t, -20.00, *outcome.PersonalCPI, 0.001)
}

func TestCalculate_RoundsToTwoDecimalPlaces(t *testing.T) {
	t.Parallel()

	// change = (100-30)/30 = 2.3333... -> 233.33% after rounding.
	data := domain.RequestData{Categories: []domain.Category{
		{ID: "1", UserSpent: fp(100), BasePrice: fp(30)},
	}}

	outcome := Calculate("req-5", data)

	require.True(t, outcome.Success)
	require.NotNil(t, outcome.PersonalCPI)
	assert.InDelta(t, 233.33, *outcome.PersonalCPI, 0.001)
}

func TestCalculate_IsPure(t *testing.T) {
	t.Parallel()

	data := domain.RequestData{
		Categories: []domain.Category{
			{ID: "a", UserSpent: fp(120), BasePrice: fp(100)},
			{ID: "b", UserSpent: fp(30), BasePrice: fp(40)},
		},
		ComparisonDate: "2024-01-01",
	}

	first := Calculate("req-6", data)
	second := Calculate("req-6", data)

	require.True(t, first.Success)
	require.True(t, second.Success)
	assert.Equal(t, *first.PersonalCPI, *second.PersonalCPI)

	// Inputs must be untouched.
	assert.Equal(t, 120.0, data.Categories[0].Spent())
	assert.Equal(t, 40.0, data.Categories[1].Base())
}
