package services

import (
	"errors"
	"strings"
	"testing"
	"time"
	"travelgenie/internal/models/request_models"
	"travelgenie/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := utils.ParseDate(value)
	require.NoError(t, err)
	return d
}

func createTestTrip(t *testing.T, budget request_models.BudgetTier, start, end string) request_models.TripRequest {
	t.Helper()
	return request_models.TripRequest{
		Destination: "Kyoto",
		StartDate:   date(t, start),
		EndDate:     date(t, end),
		Budget:      budget,
		Interests:   []string{"temples", "food", "nature"},
	}
}

func TestBuildPrompt_ContainsRequestDetails(t *testing.T) {
	for _, tier := range request_models.BudgetTiers {
		t.Run(string(tier), func(t *testing.T) {
			trip := createTestTrip(t, tier, "2025-04-01", "2025-04-05")

			prompt, err := BuildPrompt(trip)
			require.NoError(t, err)

			assert.Contains(t, prompt, "Kyoto")
			assert.Contains(t, prompt, "2025-04-01")
			assert.Contains(t, prompt, "2025-04-05")
			assert.Contains(t, prompt, "temples, food, nature")
			assert.Contains(t, prompt, "5-day travel itinerary")
			assert.Contains(t, prompt, "all 5 days")
			assert.Contains(t, prompt, "specializing in "+string(tier)+" travel")
			for _, field := range []string{`"day"`, `"summary"`, `"morning"`, `"afternoon"`, `"evening"`} {
				assert.Contains(t, prompt, field)
			}
			assert.Contains(t, prompt, "JSON array")
			assert.Contains(t, prompt, "can be parsed")
		})
	}
}

func TestBuildPrompt_EmbedsExactlyOneMatchingExample(t *testing.T) {
	for _, tier := range request_models.BudgetTiers {
		t.Run(string(tier), func(t *testing.T) {
			prompt, err := BuildPrompt(createTestTrip(t, tier, "2025-04-01", "2025-04-03"))
			require.NoError(t, err)

			for _, other := range request_models.BudgetTiers {
				example, ok := BudgetExample(other)
				require.True(t, ok)
				if other == tier {
					assert.Equal(t, 1, strings.Count(prompt, example))
				} else {
					assert.NotContains(t, prompt, example)
				}
			}
		})
	}
}

func TestBuildPrompt_ExampleToneMatchesTier(t *testing.T) {
	budget, _ := BudgetExample(request_models.BudgetTierBudget)
	moderate, _ := BudgetExample(request_models.BudgetTierModerate)
	luxury, _ := BudgetExample(request_models.BudgetTierLuxury)

	assert.Contains(t, budget, "hostel")
	assert.Contains(t, budget, "street food")
	assert.Contains(t, moderate, "mid-range")
	assert.Contains(t, luxury, "5-star")
	assert.Contains(t, luxury, "Michelin")
}

func TestBuildPrompt_SingleDay(t *testing.T) {
	prompt, err := BuildPrompt(createTestTrip(t, request_models.BudgetTierModerate, "2025-04-01", "2025-04-01"))
	require.NoError(t, err)

	assert.Contains(t, prompt, "1-day travel itinerary")
	assert.Contains(t, prompt, "all 1 days")
	assert.Contains(t, prompt, "JSON array of 1 day objects")
}

func TestBuildPrompt_InvalidRange(t *testing.T) {
	trip := createTestTrip(t, request_models.BudgetTierLuxury, "2025-04-05", "2025-04-01")

	prompt, err := BuildPrompt(trip)
	assert.Empty(t, prompt)
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrInvalidDateRange))

	var rangeErr *utils.InvalidRangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, "2025-04-05", utils.FormatDate(rangeErr.Start))
	assert.Equal(t, "2025-04-01", utils.FormatDate(rangeErr.End))
}

func TestBuildPrompt_UnknownTier(t *testing.T) {
	_, err := BuildPrompt(createTestTrip(t, request_models.BudgetTier("backpacker"), "2025-04-01", "2025-04-02"))
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	trip := createTestTrip(t, request_models.BudgetTierBudget, "2025-12-30", "2026-01-02")

	first, err := BuildPrompt(trip)
	require.NoError(t, err)
	second, err := BuildPrompt(trip)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "4-day travel itinerary")
}
