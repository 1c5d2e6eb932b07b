package request_models

import (
	"fmt"
	"strings"
	"time"
	"travelgenie/pkg/utils"
)

type BudgetTier string

const (
	BudgetTierBudget   BudgetTier = "budget"
	BudgetTierModerate BudgetTier = "moderate"
	BudgetTierLuxury   BudgetTier = "luxury"
)

// BudgetTiers is ordered from cheapest to most expensive.
var BudgetTiers = []BudgetTier{BudgetTierBudget, BudgetTierModerate, BudgetTierLuxury}

func (b BudgetTier) Valid() bool {
	for _, tier := range BudgetTiers {
		if b == tier {
			return true
		}
	}
	return false
}

func ParseBudgetTier(value string) (BudgetTier, error) {
	tier := BudgetTier(strings.ToLower(strings.TrimSpace(value)))
	if !tier.Valid() {
		return "", fmt.Errorf("%w: budget must be one of budget, moderate, luxury", utils.ErrInvalidInput)
	}
	return tier, nil
}

// TripRequest is a validated set of travel preferences. Build it with NewTripRequest
// or CreateItineraryRequest.ToTripRequest and treat it as a value.
type TripRequest struct {
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	Budget      BudgetTier
	Interests   []string
}

func NewTripRequest(destination string, start, end time.Time, budget BudgetTier, interests []string) (TripRequest, error) {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return TripRequest{}, fmt.Errorf("%w: please enter a destination", utils.ErrInvalidInput)
	}
	if !budget.Valid() {
		return TripRequest{}, fmt.Errorf("%w: budget must be one of budget, moderate, luxury", utils.ErrInvalidInput)
	}
	cleaned := normalizeInterests(interests)
	if len(cleaned) == 0 {
		return TripRequest{}, fmt.Errorf("%w: please select at least one interest", utils.ErrInvalidInput)
	}
	start, end = utils.CalendarDate(start), utils.CalendarDate(end)
	if _, err := utils.DayCount(start, end); err != nil {
		return TripRequest{}, err
	}

	return TripRequest{
		Destination: destination,
		StartDate:   start,
		EndDate:     end,
		Budget:      budget,
		Interests:   cleaned,
	}, nil
}

// normalizeInterests trims entries, drops blanks and keeps the first occurrence of duplicates.
func normalizeInterests(interests []string) []string {
	seen := make(map[string]bool, len(interests))
	var out []string
	for _, interest := range interests {
		interest = strings.TrimSpace(interest)
		key := strings.ToLower(interest)
		if interest == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, interest)
	}
	return out
}

// CreateItineraryRequest is the JSON body accepted by the itinerary endpoints.
type CreateItineraryRequest struct {
	Destination string   `json:"destination"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Budget      string   `json:"budget"`
	Interests   []string `json:"interests"`
}

func (r CreateItineraryRequest) ToTripRequest() (TripRequest, error) {
	start, err := utils.ParseDate(r.StartDate)
	if err != nil {
		return TripRequest{}, err
	}
	end, err := utils.ParseDate(r.EndDate)
	if err != nil {
		return TripRequest{}, err
	}
	budget := BudgetTierModerate
	if strings.TrimSpace(r.Budget) != "" {
		if budget, err = ParseBudgetTier(r.Budget); err != nil {
			return TripRequest{}, err
		}
	}
	return NewTripRequest(r.Destination, start, end, budget, r.Interests)
}

type RecoverItineraryRequest struct {
	RawText string `json:"raw_text"`
}
