package services

import (
	"fmt"
	"strings"
	"travelgenie/internal/models/request_models"
	"travelgenie/pkg/utils"
)

// budgetExamples holds one worked day per tier. Adding a tier means adding an entry here.
var budgetExamples = map[request_models.BudgetTier]string{
	request_models.BudgetTierBudget: `{
  "day": 1,
  "summary": "Arrival and local exploration",
  "morning": "Check into a budget-friendly hostel near the train station.",
  "afternoon": "Free walking tour of the historical district.",
  "evening": "Dinner at a popular local street food market."
}`,
	request_models.BudgetTierModerate: `{
  "day": 1,
  "summary": "Arrival and cultural immersion",
  "morning": "Check into a comfortable mid-range hotel.",
  "afternoon": "Visit main cultural attractions with audio guide.",
  "evening": "Dinner at a well-reviewed local restaurant."
}`,
	request_models.BudgetTierLuxury: `{
  "day": 1,
  "summary": "Arrival and indulgence in local gourmet",
  "morning": "Check into a 5-star ryokan in Gion.",
  "afternoon": "Explore Nishiki Market with a private food guide.",
  "evening": "Dinner at Michelin-starred Kikunoi."
}`,
}

// BudgetExample returns the worked example for a tier.
func BudgetExample(tier request_models.BudgetTier) (string, bool) {
	example, ok := budgetExamples[tier]
	return example, ok
}

// BuildPrompt renders the planning instruction for a trip. It has no side effects.
func BuildPrompt(request request_models.TripRequest) (string, error) {
	prompt, _, err := buildPrompt(request)
	return prompt, err
}

// buildPrompt also returns the inclusive day count the prompt asks for.
func buildPrompt(request request_models.TripRequest) (string, int, error) {
	dayCount, err := utils.DayCount(request.StartDate, request.EndDate)
	if err != nil {
		return "", 0, err
	}

	example, ok := BudgetExample(request.Budget)
	if !ok {
		return "", 0, fmt.Errorf("%w: no example for budget tier %q", utils.ErrInvalidInput, request.Budget)
	}

	startDate := utils.FormatDate(request.StartDate)
	endDate := utils.FormatDate(request.EndDate)

	var prompt strings.Builder
	fmt.Fprintf(&prompt, "You are a professional travel planner specializing in %s travel experiences.\n\n", request.Budget)
	fmt.Fprintf(&prompt, "Create a detailed %d-day travel itinerary for %s from %s to %s.\n\n",
		dayCount, request.Destination, startDate, endDate)
	fmt.Fprintf(&prompt, "The traveler is particularly interested in: %s\n", strings.Join(request.Interests, ", "))
	fmt.Fprintf(&prompt, "Budget level: %s\n\n", request.Budget)

	prompt.WriteString("For each day, generate a JSON object with the following structure:\n")
	prompt.WriteString(`{
  "day": [day number, integer starting at 1],
  "summary": [brief summary of the day, string],
  "morning": [detailed morning activity, string],
  "afternoon": [detailed afternoon activity, string],
  "evening": [detailed evening activity, string]
}`)
	prompt.WriteString("\n\nHere is an example of how to structure each day for the selected budget level:\n\n")
	fmt.Fprintf(&prompt, "Style: %s\nOutput:\n%s\n\n", request.Budget, example)

	fmt.Fprintf(&prompt, "For this traveler, create a complete itinerary with all %d days following this style and structure.\n", dayCount)
	fmt.Fprintf(&prompt, "Return the results as a JSON array of %d day objects, with one object per day.\n", dayCount)
	prompt.WriteString("Make sure all JSON is properly formatted and can be parsed.\n")

	return prompt.String(), dayCount, nil
}
