package response_models

// DayPlan is one day of a recovered itinerary.
type DayPlan struct {
	Day       int    `json:"day"`
	Summary   string `json:"summary"`
	Morning   string `json:"morning"`
	Afternoon string `json:"afternoon"`
	Evening   string `json:"evening"`
}

// Itinerary keeps the order the model produced; day numbers are not renumbered.
type Itinerary []DayPlan

// ItineraryResult is what a request handler hands back to the presentation layer.
// The caller owns it; nothing in the service keeps a copy.
type ItineraryResult struct {
	Destination   string    `json:"destination"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	Budget        string    `json:"budget"`
	Interests     []string  `json:"interests"`
	RequestedDays int       `json:"requested_days"`
	TripLength    int       `json:"trip_length"`
	Provider      string    `json:"provider,omitempty"`
	Model         string    `json:"model,omitempty"`
	Days          Itinerary `json:"days"`
}

type PromptPreview struct {
	Prompt   string `json:"prompt"`
	DayCount int    `json:"day_count"`
}

type RecoveredItinerary struct {
	TripLength int       `json:"trip_length"`
	Days       Itinerary `json:"days"`
}

type TripOptions struct {
	BudgetTiers      []string `json:"budget_tiers"`
	DefaultBudget    string   `json:"default_budget"`
	Interests        []string `json:"interests"`
	DefaultInterests []string `json:"default_interests"`
}

type HealthStatus struct {
	Status       string `json:"status"`
	APIConnected bool   `json:"api_connected"`
	Provider     string `json:"provider"`
	Model        string `json:"model"`
}
