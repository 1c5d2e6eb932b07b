package request_models

// InterestOptions are the interests offered by the planner form. Other values are still accepted.
var InterestOptions = []string{
	"architecture", "art", "beaches", "culture", "family", "festivals",
	"food", "hiking", "history", "museums", "nature", "nightlife",
	"photography", "shopping", "temples", "wildlife",
}

var DefaultInterests = []string{"nature", "food"}

const DefaultBudgetTier = BudgetTierModerate
