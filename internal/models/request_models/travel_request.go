package request_models

type Interest string

const (
	InterestCulture    Interest = "culture"
	InterestFood       Interest = "food"
	InterestShopping   Interest = "shopping"
	InterestNature     Interest = "nature"
	InterestAdventure  Interest = "adventure"
	InterestRelaxation Interest = "relaxation"
)

type TripType string

const (
	TripFamily    TripType = "family"
	TripRomantic  TripType = "romantic"
	TripAdventure TripType = "adventure"
	TripBusiness  TripType = "business"
	TripBeach     TripType = "beach"
	TripCultural  TripType = "cultural"
	TripGeneral   TripType = "general"
)

type BudgetTier string

const (
	BudgetLow    BudgetTier = "low"
	BudgetMedium BudgetTier = "medium"
	BudgetHigh   BudgetTier = "high"
)

type Language string

const (
	LanguageArabic  Language = "ar"
	LanguageEnglish Language = "en"
)

// FollowUp classifies a message sent after an itinerary already exists.
type FollowUp string

const (
	FollowUpNone   FollowUp = "none"
	FollowUpModify FollowUp = "modify"
	FollowUpBudget FollowUp = "budget"
)

const (
	DefaultDays      = 3
	MaxDays          = 365
	DefaultGroupSize = 2
)

// TravelRequest is derived from a single user message and never persisted.
// An empty Destination means no gazetteer city was found.
type TravelRequest struct {
	Destination string     `json:"destination,omitempty"`
	Country     string     `json:"country,omitempty"`
	Days        int        `json:"days"`
	Interests   []Interest `json:"interests"`
	TripType    TripType   `json:"trip_type"`
	BudgetTier  BudgetTier `json:"budget_tier"`
	GroupSize   int        `json:"group_size"`
	Language    Language   `json:"language"`
	FollowUp    FollowUp   `json:"follow_up"`
}

func (r TravelRequest) HasDestination() bool {
	return r.Destination != ""
}

func (r TravelRequest) InterestNames() []string {
	names := make([]string, 0, len(r.Interests))
	for _, i := range r.Interests {
		names = append(names, string(i))
	}
	return names
}
