package db_models

import (
	"github.com/lib/pq"
)

type InteractionType string

const (
	InteractionMessageSent         InteractionType = "message_sent"
	InteractionItineraryGenerated  InteractionType = "itinerary_generated"
	InteractionItineraryEdited     InteractionType = "itinerary_edited"
	InteractionFeedbackGiven       InteractionType = "feedback_given"
	InteractionConversationDeleted InteractionType = "conversation_deleted"
)

// Interaction is one analytics event. Only the columns relevant to the type are filled.
type Interaction struct {
	BaseModel
	OwnerID        string          `gorm:"index"`
	Type           InteractionType `gorm:"size:32;index;not null"`
	Content        string          `gorm:"type:text"`
	ConversationID *string         `gorm:"type:uuid"`
	MessageID      *string         `gorm:"type:uuid"`
	MessageLength  int
	Destination    string `gorm:"index"`
	TripDuration   int
	TripType       string
	BudgetTier     string
	GroupSize      int
	Interests      pq.StringArray `gorm:"type:text[]"`
	Success        bool
	ResponseTimeMs int64
	EditType       string
	Feedback       string `gorm:"size:16"`
}
