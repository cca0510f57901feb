package response_models

import (
	"encoding/json"

	"rihla/internal/models/itinerary_models"
)

type ConversationResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	IsGuest   bool   `json:"is_guest"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

type MessageResponse struct {
	ID        string          `json:"id"`
	Role      string          `json:"role"`
	Content   string          `json:"content"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt int64           `json:"created_at"`
}

type ItineraryResponse struct {
	ConversationID string                          `json:"conversation_id"`
	City           string                          `json:"city"`
	Country        string                          `json:"country"`
	Days           []itinerary_models.ItineraryDay `json:"days"`
	TotalCost      float64                         `json:"total_cost"`
	UpdatedAt      int64                           `json:"updated_at"`
}

type DestinationCount struct {
	Destination string `json:"destination"`
	Count       int64  `json:"count"`
}

type AnalyticsSummary struct {
	MessagesSent         int64              `json:"messages_sent"`
	ItinerariesGenerated int64              `json:"itineraries_generated"`
	SuccessRate          float64            `json:"success_rate"`
	AverageResponseMs    float64            `json:"average_response_ms"`
	HelpfulFeedback      int64              `json:"helpful_feedback"`
	NotHelpfulFeedback   int64              `json:"not_helpful_feedback"`
	TopDestinations      []DestinationCount `json:"top_destinations"`
}
