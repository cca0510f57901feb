package response_models

import (
	"rihla/internal/models/itinerary_models"
	"rihla/internal/models/request_models"
)

// ReplySource records which path produced a ParsedAIReply.
type ReplySource string

const (
	// SourceStructured means a structured block was decoded from the reply.
	SourceStructured ReplySource = "structured"
	// SourceProse means no block decoded; only prose and gazetteer hits are available.
	SourceProse ReplySource = "prose"
	// SourceFallback means the generator failed and Content is a canned apology.
	SourceFallback ReplySource = "fallback"
)

// ParsedAIReply is always returned by the reply parser. A nil Itinerary
// means none was found; an empty, non-nil one means the block carried [].
type ParsedAIReply struct {
	Content   string                          `json:"content"`
	Itinerary []itinerary_models.ItineraryDay `json:"itinerary"`
	City      string                          `json:"city,omitempty"`
	Country   string                          `json:"country,omitempty"`
	Source    ReplySource                     `json:"source"`
}

func (r ParsedAIReply) HasItinerary() bool {
	return r.Itinerary != nil
}

type ChatResponse struct {
	ConversationID string                       `json:"conversation_id"`
	MessageID      string                       `json:"message_id"`
	Reply          ParsedAIReply                `json:"reply"`
	Request        request_models.TravelRequest `json:"request"`
	TotalCost      float64                      `json:"total_cost"`
}
