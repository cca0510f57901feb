package request_models

import "rihla/internal/models/itinerary_models"

type SaveItineraryRequest struct {
	City    string                          `json:"city"`
	Country string                          `json:"country"`
	Days    []itinerary_models.ItineraryDay `json:"days" binding:"required"`
}

type FeedbackRequest struct {
	Feedback string `json:"feedback" binding:"required,oneof=helpful not_helpful"`
}
