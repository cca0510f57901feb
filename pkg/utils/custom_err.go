package utils

import "errors"

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrConversationNotFound   = errors.New("conversation not found")
	ErrMessageNotFound        = errors.New("message not found")
	ErrItineraryNotFound      = errors.New("itinerary not found")
	ErrForbidden              = errors.New("forbidden")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrDatabaseError          = errors.New("database error")
	ErrUnexpectedBehaviorOfAI = errors.New("unexpected behavior of AI")
	ErrRateLimited            = errors.New("too many requests")
)
