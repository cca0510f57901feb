package db_models

import (
	"encoding/json"

	"github.com/google/uuid"
)

type Conversation struct {
	BaseModel
	OwnerID string `gorm:"index;not null"`
	IsGuest bool   `gorm:"default:false"`
	Title   string `gorm:"size:100"`

	Messages  []Message  `gorm:"constraint:OnDelete:CASCADE"`
	Itinerary *Itinerary `gorm:"constraint:OnDelete:CASCADE"`
}

type Message struct {
	BaseModel
	ConversationID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Role           string          `gorm:"size:16;not null"`
	Content        string          `gorm:"type:text"`
	Metadata       json.RawMessage `gorm:"type:jsonb"`
}

// Itinerary is the denormalized latest plan of a conversation; at most one per conversation.
type Itinerary struct {
	BaseModel
	ConversationID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	City           string
	Country        string
	Days           json.RawMessage `gorm:"type:jsonb"`
	TotalCost      float64
}
