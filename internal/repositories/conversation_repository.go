package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"rihla/internal/models/db_models"
	"rihla/pkg/utils"
)

type ConversationRepository interface {
	CreateConversation(ctx context.Context, conversation *db_models.Conversation) error
	FindConversation(ctx context.Context, id uuid.UUID) (*db_models.Conversation, error)
	ListConversations(ctx context.Context, ownerID string) ([]db_models.Conversation, error)
	UpdateTitle(ctx context.Context, id uuid.UUID, title string) error
	TouchConversation(ctx context.Context, id uuid.UUID) error
	DeleteConversation(ctx context.Context, id uuid.UUID) error

	CreateMessage(ctx context.Context, message *db_models.Message) error
	FindMessage(ctx context.Context, id uuid.UUID) (*db_models.Message, error)
	ListMessages(ctx context.Context, conversationID uuid.UUID) ([]db_models.Message, error)

	UpsertItinerary(ctx context.Context, itinerary *db_models.Itinerary) error
	FindItinerary(ctx context.Context, conversationID uuid.UUID) (*db_models.Itinerary, error)
}

type conversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) CreateConversation(ctx context.Context, conversation *db_models.Conversation) error {
	return r.db.WithContext(ctx).Create(conversation).Error
}

// FindConversation returns nil, nil when the conversation does not exist.
func (r *conversationRepository) FindConversation(ctx context.Context, id uuid.UUID) (*db_models.Conversation, error) {
	var conversation db_models.Conversation
	err := r.db.WithContext(ctx).First(&conversation, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conversation, nil
}

func (r *conversationRepository) ListConversations(ctx context.Context, ownerID string) ([]db_models.Conversation, error) {
	var conversations []db_models.Conversation
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("updated_at DESC").
		Find(&conversations).Error
	return conversations, err
}

func (r *conversationRepository) UpdateTitle(ctx context.Context, id uuid.UUID, title string) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Conversation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"title": title, "updated_at": utils.NowUnixMillis()}).Error
}

func (r *conversationRepository) TouchConversation(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Conversation{}).
		Where("id = ?", id).
		Update("updated_at", utils.NowUnixMillis()).Error
}

// DeleteConversation removes the conversation together with its messages and itinerary.
func (r *conversationRepository) DeleteConversation(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("conversation_id = ?", id).Delete(&db_models.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("conversation_id = ?", id).Delete(&db_models.Itinerary{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&db_models.Conversation{}).Error
	})
}

func (r *conversationRepository) CreateMessage(ctx context.Context, message *db_models.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *conversationRepository) FindMessage(ctx context.Context, id uuid.UUID) (*db_models.Message, error) {
	var message db_models.Message
	err := r.db.WithContext(ctx).First(&message, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}

func (r *conversationRepository) ListMessages(ctx context.Context, conversationID uuid.UUID) ([]db_models.Message, error) {
	var messages []db_models.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

// UpsertItinerary replaces the conversation's itinerary wholesale.
func (r *conversationRepository) UpsertItinerary(ctx context.Context, itinerary *db_models.Itinerary) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "conversation_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"city", "country", "days", "total_cost", "updated_at"}),
		}).
		Create(itinerary).Error
}

func (r *conversationRepository) FindItinerary(ctx context.Context, conversationID uuid.UUID) (*db_models.Itinerary, error) {
	var itinerary db_models.Itinerary
	err := r.db.WithContext(ctx).First(&itinerary, "conversation_id = ?", conversationID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &itinerary, nil
}
