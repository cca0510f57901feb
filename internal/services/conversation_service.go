package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"rihla/internal/models/db_models"
	"rihla/internal/models/itinerary_models"
	"rihla/internal/models/request_models"
	"rihla/internal/models/response_models"
	"rihla/internal/repositories"
	"rihla/pkg/utils"
)

const (
	titlePreviewRunes = 50
	maxTitleRunes     = 100
	maxSuggestions    = 3
	maxItineraryDays  = 30
)

type ConversationServiceInterface interface {
	CreateConversation(ctx context.Context, ownerID string, isGuest bool, title string) (*response_models.ConversationResponse, error)
	ListConversations(ctx context.Context, ownerID string) ([]response_models.ConversationResponse, error)
	RenameConversation(ctx context.Context, ownerID, conversationID, title string) (*response_models.ConversationResponse, error)
	DeleteConversation(ctx context.Context, ownerID, conversationID string) error
	ListMessages(ctx context.Context, ownerID, conversationID string) ([]response_models.MessageResponse, error)

	GetItinerary(ctx context.Context, ownerID, conversationID string) (*response_models.ItineraryResponse, error)
	SaveItinerary(ctx context.Context, ownerID, conversationID string, req request_models.SaveItineraryRequest) (*response_models.ItineraryResponse, error)
	Suggestions(ctx context.Context, ownerID, conversationID string) ([]string, error)
}

type ConversationService struct {
	convRepo  repositories.ConversationRepository
	analytics AnalyticsServiceInterface
	templates *PromptTemplates
}

func NewConversationService(
	convRepo repositories.ConversationRepository,
	analytics AnalyticsServiceInterface,
	templates *PromptTemplates,
) ConversationServiceInterface {
	return &ConversationService{
		convRepo:  convRepo,
		analytics: analytics,
		templates: templates,
	}
}

func (s *ConversationService) CreateConversation(ctx context.Context, ownerID string, isGuest bool, title string) (*response_models.ConversationResponse, error) {
	title, err := cleanTitle(title)
	if err != nil {
		return nil, err
	}

	conversation := &db_models.Conversation{OwnerID: ownerID, IsGuest: isGuest, Title: title}
	if err := s.convRepo.CreateConversation(ctx, conversation); err != nil {
		return nil, fmt.Errorf("%w: create conversation: %v", utils.ErrDatabaseError, err)
	}
	return toConversationResponse(conversation), nil
}

func (s *ConversationService) ListConversations(ctx context.Context, ownerID string) ([]response_models.ConversationResponse, error) {
	conversations, err := s.convRepo.ListConversations(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: list conversations: %v", utils.ErrDatabaseError, err)
	}

	out := make([]response_models.ConversationResponse, 0, len(conversations))
	for i := range conversations {
		out = append(out, *toConversationResponse(&conversations[i]))
	}
	return out, nil
}

func (s *ConversationService) RenameConversation(ctx context.Context, ownerID, conversationID, title string) (*response_models.ConversationResponse, error) {
	conversation, err := authorizeConversation(ctx, s.convRepo, ownerID, conversationID)
	if err != nil {
		return nil, err
	}
	title, err = cleanTitle(title)
	if err != nil {
		return nil, err
	}

	if err := s.convRepo.UpdateTitle(ctx, conversation.ID, title); err != nil {
		return nil, fmt.Errorf("%w: rename conversation: %v", utils.ErrDatabaseError, err)
	}
	conversation.Title = title
	conversation.UpdatedAt = utils.NowUnixMillis()
	return toConversationResponse(conversation), nil
}

func (s *ConversationService) DeleteConversation(ctx context.Context, ownerID, conversationID string) error {
	conversation, err := authorizeConversation(ctx, s.convRepo, ownerID, conversationID)
	if err != nil {
		return err
	}

	if err := s.convRepo.DeleteConversation(ctx, conversation.ID); err != nil {
		return fmt.Errorf("%w: delete conversation: %v", utils.ErrDatabaseError, err)
	}
	s.analytics.TrackConversationDeleted(ctx, ownerID, conversation.ID.String())
	return nil
}

func (s *ConversationService) ListMessages(ctx context.Context, ownerID, conversationID string) ([]response_models.MessageResponse, error) {
	conversation, err := authorizeConversation(ctx, s.convRepo, ownerID, conversationID)
	if err != nil {
		return nil, err
	}

	messages, err := s.convRepo.ListMessages(ctx, conversation.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: list messages: %v", utils.ErrDatabaseError, err)
	}

	out := make([]response_models.MessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, response_models.MessageResponse{
			ID:        m.ID.String(),
			Role:      m.Role,
			Content:   m.Content,
			Metadata:  m.Metadata,
			CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}

func (s *ConversationService) GetItinerary(ctx context.Context, ownerID, conversationID string) (*response_models.ItineraryResponse, error) {
	conversation, err := authorizeConversation(ctx, s.convRepo, ownerID, conversationID)
	if err != nil {
		return nil, err
	}

	itinerary, err := s.convRepo.FindItinerary(ctx, conversation.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: find itinerary: %v", utils.ErrDatabaseError, err)
	}
	if itinerary == nil {
		return nil, utils.ErrItineraryNotFound
	}
	return toItineraryResponse(itinerary)
}

// SaveItinerary replaces the stored itinerary with the client-edited copy.
func (s *ConversationService) SaveItinerary(ctx context.Context, ownerID, conversationID string, req request_models.SaveItineraryRequest) (*response_models.ItineraryResponse, error) {
	conversation, err := authorizeConversation(ctx, s.convRepo, ownerID, conversationID)
	if err != nil {
		return nil, err
	}
	if len(req.Days) == 0 || len(req.Days) > maxItineraryDays {
		return nil, fmt.Errorf("%w: an itinerary needs between 1 and %d days", utils.ErrInvalidInput, maxItineraryDays)
	}

	city := strings.TrimSpace(req.City)
	country := strings.TrimSpace(req.Country)
	if city != "" && country == "" {
		if place, ok := PlaceByCity(city); ok {
			country = place.Country
		}
	}

	itinerary, err := newItineraryRecord(conversation.ID, city, country, req.Days)
	if err != nil {
		return nil, err
	}
	if err := s.convRepo.UpsertItinerary(ctx, itinerary); err != nil {
		return nil, fmt.Errorf("%w: save itinerary: %v", utils.ErrDatabaseError, err)
	}
	if err := s.convRepo.TouchConversation(ctx, conversation.ID); err != nil {
		log.Printf("conversation %s: touch failed: %v", conversation.ID, err)
	}

	s.analytics.TrackItineraryEdited(ctx, ownerID, conversation.ID.String(), "manual_save")
	return toItineraryResponse(itinerary)
}

// Suggestions returns the localized follow-up prompts in the language of the last user message.
func (s *ConversationService) Suggestions(ctx context.Context, ownerID, conversationID string) ([]string, error) {
	conversation, err := authorizeConversation(ctx, s.convRepo, ownerID, conversationID)
	if err != nil {
		return nil, err
	}

	messages, err := s.convRepo.ListMessages(ctx, conversation.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: list messages: %v", utils.ErrDatabaseError, err)
	}

	lang := request_models.LanguageEnglish
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == request_models.RoleUser {
			lang = DetectLanguage(messages[i].Content)
			break
		}
	}

	suggestions := s.templates.For(lang).Suggestions
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return append([]string{}, suggestions...), nil
}

// ConversationTitle previews the first message: its first 50 characters, with an ellipsis when cut.
func ConversationTitle(firstMessage string) string {
	text := strings.Join(strings.Fields(firstMessage), " ")
	if utf8.RuneCountInString(text) <= titlePreviewRunes {
		return text
	}
	return string([]rune(text)[:titlePreviewRunes]) + "…"
}

func cleanTitle(title string) (string, error) {
	title = strings.Join(strings.Fields(title), " ")
	if title == "" {
		return "", fmt.Errorf("%w: title must not be empty", utils.ErrInvalidInput)
	}
	if utf8.RuneCountInString(title) > maxTitleRunes {
		title = string([]rune(title)[:maxTitleRunes])
	}
	return title, nil
}

// authorizeConversation loads a conversation and checks that ownerID owns it.
func authorizeConversation(ctx context.Context, repo repositories.ConversationRepository, ownerID, conversationID string) (*db_models.Conversation, error) {
	id, err := uuid.Parse(conversationID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed conversation id", utils.ErrInvalidInput)
	}

	conversation, err := repo.FindConversation(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: find conversation: %v", utils.ErrDatabaseError, err)
	}
	if conversation == nil {
		return nil, utils.ErrConversationNotFound
	}
	if conversation.OwnerID != ownerID {
		return nil, utils.ErrForbidden
	}
	return conversation, nil
}

func newItineraryRecord(conversationID uuid.UUID, city, country string, days []itinerary_models.ItineraryDay) (*db_models.Itinerary, error) {
	days = itinerary_models.NormalizeDays(days)
	encoded, err := json.Marshal(days)
	if err != nil {
		return nil, fmt.Errorf("%w: encode itinerary: %v", utils.ErrInvalidInput, err)
	}
	return &db_models.Itinerary{
		ConversationID: conversationID,
		City:           city,
		Country:        country,
		Days:           encoded,
		TotalCost:      itinerary_models.TotalCost(days),
	}, nil
}

func toConversationResponse(c *db_models.Conversation) *response_models.ConversationResponse {
	return &response_models.ConversationResponse{
		ID:        c.ID.String(),
		Title:     c.Title,
		IsGuest:   c.IsGuest,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toItineraryResponse(it *db_models.Itinerary) (*response_models.ItineraryResponse, error) {
	days := []itinerary_models.ItineraryDay{}
	if len(it.Days) > 0 {
		if err := json.Unmarshal(it.Days, &days); err != nil {
			return nil, fmt.Errorf("%w: decode stored itinerary: %v", utils.ErrDatabaseError, err)
		}
	}
	return &response_models.ItineraryResponse{
		ConversationID: it.ConversationID.String(),
		City:           it.City,
		Country:        it.Country,
		Days:           days,
		TotalCost:      it.TotalCost,
		UpdatedAt:      it.UpdatedAt,
	}, nil
}
