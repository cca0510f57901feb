package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"rihla/internal/models/db_models"
	"rihla/internal/models/itinerary_models"
	"rihla/internal/models/request_models"
	"rihla/internal/models/response_models"
	"rihla/internal/repositories"
	"rihla/pkg/utils"
)

const maxMessageRunes = 2000

type PlannerServiceInterface interface {
	SendMessage(ctx context.Context, ownerID string, isGuest bool, req request_models.ChatRequest) (*response_models.ChatResponse, error)
	Interpret(message string) request_models.TravelRequest
}

type PlannerService struct {
	convRepo  repositories.ConversationRepository
	generator utils.TextGenerator
	templates *PromptTemplates
	analytics AnalyticsServiceInterface
}

func NewPlannerService(
	convRepo repositories.ConversationRepository,
	generator utils.TextGenerator,
	templates *PromptTemplates,
	analytics AnalyticsServiceInterface,
) PlannerServiceInterface {
	return &PlannerService{
		convRepo:  convRepo,
		generator: generator,
		templates: templates,
		analytics: analytics,
	}
}

// messageMetadata is stored alongside assistant messages so the client can redraw the plan.
type messageMetadata struct {
	Itinerary []itinerary_models.ItineraryDay `json:"itinerary,omitempty"`
	City      string                          `json:"city,omitempty"`
	Country   string                          `json:"country,omitempty"`
	Source    response_models.ReplySource     `json:"source"`
}

func (s *PlannerService) Interpret(message string) request_models.TravelRequest {
	return Interpret(message)
}

// SendMessage runs one chat turn: store the user message, ask the generator
// with the recent history, store and return the parsed reply.
func (s *PlannerService) SendMessage(ctx context.Context, ownerID string, isGuest bool, req request_models.ChatRequest) (*response_models.ChatResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, fmt.Errorf("%w: message must not be empty", utils.ErrInvalidInput)
	}
	if utf8.RuneCountInString(message) > maxMessageRunes {
		return nil, fmt.Errorf("%w: message is longer than %d characters", utils.ErrInvalidInput, maxMessageRunes)
	}

	conversation, err := s.resolveConversation(ctx, ownerID, isGuest, req.ConversationID, message)
	if err != nil {
		return nil, err
	}
	conversationID := conversation.ID.String()

	stored, err := s.convRepo.ListMessages(ctx, conversation.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: load history: %v", utils.ErrDatabaseError, err)
	}
	history := toTurns(stored)

	userMessage := &db_models.Message{
		ConversationID: conversation.ID,
		Role:           request_models.RoleUser,
		Content:        message,
	}
	if err := s.convRepo.CreateMessage(ctx, userMessage); err != nil {
		return nil, fmt.Errorf("%w: store user message: %v", utils.ErrDatabaseError, err)
	}
	s.analytics.TrackMessageSent(ctx, ownerID, conversationID, message)

	travel := Interpret(message)
	if len(history) > 0 {
		s.carryOverPlan(ctx, conversation.ID, message, &travel)
	}

	prompt := BuildPrompt(travel, message, history, s.templates.Instructions)

	start := time.Now()
	raw, genErr := s.generator.Complete(ctx, prompt)
	elapsed := time.Since(start)

	var reply response_models.ParsedAIReply
	if genErr != nil {
		log.Printf("planner: generation failed for conversation %s after %s: %v", conversationID, elapsed.Round(time.Millisecond), genErr)
		reply = response_models.ParsedAIReply{
			Content: s.templates.For(travel.Language).Apology,
			Source:  response_models.SourceFallback,
		}
	} else {
		reply = ParseReply(raw)
	}

	if reply.HasItinerary() {
		if strings.TrimSpace(reply.Content) == "" {
			reply.Content = s.templates.For(travel.Language).ItineraryReady
		}
		if reply.City == "" && travel.HasDestination() {
			reply.City = travel.Destination
			reply.Country = travel.Country
		}
	}

	assistantMessage, err := s.storeReply(ctx, conversation.ID, reply)
	if err != nil {
		return nil, err
	}

	totalCost := itinerary_models.TotalCost(reply.Itinerary)
	if len(reply.Itinerary) > 0 {
		itinerary, err := newItineraryRecord(conversation.ID, reply.City, reply.Country, reply.Itinerary)
		if err == nil {
			err = s.convRepo.UpsertItinerary(ctx, itinerary)
		}
		if err != nil {
			log.Printf("planner: failed to save itinerary for conversation %s: %v", conversationID, err)
		}
	}

	if err := s.convRepo.TouchConversation(ctx, conversation.ID); err != nil {
		log.Printf("planner: failed to touch conversation %s: %v", conversationID, err)
	}

	destination := reply.City
	if destination == "" {
		destination = travel.Destination
	}
	s.analytics.TrackItineraryGenerated(ctx, ownerID, Generation{
		ConversationID: conversationID,
		Request:        travel,
		Destination:    destination,
		Success:        genErr == nil && len(reply.Itinerary) > 0,
		Elapsed:        elapsed,
	})

	return &response_models.ChatResponse{
		ConversationID: conversationID,
		MessageID:      assistantMessage.ID.String(),
		Reply:          reply,
		Request:        travel,
		TotalCost:      totalCost,
	}, nil
}

func (s *PlannerService) resolveConversation(ctx context.Context, ownerID string, isGuest bool, conversationID, firstMessage string) (*db_models.Conversation, error) {
	if conversationID != "" {
		return authorizeConversation(ctx, s.convRepo, ownerID, conversationID)
	}

	conversation := &db_models.Conversation{
		OwnerID: ownerID,
		IsGuest: isGuest,
		Title:   ConversationTitle(firstMessage),
	}
	if err := s.convRepo.CreateConversation(ctx, conversation); err != nil {
		return nil, fmt.Errorf("%w: create conversation: %v", utils.ErrDatabaseError, err)
	}
	return conversation, nil
}

// carryOverPlan fills what a follow-up leaves out from the conversation's saved itinerary.
func (s *PlannerService) carryOverPlan(ctx context.Context, conversationID uuid.UUID, message string, travel *request_models.TravelRequest) {
	if travel.HasDestination() && travel.FollowUp == request_models.FollowUpNone {
		return
	}

	saved, err := s.convRepo.FindItinerary(ctx, conversationID)
	if err != nil {
		log.Printf("planner: failed to load itinerary of %s: %v", conversationID, err)
		return
	}
	if saved == nil {
		return
	}

	if !travel.HasDestination() && saved.City != "" {
		travel.Destination = saved.City
		travel.Country = saved.Country
	}
	if _, stated := StatedDays(message); !stated {
		var days []json.RawMessage
		if err := json.Unmarshal(saved.Days, &days); err == nil && len(days) > 0 {
			travel.Days = len(days)
		}
	}
}

func (s *PlannerService) storeReply(ctx context.Context, conversationID uuid.UUID, reply response_models.ParsedAIReply) (*db_models.Message, error) {
	metadata, err := json.Marshal(messageMetadata{
		Itinerary: reply.Itinerary,
		City:      reply.City,
		Country:   reply.Country,
		Source:    reply.Source,
	})
	if err != nil {
		return nil, fmt.Errorf("encode reply metadata: %w", err)
	}

	message := &db_models.Message{
		ConversationID: conversationID,
		Role:           request_models.RoleAssistant,
		Content:        reply.Content,
		Metadata:       metadata,
	}
	if err := s.convRepo.CreateMessage(ctx, message); err != nil {
		return nil, fmt.Errorf("%w: store assistant message: %v", utils.ErrDatabaseError, err)
	}
	return message, nil
}

func toTurns(messages []db_models.Message) []request_models.ConversationTurn {
	turns := make([]request_models.ConversationTurn, 0, len(messages))
	for _, m := range messages {
		turns = append(turns, request_models.ConversationTurn{Role: m.Role, Content: m.Content})
	}
	return turns
}
