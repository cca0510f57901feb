package services

import (
	"context"
	"fmt"
	"log"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"rihla/internal/models/db_models"
	"rihla/internal/models/request_models"
	"rihla/internal/models/response_models"
	"rihla/internal/repositories"
	"rihla/pkg/utils"
)

const (
	FeedbackHelpful    = "helpful"
	FeedbackNotHelpful = "not_helpful"

	topDestinationsLimit = 5
)

// Generation describes one planner turn for analytics.
type Generation struct {
	ConversationID string
	Request        request_models.TravelRequest
	Destination    string
	Success        bool
	Elapsed        time.Duration
}

// AnalyticsServiceInterface records usage. Track methods never fail the caller.
type AnalyticsServiceInterface interface {
	TrackMessageSent(ctx context.Context, ownerID, conversationID, content string)
	TrackItineraryGenerated(ctx context.Context, ownerID string, g Generation)
	TrackItineraryEdited(ctx context.Context, ownerID, conversationID, editType string)
	TrackConversationDeleted(ctx context.Context, ownerID, conversationID string)

	AddFeedback(ctx context.Context, ownerID, messageID, feedback string) error
	Summary(ctx context.Context, ownerID string) (*response_models.AnalyticsSummary, error)
}

type AnalyticsService struct {
	interactionRepo repositories.InteractionRepository
	convRepo        repositories.ConversationRepository
}

func NewAnalyticsService(
	interactionRepo repositories.InteractionRepository,
	convRepo repositories.ConversationRepository,
) AnalyticsServiceInterface {
	return &AnalyticsService{
		interactionRepo: interactionRepo,
		convRepo:        convRepo,
	}
}

func (s *AnalyticsService) TrackMessageSent(ctx context.Context, ownerID, conversationID, content string) {
	s.track(ctx, &db_models.Interaction{
		OwnerID:        ownerID,
		Type:           db_models.InteractionMessageSent,
		Content:        content,
		ConversationID: optionalID(conversationID),
		MessageLength:  utf8.RuneCountInString(content),
	})
}

func (s *AnalyticsService) TrackItineraryGenerated(ctx context.Context, ownerID string, g Generation) {
	s.track(ctx, &db_models.Interaction{
		OwnerID:        ownerID,
		Type:           db_models.InteractionItineraryGenerated,
		ConversationID: optionalID(g.ConversationID),
		Destination:    g.Destination,
		TripDuration:   g.Request.Days,
		TripType:       string(g.Request.TripType),
		BudgetTier:     string(g.Request.BudgetTier),
		GroupSize:      g.Request.GroupSize,
		Interests:      g.Request.InterestNames(),
		Success:        g.Success,
		ResponseTimeMs: g.Elapsed.Milliseconds(),
	})
}

func (s *AnalyticsService) TrackItineraryEdited(ctx context.Context, ownerID, conversationID, editType string) {
	s.track(ctx, &db_models.Interaction{
		OwnerID:        ownerID,
		Type:           db_models.InteractionItineraryEdited,
		ConversationID: optionalID(conversationID),
		EditType:       editType,
	})
}

func (s *AnalyticsService) TrackConversationDeleted(ctx context.Context, ownerID, conversationID string) {
	s.track(ctx, &db_models.Interaction{
		OwnerID:        ownerID,
		Type:           db_models.InteractionConversationDeleted,
		ConversationID: optionalID(conversationID),
	})
}

// AddFeedback rates an assistant message of a conversation the caller owns.
func (s *AnalyticsService) AddFeedback(ctx context.Context, ownerID, messageID, feedback string) error {
	if feedback != FeedbackHelpful && feedback != FeedbackNotHelpful {
		return fmt.Errorf("%w: feedback must be %q or %q", utils.ErrInvalidInput, FeedbackHelpful, FeedbackNotHelpful)
	}

	id, err := uuid.Parse(messageID)
	if err != nil {
		return fmt.Errorf("%w: malformed message id", utils.ErrInvalidInput)
	}
	message, err := s.convRepo.FindMessage(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: find message: %v", utils.ErrDatabaseError, err)
	}
	if message == nil {
		return utils.ErrMessageNotFound
	}
	if message.Role != request_models.RoleAssistant {
		return fmt.Errorf("%w: only assistant replies can be rated", utils.ErrInvalidInput)
	}
	if _, err := authorizeConversation(ctx, s.convRepo, ownerID, message.ConversationID.String()); err != nil {
		return err
	}

	interaction := &db_models.Interaction{
		OwnerID:        ownerID,
		Type:           db_models.InteractionFeedbackGiven,
		ConversationID: optionalID(message.ConversationID.String()),
		MessageID:      optionalID(messageID),
		Feedback:       feedback,
	}
	if err := s.interactionRepo.CreateInteraction(ctx, interaction); err != nil {
		return fmt.Errorf("%w: store feedback: %v", utils.ErrDatabaseError, err)
	}
	return nil
}

func (s *AnalyticsService) Summary(ctx context.Context, ownerID string) (*response_models.AnalyticsSummary, error) {
	sent, err := s.interactionRepo.CountByType(ctx, ownerID, db_models.InteractionMessageSent)
	if err != nil {
		return nil, fmt.Errorf("%w: count messages: %v", utils.ErrDatabaseError, err)
	}
	generated, err := s.interactionRepo.CountByType(ctx, ownerID, db_models.InteractionItineraryGenerated)
	if err != nil {
		return nil, fmt.Errorf("%w: count generations: %v", utils.ErrDatabaseError, err)
	}
	succeeded, err := s.interactionRepo.CountSuccessfulGenerations(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: count successes: %v", utils.ErrDatabaseError, err)
	}
	avg, err := s.interactionRepo.AverageResponseTime(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: average response time: %v", utils.ErrDatabaseError, err)
	}
	helpful, err := s.interactionRepo.CountFeedback(ctx, ownerID, FeedbackHelpful)
	if err != nil {
		return nil, fmt.Errorf("%w: count feedback: %v", utils.ErrDatabaseError, err)
	}
	notHelpful, err := s.interactionRepo.CountFeedback(ctx, ownerID, FeedbackNotHelpful)
	if err != nil {
		return nil, fmt.Errorf("%w: count feedback: %v", utils.ErrDatabaseError, err)
	}
	rows, err := s.interactionRepo.TopDestinations(ctx, ownerID, topDestinationsLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: top destinations: %v", utils.ErrDatabaseError, err)
	}

	summary := &response_models.AnalyticsSummary{
		MessagesSent:         sent,
		ItinerariesGenerated: generated,
		AverageResponseMs:    avg,
		HelpfulFeedback:      helpful,
		NotHelpfulFeedback:   notHelpful,
		TopDestinations:      make([]response_models.DestinationCount, 0, len(rows)),
	}
	if generated > 0 {
		summary.SuccessRate = float64(succeeded) / float64(generated)
	}
	for _, row := range rows {
		summary.TopDestinations = append(summary.TopDestinations, response_models.DestinationCount{
			Destination: row.Destination,
			Count:       row.Count,
		})
	}
	return summary, nil
}

func (s *AnalyticsService) track(ctx context.Context, interaction *db_models.Interaction) {
	if err := s.interactionRepo.CreateInteraction(ctx, interaction); err != nil {
		log.Printf("analytics: failed to track %s for %s: %v", interaction.Type, interaction.OwnerID, err)
	}
}

func optionalID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
