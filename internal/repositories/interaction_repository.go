package repositories

import (
	"context"

	"gorm.io/gorm"
	"rihla/internal/models/db_models"
)

type InteractionRepository interface {
	CreateInteraction(ctx context.Context, interaction *db_models.Interaction) error

	CountByType(ctx context.Context, ownerID string, kind db_models.InteractionType) (int64, error)
	CountSuccessfulGenerations(ctx context.Context, ownerID string) (int64, error)
	AverageResponseTime(ctx context.Context, ownerID string) (float64, error)
	CountFeedback(ctx context.Context, ownerID string, feedback string) (int64, error)
	TopDestinations(ctx context.Context, ownerID string, limit int) ([]DestinationRow, error)
}

type DestinationRow struct {
	Destination string `gorm:"column:destination"`
	Count       int64  `gorm:"column:count"`
}

type interactionRepository struct {
	db *gorm.DB
}

func NewInteractionRepository(db *gorm.DB) InteractionRepository {
	return &interactionRepository{db: db}
}

func (r *interactionRepository) CreateInteraction(ctx context.Context, interaction *db_models.Interaction) error {
	return r.db.WithContext(ctx).Create(interaction).Error
}

func (r *interactionRepository) owned(ctx context.Context, ownerID string) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&db_models.Interaction{}).
		Where("owner_id = ?", ownerID)
}

func (r *interactionRepository) CountByType(ctx context.Context, ownerID string, kind db_models.InteractionType) (int64, error) {
	var n int64
	err := r.owned(ctx, ownerID).Where("type = ?", kind).Count(&n).Error
	return n, err
}

func (r *interactionRepository) CountSuccessfulGenerations(ctx context.Context, ownerID string) (int64, error) {
	var n int64
	err := r.owned(ctx, ownerID).
		Where("type = ? AND success = ?", db_models.InteractionItineraryGenerated, true).
		Count(&n).Error
	return n, err
}

func (r *interactionRepository) AverageResponseTime(ctx context.Context, ownerID string) (float64, error) {
	var avg float64
	err := r.owned(ctx, ownerID).
		Where("type = ?", db_models.InteractionItineraryGenerated).
		Select("COALESCE(AVG(response_time_ms), 0)").
		Scan(&avg).Error
	return avg, err
}

func (r *interactionRepository) CountFeedback(ctx context.Context, ownerID string, feedback string) (int64, error) {
	var n int64
	err := r.owned(ctx, ownerID).
		Where("type = ? AND feedback = ?", db_models.InteractionFeedbackGiven, feedback).
		Count(&n).Error
	return n, err
}

func (r *interactionRepository) TopDestinations(ctx context.Context, ownerID string, limit int) ([]DestinationRow, error) {
	var rows []DestinationRow
	err := r.owned(ctx, ownerID).
		Select("destination, COUNT(*) AS count").
		Where("type = ?", db_models.InteractionItineraryGenerated).
		Where("destination <> ''").
		Group("destination").
		Order("count DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
