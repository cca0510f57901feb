package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"rihla/internal/models/request_models"
	"rihla/internal/services"
	"rihla/pkg/middleware"
	"rihla/pkg/utils"
)

type FeedbackController struct {
	analyticsService services.AnalyticsServiceInterface
}

func NewFeedbackController(analyticsService services.AnalyticsServiceInterface) *FeedbackController {
	return &FeedbackController{analyticsService: analyticsService}
}

// AddFeedback godoc
// @Summary Rate an assistant reply
// @Tags Feedback
// @Accept json
// @Produce json
// @Param id path string true "Message ID"
// @Param request body request_models.FeedbackRequest true "helpful or not_helpful"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /messages/{id}/feedback [post]
func (f *FeedbackController) AddFeedback(c *gin.Context) {
	var req request_models.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "feedback must be helpful or not_helpful")
		return
	}

	ownerID, _ := middleware.Owner(c)
	if err := f.analyticsService.AddFeedback(c.Request.Context(), ownerID, c.Param("id"), req.Feedback); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Feedback added successfully")
}

// Summary godoc
// @Summary Usage summary
// @Description Totals, success rate and top destinations of the caller
// @Tags Feedback
// @Produce json
// @Success 200 {object} utils.APIResponse{data=response_models.AnalyticsSummary}
// @Router /analytics/summary [get]
func (f *FeedbackController) Summary(c *gin.Context) {
	ownerID, _ := middleware.Owner(c)
	summary, err := f.analyticsService.Summary(c.Request.Context(), ownerID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, summary, "Summary fetched successfully")
}
