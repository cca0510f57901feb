package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"rihla/internal/models/request_models"
	"rihla/internal/services"
	"rihla/pkg/middleware"
	"rihla/pkg/utils"
)

type ItineraryController struct {
	conversationService services.ConversationServiceInterface
}

func NewItineraryController(conversationService services.ConversationServiceInterface) *ItineraryController {
	return &ItineraryController{conversationService: conversationService}
}

// Get godoc
// @Summary Get the saved itinerary
// @Tags Itinerary
// @Param id path string true "Conversation ID"
// @Success 200 {object} utils.APIResponse{data=response_models.ItineraryResponse}
// @Failure 404 {object} utils.APIResponse
// @Router /conversations/{id}/itinerary [get]
func (ctl *ItineraryController) Get(c *gin.Context) {
	ownerID, _ := middleware.Owner(c)
	itinerary, err := ctl.conversationService.GetItinerary(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, itinerary, "Itinerary fetched successfully")
}

// Save godoc
// @Summary Replace the saved itinerary
// @Description Stores the client-edited itinerary; costs are re-sanitized and the total recomputed
// @Tags Itinerary
// @Accept json
// @Param id path string true "Conversation ID"
// @Param request body request_models.SaveItineraryRequest true "Itinerary"
// @Success 200 {object} utils.APIResponse{data=response_models.ItineraryResponse}
// @Router /conversations/{id}/itinerary [put]
func (ctl *ItineraryController) Save(c *gin.Context) {
	var req request_models.SaveItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid itinerary payload")
		return
	}

	ownerID, _ := middleware.Owner(c)
	itinerary, err := ctl.conversationService.SaveItinerary(c.Request.Context(), ownerID, c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, itinerary, "Itinerary saved")
}

// Suggestions godoc
// @Summary Modification suggestions
// @Tags Itinerary
// @Param id path string true "Conversation ID"
// @Success 200 {object} utils.APIResponse{data=[]string}
// @Router /conversations/{id}/suggestions [get]
func (ctl *ItineraryController) Suggestions(c *gin.Context) {
	ownerID, _ := middleware.Owner(c)
	suggestions, err := ctl.conversationService.Suggestions(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, suggestions, "Suggestions fetched successfully")
}
