package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"rihla/internal/models/request_models"
	"rihla/internal/services"
	"rihla/pkg/middleware"
	"rihla/pkg/utils"
)

type ChatController struct {
	plannerService services.PlannerServiceInterface
}

func NewChatController(plannerService services.PlannerServiceInterface) *ChatController {
	return &ChatController{
		plannerService: plannerService,
	}
}

// SendMessage godoc
// @Summary Send a chat message
// @Description Interprets the message, asks the travel assistant and returns its reply with any itinerary
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body request_models.ChatRequest true "Chat message"
// @Success 200 {object} utils.APIResponse{data=response_models.ChatResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Router /chat [post]
func (ctl *ChatController) SendMessage(c *gin.Context) {
	var req request_models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "message is required")
		return
	}

	ownerID, isGuest := middleware.Owner(c)
	resp, err := ctl.plannerService.SendMessage(c.Request.Context(), ownerID, isGuest, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Reply generated")
}

// Interpret godoc
// @Summary Interpret a message
// @Description Returns the travel request extracted from a message without calling the assistant
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body request_models.InterpretRequest true "Message"
// @Success 200 {object} utils.APIResponse{data=request_models.TravelRequest}
// @Router /interpret [post]
func (ctl *ChatController) Interpret(c *gin.Context) {
	var req request_models.InterpretRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "message is required")
		return
	}

	utils.RespondSuccess(c, ctl.plannerService.Interpret(req.Message), "Message interpreted")
}
