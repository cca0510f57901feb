package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"rihla/internal/models/request_models"
	"rihla/internal/services"
	"rihla/pkg/middleware"
	"rihla/pkg/utils"
)

type ConversationController struct {
	conversationService services.ConversationServiceInterface
}

func NewConversationController(conversationService services.ConversationServiceInterface) *ConversationController {
	return &ConversationController{conversationService: conversationService}
}

// List godoc
// @Summary List conversations
// @Description Conversations of the caller, most recently updated first
// @Tags Conversations
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]response_models.ConversationResponse}
// @Router /conversations [get]
func (ctl *ConversationController) List(c *gin.Context) {
	ownerID, _ := middleware.Owner(c)
	conversations, err := ctl.conversationService.ListConversations(c.Request.Context(), ownerID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, conversations, "Conversations fetched successfully")
}

// Create godoc
// @Summary Create a conversation
// @Tags Conversations
// @Accept json
// @Produce json
// @Param request body request_models.CreateConversationRequest true "Title"
// @Success 201 {object} utils.APIResponse{data=response_models.ConversationResponse}
// @Router /conversations [post]
func (ctl *ConversationController) Create(c *gin.Context) {
	var req request_models.CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "title is required")
		return
	}

	ownerID, isGuest := middleware.Owner(c)
	conversation, err := ctl.conversationService.CreateConversation(c.Request.Context(), ownerID, isGuest, req.Title)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, conversation, "Conversation created")
}

// Rename godoc
// @Summary Rename a conversation
// @Tags Conversations
// @Accept json
// @Produce json
// @Param id path string true "Conversation ID"
// @Param request body request_models.RenameConversationRequest true "New title"
// @Success 200 {object} utils.APIResponse{data=response_models.ConversationResponse}
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /conversations/{id} [patch]
func (ctl *ConversationController) Rename(c *gin.Context) {
	var req request_models.RenameConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "title is required")
		return
	}

	ownerID, _ := middleware.Owner(c)
	conversation, err := ctl.conversationService.RenameConversation(c.Request.Context(), ownerID, c.Param("id"), req.Title)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, conversation, "Conversation renamed")
}

// Delete godoc
// @Summary Delete a conversation
// @Description Deletes the conversation with its messages and itinerary
// @Tags Conversations
// @Param id path string true "Conversation ID"
// @Success 200 {object} utils.APIResponse
// @Router /conversations/{id} [delete]
func (ctl *ConversationController) Delete(c *gin.Context) {
	ownerID, _ := middleware.Owner(c)
	if err := ctl.conversationService.DeleteConversation(c.Request.Context(), ownerID, c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Conversation deleted")
}

// Messages godoc
// @Summary List messages
// @Description Messages of a conversation, oldest first
// @Tags Conversations
// @Param id path string true "Conversation ID"
// @Success 200 {object} utils.APIResponse{data=[]response_models.MessageResponse}
// @Router /conversations/{id}/messages [get]
func (ctl *ConversationController) Messages(c *gin.Context) {
	ownerID, _ := middleware.Owner(c)
	messages, err := ctl.conversationService.ListMessages(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, messages, "Messages fetched successfully")
}
