package controllers_fx

import (
	"go.uber.org/fx"
	"rihla/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewChatController),
	fx.Provide(controllers.NewConversationController),
	fx.Provide(controllers.NewItineraryController),
	fx.Provide(controllers.NewFeedbackController))
