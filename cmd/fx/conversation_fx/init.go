package conversation_fx

import (
	"go.uber.org/fx"
	"rihla/internal/services"
)

var Module = fx.Provide(services.NewConversationService)
