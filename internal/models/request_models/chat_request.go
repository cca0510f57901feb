package request_models

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type ConversationTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	ConversationID string `json:"conversation_id"`
	Message        string `json:"message" binding:"required"`
}

type InterpretRequest struct {
	Message string `json:"message" binding:"required"`
}

type CreateConversationRequest struct {
	Title string `json:"title" binding:"required"`
}

type RenameConversationRequest struct {
	Title string `json:"title" binding:"required"`
}
