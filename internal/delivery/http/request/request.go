package request

import "github.com/user/salesbot-service/internal/domain"

// ChatRequest is the body posted by the widget to /api/chat.
type ChatRequest struct {
	Message        string               `json:"message"`
	PageData       *domain.ProductFacts `json:"pageData"`
	RobotName      string               `json:"robotName"`
	ConversationID string               `json:"conversationId"`
}
