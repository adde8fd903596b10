// Package models defines the turn contract exchanged with the outer
// request layer.
package models

// TurnRequest is one inbound user turn. SessionID may be empty; the engine
// then generates a time-plus-random token and returns it in the response.
type TurnRequest struct {
	SessionID string `json:"sessionId,omitempty"`
	Message   string `json:"message"`
	UserID    string `json:"userId,omitempty"`
}

// TurnResponse is the assembled reply for one turn.
type TurnResponse struct {
	Message         string        `json:"message"`
	QuickReplies    []ReplyOption `json:"quickReplies,omitempty"`
	RequiresInput   bool          `json:"requiresInput"`
	InputType       string        `json:"inputType,omitempty"`
	SessionID       string        `json:"sessionId"`
	NextState       StateType     `json:"nextState"`
	EndConversation bool          `json:"endConversation"`
}

// APIResponse is the generic success/error envelope for non-turn endpoints.
type APIResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Result  any    `json:"result,omitempty"`
}

// Success builds a success envelope carrying a result value.
func Success(result any) APIResponse {
	return APIResponse{Status: "ok", Result: result}
}

// Error builds an error envelope with the given message.
func Error(message string) APIResponse {
	return APIResponse{Status: "error", Message: message}
}
