// Package dto provides Data Transfer Objects for API requests and responses.
package dto

// ChatRequest represents the request body for POST /api/chat.
type ChatRequest struct {
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"sessionId"`
}

// SendRequest represents the request body for POST /api/send.
type SendRequest struct {
	Number  string `json:"number" binding:"required"`
	Message string `json:"message" binding:"required"`
}
