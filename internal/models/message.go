package models

import "time"

// Message is one entry in a conversation's append-only log. Identity fields
// never change after creation; only Read flips, and only from false to true.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	SenderID       string    `json:"senderId"`
	ReceiverID     string    `json:"receiverId"`
	Content        string    `json:"content"`
	Timestamp      time.Time `json:"timestamp"`
	Read           bool      `json:"read"`
}

// Conversation is the canonical thread for an unordered participant pair.
// Its ID is the two lower-cased participant names sorted lexicographically
// and joined by "_"; clients construct this form directly.
type Conversation struct {
	ID           string    `json:"id"`
	Participants [2]string `json:"participants"`
	LastMessage  *Message  `json:"lastMessage,omitempty"`
	LastActivity time.Time `json:"lastActivity"`
}

// ConversationWithUser is a conversation as listed for one participant, with
// the other participant's profile resolved. UnreadCount is a placeholder and
// is not derived from the message store.
type ConversationWithUser struct {
	ID           string      `json:"id"`
	OtherUser    UserProfile `json:"otherUser"`
	LastMessage  *Message    `json:"lastMessage,omitempty"`
	LastActivity time.Time   `json:"lastActivity"`
	UnreadCount  int         `json:"unreadCount"`
}

type SendMessageRequest struct {
	ReceiverUsername string `json:"receiverUsername" binding:"required"`
	Content          string `json:"content" binding:"required"`
}

type SendMessageResponse struct {
	Success     bool     `json:"success"`
	Message     string   `json:"message"`
	MessageData *Message `json:"messageData,omitempty"`
}

type GetConversationsResponse struct {
	Conversations []ConversationWithUser `json:"conversations"`
}

type GetMessagesResponse struct {
	Messages      []Message `json:"messages"`
	TotalMessages int       `json:"totalMessages"`
	HasMore       bool      `json:"hasMore"`
}

type MarkReadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
