package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"companion-matcher/internal/apperr"
	"companion-matcher/internal/config"
	"companion-matcher/internal/models"
	"companion-matcher/internal/store"
	"companion-matcher/internal/websocket"
)

type MessageHandler struct {
	messages      *store.MessageStore
	conversations *store.ConversationStore
	directory     *store.Directory
	cfg           *config.Config
	hub           *websocket.Hub
}

func NewMessageHandler(messages *store.MessageStore, conversations *store.ConversationStore,
	directory *store.Directory, cfg *config.Config, hub *websocket.Hub) *MessageHandler {
	return &MessageHandler{
		messages:      messages,
		conversations: conversations,
		directory:     directory,
		cfg:           cfg,
		hub:           hub,
	}
}

func (h *MessageHandler) SendMessage(c *gin.Context) {
	sender := c.Param("username")

	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.SendMessageResponse{
			Success: false,
			Message: "Sender, receiver, and content are required",
		})
		return
	}

	message, err := h.messages.Send(sender, req.ReceiverUsername, req.Content)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindInternal {
			logrus.WithError(err).Error("send message failed")
		}
		c.JSON(apperr.StatusOf(err), models.SendMessageResponse{
			Success: false,
			Message: apperr.MessageOf(err),
		})
		return
	}

	h.broadcastMessage(message)

	c.JSON(http.StatusCreated, models.SendMessageResponse{
		Success:     true,
		Message:     "Message sent successfully",
		MessageData: message,
	})
}

func (h *MessageHandler) GetConversations(c *gin.Context) {
	username := c.Param("username")

	if _, ok := h.directory.Get(username); !ok {
		c.JSON(http.StatusNotFound, models.GetConversationsResponse{
			Conversations: []models.ConversationWithUser{},
		})
		return
	}

	c.JSON(http.StatusOK, models.GetConversationsResponse{
		Conversations: h.conversations.ListFor(username),
	})
}

func (h *MessageHandler) GetMessages(c *gin.Context) {
	username := c.Param("username")
	conversationID := c.Param("conversationId")

	limit := parsePositiveInt(c.Query("limit"), h.cfg.DefaultPageSize)
	if limit > h.cfg.MaxPageSize {
		limit = h.cfg.MaxPageSize
	}
	offset := parseNonNegativeInt(c.Query("offset"), 0)

	page, err := h.messages.List(username, conversationID, limit, offset)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindInternal {
			logrus.WithError(err).Error("list messages failed")
		}
		c.JSON(apperr.StatusOf(err), models.GetMessagesResponse{
			Messages:      []models.Message{},
			TotalMessages: 0,
			HasMore:       false,
		})
		return
	}

	c.JSON(http.StatusOK, models.GetMessagesResponse{
		Messages:      page.Messages,
		TotalMessages: page.Total,
		HasMore:       page.HasMore,
	})
}

func (h *MessageHandler) MarkAsRead(c *gin.Context) {
	username := c.Param("username")
	conversationID := c.Param("conversationId")

	updated, err := h.messages.MarkRead(username, conversationID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindInternal {
			logrus.WithError(err).Error("mark read failed")
		}
		c.JSON(apperr.StatusOf(err), models.MarkReadResponse{
			Success: false,
			Message: apperr.MessageOf(err),
		})
		return
	}

	c.JSON(http.StatusOK, models.MarkReadResponse{
		Success: true,
		Message: fmt.Sprintf("Marked %d messages as read", updated),
	})
}

// broadcastMessage pushes the new message to websocket subscribers of its
// conversation. Best effort only.
func (h *MessageHandler) broadcastMessage(message *models.Message) {
	if h.hub == nil {
		return
	}

	event := websocket.Event{
		Type:           "message",
		ConversationID: message.ConversationID,
		Sender:         message.SenderID,
		Payload:        message,
	}
	if data, err := json.Marshal(event); err == nil {
		h.hub.BroadcastToConversation(message.ConversationID, data)
	}
}

func parsePositiveInt(raw string, fallback int) int {
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func parseNonNegativeInt(raw string, fallback int) int {
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
