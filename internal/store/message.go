package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"companion-matcher/internal/apperr"
	"companion-matcher/internal/models"
)

// MessageStore owns the append-only message log. Appends are serialized
// through a single writer lock so that, within a conversation, messages are
// applied in the order received and the conversation's last-message reference
// and last-activity timestamp are never observed out of step.
type MessageStore struct {
	mu             sync.RWMutex
	byConversation map[string][]*models.Message
	conversations  *ConversationStore
	directory      *Directory
	maxLength      int
}

func NewMessageStore(directory *Directory, conversations *ConversationStore, maxLength int) *MessageStore {
	return &MessageStore{
		byConversation: make(map[string][]*models.Message),
		conversations:  conversations,
		directory:      directory,
		maxLength:      maxLength,
	}
}

// Send validates the pair, resolves the canonical conversation and appends a
// new unread message, advancing the conversation's last-message reference and
// last-activity timestamp in the same critical section.
func (s *MessageStore) Send(sender, receiver, content string) (*models.Message, error) {
	senderKey := NormalizeUsername(sender)
	receiverKey := NormalizeUsername(receiver)

	if senderKey == "" || receiverKey == "" {
		return nil, apperr.BadRequest("Sender, receiver, and content are required")
	}
	if _, ok := s.directory.Get(senderKey); !ok {
		return nil, apperr.NotFound("One or both users not found")
	}
	if _, ok := s.directory.Get(receiverKey); !ok {
		return nil, apperr.NotFound("One or both users not found")
	}
	if senderKey == receiverKey {
		return nil, apperr.BadRequest("Cannot send message to yourself")
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.BadRequest("Sender, receiver, and content are required")
	}
	if s.maxLength > 0 && len(content) > s.maxLength {
		return nil, apperr.BadRequest("Message content is too long")
	}

	conversation, err := s.conversations.Resolve(senderKey, receiverKey)
	if err != nil {
		return nil, err
	}

	message := &models.Message{
		ID:             uuid.NewString(),
		ConversationID: conversation.ID,
		SenderID:       senderKey,
		ReceiverID:     receiverKey,
		Content:        content,
		Timestamp:      time.Now(),
		Read:           false,
	}

	s.mu.Lock()
	s.byConversation[conversation.ID] = append(s.byConversation[conversation.ID], message)
	s.conversations.touch(conversation.ID, message)
	s.mu.Unlock()

	return message, nil
}

// Page is one slice of a conversation's history in chat-display order.
type Page struct {
	Messages []models.Message
	Total    int
	HasMore  bool
}

// List returns the `[offset, offset+limit)` window of the conversation's
// messages sorted oldest first, after checking the requester's access. A
// conversation that does not exist yet is created empty so a thread can be
// opened before its first message.
func (s *MessageStore) List(requester, conversationID string, limit, offset int) (*Page, error) {
	if err := s.checkAccess(requester, conversationID); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	messages := s.snapshot(conversationID)
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Timestamp.Before(messages[j].Timestamp)
	})

	total := len(messages)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	return &Page{
		Messages: messages[offset:end],
		Total:    total,
		HasMore:  offset+limit < total,
	}, nil
}

// MarkRead flips the read flag on every unread message in the conversation
// addressed to the requester and reports how many were flipped. A second
// consecutive call reports zero.
func (s *MessageStore) MarkRead(requester, conversationID string) (int, error) {
	if err := s.checkAccess(requester, conversationID); err != nil {
		return 0, err
	}

	reader := NormalizeUsername(requester)

	s.mu.Lock()
	defer s.mu.Unlock()

	updated := 0
	for _, message := range s.byConversation[conversationID] {
		if message.ReceiverID == reader && !message.Read {
			message.Read = true
			updated++
		}
	}
	return updated, nil
}

// checkAccess applies the shared precondition chain for reading a thread:
// the requester must exist, the id must decompose into two participants, the
// requester must be one of them, and the other participant must exist. The
// conversation itself is then resolved lazily.
func (s *MessageStore) checkAccess(requester, conversationID string) error {
	requesterKey := NormalizeUsername(requester)
	if _, ok := s.directory.Get(requesterKey); !ok {
		return apperr.NotFound("User not found")
	}

	first, second, err := SplitConversationID(conversationID)
	if err != nil {
		return err
	}

	if requesterKey != first && requesterKey != second {
		return apperr.Forbidden("Access denied to this conversation")
	}

	other := first
	if other == requesterKey {
		other = second
	}
	if _, ok := s.directory.Get(other); !ok {
		return apperr.NotFound("User not found")
	}

	if _, ok := s.conversations.Get(conversationID); !ok {
		if _, err := s.conversations.Resolve(requesterKey, other); err != nil {
			return err
		}
	}
	return nil
}

// snapshot copies the conversation's messages so callers can sort and slice
// without holding the store lock.
func (s *MessageStore) snapshot(conversationID string) []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.byConversation[conversationID]
	messages := make([]models.Message, len(stored))
	for i, message := range stored {
		messages[i] = *message
	}
	return messages
}
