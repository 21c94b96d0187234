package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"companion-matcher/internal/apperr"
	"companion-matcher/internal/models"
)

// ConversationSeparator joins the two participant names into the canonical
// conversation id. The format is part of the public contract: clients build
// ids directly to deep-link into a chat.
const ConversationSeparator = "_"

// ConversationID returns the canonical id for an unordered pair: both names
// lower-cased, sorted lexicographically, joined by the separator. The same id
// comes back no matter which side initiates.
func ConversationID(a, b string) string {
	pair := []string{NormalizeUsername(a), NormalizeUsername(b)}
	sort.Strings(pair)
	return pair[0] + ConversationSeparator + pair[1]
}

// SplitConversationID decomposes a wire-form conversation id into its two
// participant tokens. Ids that do not hold exactly two tokens are malformed.
func SplitConversationID(id string) (string, string, error) {
	parts := strings.Split(id, ConversationSeparator)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", apperr.BadRequest("Invalid conversation ID")
	}
	return parts[0], parts[1], nil
}

// ConversationStore owns the canonical one-conversation-per-pair records.
// Conversations are created lazily on first message or first read access and
// are never deleted.
type ConversationStore struct {
	mu            sync.RWMutex
	conversations map[string]*models.Conversation
	directory     *Directory
}

func NewConversationStore(directory *Directory) *ConversationStore {
	return &ConversationStore{
		conversations: make(map[string]*models.Conversation),
		directory:     directory,
	}
}

// Resolve returns the conversation for the unordered pair, creating an empty
// one if absent. Repeated calls with the pair in either order yield the same
// record. Equal identifiers are refused so no caller can mint a conversation
// with itself.
func (s *ConversationStore) Resolve(a, b string) (*models.Conversation, error) {
	userA := NormalizeUsername(a)
	userB := NormalizeUsername(b)
	if userA == userB {
		return nil, apperr.BadRequest("Cannot start a conversation with yourself")
	}

	id := ConversationID(userA, userB)

	s.mu.Lock()
	defer s.mu.Unlock()

	if conversation, ok := s.conversations[id]; ok {
		return conversation, nil
	}

	participants := [2]string{userA, userB}
	if participants[0] > participants[1] {
		participants[0], participants[1] = participants[1], participants[0]
	}

	conversation := &models.Conversation{
		ID:           id,
		Participants: participants,
		LastActivity: time.Now(),
	}
	s.conversations[id] = conversation
	return conversation, nil
}

// Get looks up a conversation without creating it.
func (s *ConversationStore) Get(id string) (*models.Conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conversation, ok := s.conversations[id]
	return conversation, ok
}

// ListFor returns the conversations the user participates in, paired with the
// other participant's profile, most recent activity first. Conversations
// whose other participant no longer resolves in the directory are dropped.
func (s *ConversationStore) ListFor(username string) []models.ConversationWithUser {
	user := NormalizeUsername(username)

	s.mu.RLock()
	listed := make([]models.ConversationWithUser, 0)
	for _, conversation := range s.conversations {
		if conversation.Participants[0] != user && conversation.Participants[1] != user {
			continue
		}

		other := conversation.Participants[0]
		if other == user {
			other = conversation.Participants[1]
		}

		otherProfile, ok := s.directory.Get(other)
		if !ok {
			continue
		}

		listed = append(listed, models.ConversationWithUser{
			ID:           conversation.ID,
			OtherUser:    *otherProfile,
			LastMessage:  conversation.LastMessage,
			LastActivity: conversation.LastActivity,
			UnreadCount:  0,
		})
	}
	s.mu.RUnlock()

	sort.SliceStable(listed, func(i, j int) bool {
		return listed[i].LastActivity.After(listed[j].LastActivity)
	})
	return listed
}

// touch records a freshly appended message as the conversation's most recent
// one. Last activity only ever advances.
func (s *ConversationStore) touch(id string, message *models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conversation, ok := s.conversations[id]
	if !ok {
		return
	}
	conversation.LastMessage = message
	if !message.Timestamp.Before(conversation.LastActivity) {
		conversation.LastActivity = message.Timestamp
	}
}
