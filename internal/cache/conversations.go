package cache

import (
	"context"
	"sync"
	"time"

	"wholesale-dashboard/internal/models"
	"wholesale-dashboard/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ConversationStore caches one tenant's WhatsApp conversations together
// with their messages. The remote side is read-only; AddMessage is a
// local-only simulation for the demo chat view and is never written back.
type ConversationStore struct {
	mu             sync.RWMutex
	conversations  []models.Conversation
	messages       []models.ChatMessage
	loading        bool
	loadedTenantID string
	activeID       string

	source ConversationSource
	logger *zap.Logger
}

func NewConversationStore(source ConversationSource) *ConversationStore {
	return &ConversationStore{
		source: source,
		logger: util.GetLogger(),
	}
}

// Load fills the cache for the tenant unless it is already loaded. A
// failed fetch keeps the previous conversations and messages.
func (s *ConversationStore) Load(ctx context.Context, tenantID string) {
	s.mu.Lock()
	if s.loadedTenantID == tenantID && len(s.conversations) > 0 {
		s.mu.Unlock()
		util.CacheHitsTotal.WithLabelValues("conversations").Inc()
		return
	}
	s.loading = true
	s.mu.Unlock()

	conversations, messages, err := s.source.FetchConversations(ctx, tenantID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		util.CacheLoadsTotal.WithLabelValues("conversations", "error").Inc()
		s.logger.Error("Failed to load conversations",
			zap.String("tenant_id", tenantID), zap.Error(err))
		return
	}

	s.conversations = conversations
	s.messages = messages
	s.loadedTenantID = tenantID
	util.CacheLoadsTotal.WithLabelValues("conversations", "success").Inc()
}

// ByTenant returns the cached conversations of the tenant.
func (s *ConversationStore) ByTenant(tenantID string) []models.Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Conversation, 0, len(s.conversations))
	for _, c := range s.conversations {
		if c.TenantID == tenantID {
			result = append(result, c)
		}
	}
	return result
}

// MessagesByConversation returns the cached messages of one conversation.
func (s *ConversationStore) MessagesByConversation(conversationID string) []models.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.ChatMessage, 0)
	for _, m := range s.messages {
		if m.ConversationID == conversationID {
			result = append(result, m)
		}
	}
	return result
}

func (s *ConversationStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *ConversationStore) Invalidate() {
	s.mu.Lock()
	s.loadedTenantID = ""
	s.mu.Unlock()
	util.CacheInvalidationsTotal.WithLabelValues("conversations").Inc()
}

// SetActiveConversation records which thread the chat view has open.
func (s *ConversationStore) SetActiveConversation(id string) {
	s.mu.Lock()
	s.activeID = id
	s.mu.Unlock()
}

func (s *ConversationStore) ActiveConversation() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeID
}

// AddMessage appends a simulated message to the cache and bumps the
// conversation's LastMessageAt. Nothing is sent to the remote store.
func (s *ConversationStore) AddMessage(conversationID, content, msgType string, sender models.MessageSender) models.ChatMessage {
	now := time.Now()
	message := models.ChatMessage{
		ID:             uuid.New().String(),
		ConversationID: conversationID,
		Content:        content,
		Type:           msgType,
		Sender:         sender,
		Timestamp:      now,
		Status:         models.MessageSent,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, message)
	for i := range s.conversations {
		if s.conversations[i].ID == conversationID {
			s.conversations[i].LastMessageAt = now
			break
		}
	}
	return message
}
