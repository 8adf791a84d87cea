package store

import (
	"context"
	"fmt"

	"wholesale-dashboard/internal/models"
	"wholesale-dashboard/internal/util"

	"github.com/jmoiron/sqlx"
)

// conversationPageSize bounds a conversation fetch to the most recently
// updated threads.
const conversationPageSize = 50

// FetchConversations retrieves the tenant's 50 most recently updated
// conversations plus the messages of exactly those conversations in
// chronological order. A conversation without a resolvable customer falls
// back to its phone number as the display name.
func (s *Store) FetchConversations(ctx context.Context, tenantID string) ([]models.Conversation, []models.ChatMessage, error) {
	ctx, span := util.StartSpan(ctx, "Store.FetchConversations")
	defer span.End()

	var convRows []conversationRow
	err := s.db.SelectContext(ctx, &convRows,
		"SELECT * FROM whatsapp_conversations WHERE tenant_id = $1 ORDER BY updated_at DESC LIMIT $2",
		tenantID, conversationPageSize)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch conversations: %w", err)
	}
	if len(convRows) == 0 {
		return []models.Conversation{}, []models.ChatMessage{}, nil
	}

	customerIDs := make([]string, 0, len(convRows))
	seen := make(map[string]bool, len(convRows))
	convIDs := make([]string, 0, len(convRows))
	for _, row := range convRows {
		convIDs = append(convIDs, row.ID)
		if row.CustomerID != nil && !seen[*row.CustomerID] {
			seen[*row.CustomerID] = true
			customerIDs = append(customerIDs, *row.CustomerID)
		}
	}

	refs, err := s.customerRefs(ctx, customerIDs)
	if err != nil {
		return nil, nil, err
	}

	messages, err := s.messagesByConversation(ctx, convIDs)
	if err != nil {
		return nil, nil, err
	}

	conversations := make([]models.Conversation, 0, len(convRows))
	for _, row := range convRows {
		name, phone := row.Phone, row.Phone
		if row.CustomerID != nil {
			if ref, ok := refs[*row.CustomerID]; ok {
				name, phone = ref.Name, ref.Phone
			}
		}
		conversations = append(conversations, toConversation(row, name, phone))
	}
	return conversations, messages, nil
}

// messagesByConversation fetches all messages of the given conversations
// in chronological order.
func (s *Store) messagesByConversation(ctx context.Context, convIDs []string) ([]models.ChatMessage, error) {
	if len(convIDs) == 0 {
		return []models.ChatMessage{}, nil
	}

	query, args, err := sqlx.In(
		"SELECT * FROM whatsapp_messages WHERE conversation_id IN (?) ORDER BY created_at ASC", convIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build message lookup: %w", err)
	}
	query = s.db.Rebind(query)

	var rows []messageRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	messages := make([]models.ChatMessage, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, toChatMessage(row))
	}
	return messages, nil
}
