package memory

import (
	"context"
	"time"

	"semitae/internal/app/ports"
	"semitae/internal/domain/encounter"
)

type MessageRepo struct {
	store *Store
}

func NewMessageRepo(store *Store) MessageRepo {
	return MessageRepo{store: store}
}

func (r MessageRepo) Create(ctx context.Context, msg encounter.Message) error {
	if !inTx(ctx) {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	if _, exists := r.store.messages[msg.Key]; exists {
		return ports.ErrConflict
	}
	r.store.messages[msg.Key] = msg
	convID := msg.Key.ConversationID
	r.store.order[convID] = append(r.store.order[convID], msg.Key)
	return nil
}

func (r MessageRepo) GetByKey(ctx context.Context, key encounter.MessageKey) (encounter.Message, error) {
	if !inTx(ctx) {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}
	msg, ok := r.store.messages[key]
	if !ok {
		return encounter.Message{}, ports.ErrNotFound
	}
	return msg, nil
}

func (r MessageRepo) SetClassification(ctx context.Context, key encounter.MessageKey, label string, now time.Time) error {
	if !inTx(ctx) {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	msg, ok := r.store.messages[key]
	if !ok {
		return ports.ErrNotFound
	}
	if msg.Classification == label {
		return nil
	}
	if msg.Classification != "" {
		return ports.ErrConflict
	}
	msg.Classification = label
	msg.LastUpdated = now
	r.store.messages[key] = msg
	return nil
}

func (r MessageRepo) ListByConversation(ctx context.Context, conversationID string, limit int) ([]encounter.Message, error) {
	if !inTx(ctx) {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}
	keys := r.store.order[conversationID]
	out := make([]encounter.Message, 0, len(keys))
	for _, key := range keys {
		msg, ok := r.store.messages[key]
		if !ok {
			continue
		}
		out = append(out, msg)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
