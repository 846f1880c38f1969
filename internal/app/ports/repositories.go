package ports

import (
	"context"
	"time"

	"semitae/internal/domain/encounter"
)

type EncounterRepository interface {
	GetByID(ctx context.Context, encounterID string) (encounter.Encounter, error)
	Create(ctx context.Context, enc encounter.Encounter) error
	// AdvanceTurn flips active_player from fromPlayer to toPlayer and appends
	// ref to the message log in one conditional update. Returns ErrConflict
	// when active_player no longer equals fromPlayer at write time.
	AdvanceTurn(ctx context.Context, encounterID, fromPlayer, toPlayer string, ref encounter.MessageRef) error
}

type PlayerRepository interface {
	Create(ctx context.Context, p encounter.Player) error
	GetByID(ctx context.Context, playerID string) (encounter.Player, error)
}

type MessageRepository interface {
	Create(ctx context.Context, msg encounter.Message) error
	GetByKey(ctx context.Context, key encounter.MessageKey) (encounter.Message, error)
	// SetClassification enriches an existing message. Applying the same label
	// again is a no-op; a different label on an already-classified message is
	// rejected with ErrConflict. Returns ErrNotFound when the key does not
	// resolve.
	SetClassification(ctx context.Context, key encounter.MessageKey, label string, now time.Time) error
	ListByConversation(ctx context.Context, conversationID string, limit int) ([]encounter.Message, error)
}
