package instruction

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	"semitae/internal/app/ports"
	"semitae/internal/domain/encounter"
)

// Recorder owns every store mutation of a run: the base message write, the
// classification enrichment, and the conditional turn flip. Nothing before
// RecordBase mutates the store, so abandoning a run earlier is always safe.
type Recorder struct {
	Messages   ports.MessageRepository
	Encounters ports.EncounterRepository
	Now        func() time.Time
	NewID      func() (string, error)
}

// RecordBase persists the instruction/response pair under a fresh composite
// key. The timestamp is taken at write time.
func (r Recorder) RecordBase(ctx context.Context, conversationID string, gen GeneratedMessage) (encounter.Message, error) {
	newID := r.NewID
	if newID == nil {
		newID = newMessageID
	}
	nowFn := r.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	id, err := newID()
	if err != nil {
		return encounter.Message{}, err
	}
	now := nowFn().UTC()
	msg := encounter.Message{
		Key: encounter.MessageKey{
			ConversationID: conversationID,
			Timestamp:      now,
			MessageID:      id,
		},
		Instruction: gen.Instruction,
		Response:    gen.Response,
		LastUpdated: now,
	}
	if err := r.Messages.Create(ctx, msg); err != nil {
		return encounter.Message{}, err
	}
	return msg, nil
}

func (r Recorder) RecordClassification(ctx context.Context, key encounter.MessageKey, label string) error {
	nowFn := r.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	return r.Messages.SetClassification(ctx, key, label, nowFn().UTC())
}

// AdvanceTurn is the final backstop against stale or duplicate runs: the flip
// only lands while the requester still holds the turn.
func (r Recorder) AdvanceTurn(ctx context.Context, encounterID, fromPlayer, toPlayer string, ref encounter.MessageRef) error {
	return r.Encounters.AdvanceTurn(ctx, encounterID, fromPlayer, toPlayer, ref)
}

func newMessageID() (string, error) {
	b := make([]byte, 9)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return "msg_" + base64.RawURLEncoding.EncodeToString(b), nil
}
