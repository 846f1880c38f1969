package memory

import (
	"context"

	"semitae/internal/app/ports"
	"semitae/internal/domain/encounter"
)

type EncounterRepo struct {
	store *Store
}

func NewEncounterRepo(store *Store) EncounterRepo {
	return EncounterRepo{store: store}
}

func (r EncounterRepo) GetByID(ctx context.Context, id string) (encounter.Encounter, error) {
	if !inTx(ctx) {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}
	enc, ok := r.store.encounters[id]
	if !ok {
		return encounter.Encounter{}, ports.ErrNotFound
	}
	// Copy the log so callers cannot mutate stored state through the slice.
	enc.MessageLog = append([]encounter.MessageRef(nil), enc.MessageLog...)
	return enc, nil
}

func (r EncounterRepo) Create(ctx context.Context, enc encounter.Encounter) error {
	if !inTx(ctx) {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	if _, exists := r.store.encounters[enc.ID]; exists {
		return ports.ErrConflict
	}
	r.store.encounters[enc.ID] = enc
	return nil
}

func (r EncounterRepo) AdvanceTurn(ctx context.Context, id, fromPlayer, toPlayer string, ref encounter.MessageRef) error {
	if !inTx(ctx) {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	enc, ok := r.store.encounters[id]
	if !ok {
		return ports.ErrNotFound
	}
	if enc.ActivePlayer != fromPlayer {
		return ports.ErrConflict
	}
	enc.ActivePlayer = toPlayer
	enc.MessageLog = append(enc.MessageLog, ref)
	r.store.encounters[id] = enc
	return nil
}
