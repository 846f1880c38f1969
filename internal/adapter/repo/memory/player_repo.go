package memory

import (
	"context"

	"semitae/internal/app/ports"
	"semitae/internal/domain/encounter"
)

type PlayerRepo struct {
	store *Store
}

func NewPlayerRepo(store *Store) PlayerRepo {
	return PlayerRepo{store: store}
}

func (r PlayerRepo) Create(ctx context.Context, p encounter.Player) error {
	if !inTx(ctx) {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	if _, exists := r.store.players[p.ID]; exists {
		return ports.ErrConflict
	}
	r.store.players[p.ID] = p
	return nil
}

func (r PlayerRepo) GetByID(ctx context.Context, id string) (encounter.Player, error) {
	if !inTx(ctx) {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}
	p, ok := r.store.players[id]
	if !ok {
		return encounter.Player{}, ports.ErrNotFound
	}
	return p, nil
}
