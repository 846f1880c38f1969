package memory

import (
	"sync"

	"semitae/internal/domain/encounter"
)

// Store backs the in-memory adapters. Used by tests and by local runs
// without a database.
type Store struct {
	mu         sync.RWMutex
	encounters map[string]encounter.Encounter
	players    map[string]encounter.Player
	messages   map[encounter.MessageKey]encounter.Message
	// conversation id → keys in insertion order, mirroring the durable
	// message log ordering.
	order map[string][]encounter.MessageKey
}

func NewStore() *Store {
	return &Store{
		encounters: make(map[string]encounter.Encounter),
		players:    make(map[string]encounter.Player),
		messages:   make(map[encounter.MessageKey]encounter.Message),
		order:      make(map[string][]encounter.MessageKey),
	}
}

func (s *Store) SeedEncounter(enc encounter.Encounter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.encounters[enc.ID] = enc
}

func (s *Store) SeedPlayer(p encounter.Player) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[p.ID] = p
}
