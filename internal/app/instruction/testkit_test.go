package instruction

import (
	"context"
	"time"

	"semitae/internal/app/ports"
	"semitae/internal/domain/encounter"
)

type fakeEncounterRepo struct {
	encounters   map[string]encounter.Encounter
	getErr       error
	advanceErr   error
	advanceCalls int
}

func newFakeEncounterRepo(encs ...encounter.Encounter) *fakeEncounterRepo {
	repo := &fakeEncounterRepo{encounters: map[string]encounter.Encounter{}}
	for _, e := range encs {
		repo.encounters[e.ID] = e
	}
	return repo
}

func (f *fakeEncounterRepo) GetByID(_ context.Context, id string) (encounter.Encounter, error) {
	if f.getErr != nil {
		return encounter.Encounter{}, f.getErr
	}
	enc, ok := f.encounters[id]
	if !ok {
		return encounter.Encounter{}, ports.ErrNotFound
	}
	return enc, nil
}

func (f *fakeEncounterRepo) Create(_ context.Context, enc encounter.Encounter) error {
	if _, exists := f.encounters[enc.ID]; exists {
		return ports.ErrConflict
	}
	f.encounters[enc.ID] = enc
	return nil
}

func (f *fakeEncounterRepo) AdvanceTurn(_ context.Context, id, fromPlayer, toPlayer string, ref encounter.MessageRef) error {
	f.advanceCalls++
	if f.advanceErr != nil {
		return f.advanceErr
	}
	enc, ok := f.encounters[id]
	if !ok {
		return ports.ErrNotFound
	}
	if enc.ActivePlayer != fromPlayer {
		return ports.ErrConflict
	}
	enc.ActivePlayer = toPlayer
	enc.MessageLog = append(enc.MessageLog, ref)
	f.encounters[id] = enc
	return nil
}

type fakePlayerRepo struct {
	players map[string]encounter.Player
	getErr  error
}

func newFakePlayerRepo(players ...encounter.Player) *fakePlayerRepo {
	repo := &fakePlayerRepo{players: map[string]encounter.Player{}}
	for _, p := range players {
		repo.players[p.ID] = p
	}
	return repo
}

func (f *fakePlayerRepo) Create(_ context.Context, p encounter.Player) error {
	f.players[p.ID] = p
	return nil
}

func (f *fakePlayerRepo) GetByID(_ context.Context, id string) (encounter.Player, error) {
	if f.getErr != nil {
		return encounter.Player{}, f.getErr
	}
	p, ok := f.players[id]
	if !ok {
		return encounter.Player{}, ports.ErrNotFound
	}
	return p, nil
}

type fakeMessageRepo struct {
	messages  map[encounter.MessageKey]encounter.Message
	createErr error
	setErr    error
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: map[encounter.MessageKey]encounter.Message{}}
}

func (f *fakeMessageRepo) Create(_ context.Context, msg encounter.Message) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.messages[msg.Key] = msg
	return nil
}

func (f *fakeMessageRepo) GetByKey(_ context.Context, key encounter.MessageKey) (encounter.Message, error) {
	msg, ok := f.messages[key]
	if !ok {
		return encounter.Message{}, ports.ErrNotFound
	}
	return msg, nil
}

func (f *fakeMessageRepo) SetClassification(_ context.Context, key encounter.MessageKey, label string, now time.Time) error {
	if f.setErr != nil {
		return f.setErr
	}
	msg, ok := f.messages[key]
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
	f.messages[key] = msg
	return nil
}

func (f *fakeMessageRepo) ListByConversation(_ context.Context, conversationID string, limit int) ([]encounter.Message, error) {
	out := []encounter.Message{}
	for _, msg := range f.messages {
		if msg.Key.ConversationID == conversationID {
			out = append(out, msg)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// scriptedTextGen replays canned completions in call order and records every
// request it saw.
type scriptedTextGen struct {
	outputs []string
	errs    []error
	calls   []ports.TextRequest
}

func (s *scriptedTextGen) Complete(_ context.Context, req ports.TextRequest) (string, error) {
	s.calls = append(s.calls, req)
	i := len(s.calls) - 1
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i < len(s.outputs) {
		return s.outputs[i], nil
	}
	return "", nil
}

type fakeMetrics struct {
	completed []string
	conflicts int
	failed    []string
}

func (f *fakeMetrics) RecordCompleted(label string) { f.completed = append(f.completed, label) }
func (f *fakeMetrics) RecordConflict()              { f.conflicts++ }
func (f *fakeMetrics) RecordFailed(stage string)    { f.failed = append(f.failed, stage) }

func fixedNow() time.Time {
	return time.Unix(1700000000, 0).UTC()
}

func newTestUseCase(encRepo *fakeEncounterRepo, playerRepo *fakePlayerRepo, msgRepo *fakeMessageRepo, text *scriptedTextGen, metrics *fakeMetrics) UseCase {
	uc := UseCase{
		Validator:  Validator{Encounters: encRepo, Players: playerRepo},
		Generator:  Generator{Text: text},
		Classifier: Classifier{Text: text},
		Recorder: Recorder{
			Messages:   msgRepo,
			Encounters: encRepo,
			Now:        fixedNow,
			NewID:      func() (string, error) { return "msg_test", nil },
		},
	}
	if metrics != nil {
		uc.Metrics = metrics
	}
	return uc
}
