package instruction

import (
	"context"
	"errors"
	"testing"

	"semitae/internal/app/ports"
	"semitae/internal/domain/encounter"
)

func TestRecorder_RecordBaseWritesMessageAtWriteTime(t *testing.T) {
	msgRepo := newFakeMessageRepo()
	r := Recorder{
		Messages: msgRepo,
		Now:      fixedNow,
		NewID:    func() (string, error) { return "msg_1", nil },
	}

	msg, err := r.RecordBase(context.Background(), "E1", GeneratedMessage{
		Instruction: "Greet P2 warmly",
		Response:    "Well met, friend.",
	})
	if err != nil {
		t.Fatalf("record base error: %v", err)
	}
	if msg.Key.ConversationID != "E1" || msg.Key.MessageID != "msg_1" {
		t.Fatalf("key mismatch: %+v", msg.Key)
	}
	if !msg.Key.Timestamp.Equal(fixedNow()) {
		t.Fatalf("timestamp not taken at write time: %v", msg.Key.Timestamp)
	}
	if msg.Classification != "" {
		t.Fatalf("classification must start absent: %q", msg.Classification)
	}
	stored, err := msgRepo.GetByKey(context.Background(), msg.Key)
	if err != nil {
		t.Fatalf("stored message missing: %v", err)
	}
	if stored.Instruction != "Greet P2 warmly" || stored.Response != "Well met, friend." {
		t.Fatalf("stored message mismatch: %+v", stored)
	}
}

func TestRecorder_RecordClassificationIsIdempotent(t *testing.T) {
	msgRepo := newFakeMessageRepo()
	r := Recorder{Messages: msgRepo, Now: fixedNow, NewID: func() (string, error) { return "msg_1", nil }}

	msg, err := r.RecordBase(context.Background(), "E1", GeneratedMessage{Instruction: "a", Response: "b"})
	if err != nil {
		t.Fatalf("record base error: %v", err)
	}
	if err := r.RecordClassification(context.Background(), msg.Key, "Befriend"); err != nil {
		t.Fatalf("first classification write error: %v", err)
	}
	if err := r.RecordClassification(context.Background(), msg.Key, "Befriend"); err != nil {
		t.Fatalf("re-applying the same label must be a no-op, got %v", err)
	}
	stored, _ := msgRepo.GetByKey(context.Background(), msg.Key)
	if stored.Classification != "Befriend" {
		t.Fatalf("classification mismatch: %q", stored.Classification)
	}
}

func TestRecorder_RecordClassificationUnknownKey(t *testing.T) {
	r := Recorder{Messages: newFakeMessageRepo()}

	err := r.RecordClassification(context.Background(), encounter.MessageKey{
		ConversationID: "E1",
		Timestamp:      fixedNow(),
		MessageID:      "msg_gone",
	}, "Attack")
	if !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRecorder_AdvanceTurnConflictWhenTurnAlreadyMoved(t *testing.T) {
	encRepo := newFakeEncounterRepo(encounter.Encounter{
		ID:           "E1",
		Participants: [2]string{"P1", "P2"},
		ActivePlayer: "P2",
	})
	r := Recorder{Encounters: encRepo}

	err := r.AdvanceTurn(context.Background(), "E1", "P1", "P2", encounter.MessageRef{MessageID: "msg_1"})
	if !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if enc := encRepo.encounters["E1"]; enc.ActivePlayer != "P2" || len(enc.MessageLog) != 0 {
		t.Fatalf("conflicting flip must not mutate encounter: %+v", enc)
	}
}

func TestRecorder_AdvanceTurnFlipsAndAppendsRef(t *testing.T) {
	encRepo := newFakeEncounterRepo(encounter.Encounter{
		ID:           "E1",
		Participants: [2]string{"P1", "P2"},
		ActivePlayer: "P1",
	})
	r := Recorder{Encounters: encRepo}

	ref := encounter.MessageRef{Timestamp: fixedNow(), MessageID: "msg_1"}
	if err := r.AdvanceTurn(context.Background(), "E1", "P1", "P2", ref); err != nil {
		t.Fatalf("advance turn error: %v", err)
	}
	enc := encRepo.encounters["E1"]
	if enc.ActivePlayer != "P2" {
		t.Fatalf("turn not flipped: %+v", enc)
	}
	if len(enc.MessageLog) != 1 || enc.MessageLog[0] != ref {
		t.Fatalf("message log not appended: %+v", enc.MessageLog)
	}
}
