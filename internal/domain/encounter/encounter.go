package encounter

import (
	"errors"
	"time"
)

var (
	ErrNotParticipant = errors.New("player is not part of this encounter")
	ErrWrongTurn      = errors.New("it is not this player's turn")
)

// Encounter is a two-participant turn-based session. Exactly one of the two
// participants holds the turn at any moment.
type Encounter struct {
	ID           string       `json:"id"`
	Participants [2]string    `json:"participants"`
	ActivePlayer string       `json:"active_player"`
	Realm        string       `json:"realm"`
	MessageLog   []MessageRef `json:"message_log"`
	CreatedAt    time.Time    `json:"created_at"`
}

func (e Encounter) HasParticipant(playerID string) bool {
	return e.Participants[0] == playerID || e.Participants[1] == playerID
}

// OtherParticipant returns the participant that is not playerID. The caller
// must have checked HasParticipant first.
func (e Encounter) OtherParticipant(playerID string) string {
	if e.Participants[1] == playerID {
		return e.Participants[0]
	}
	return e.Participants[1]
}

// CheckTurn enforces the single-writer gate: the requester must be one of the
// two participants and must currently hold the turn.
func (e Encounter) CheckTurn(playerID string) error {
	if !e.HasParticipant(playerID) {
		return ErrNotParticipant
	}
	if e.ActivePlayer != playerID {
		return ErrWrongTurn
	}
	return nil
}
