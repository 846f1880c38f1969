package instruction

import (
	"context"
	"errors"

	"semitae/internal/app/ports"
	"semitae/internal/domain/encounter"
)

// TurnContext is the validated snapshot every later step works from. No step
// re-reads the encounter after validation; the conditional turn flip is the
// backstop against stale snapshots.
type TurnContext struct {
	Encounter     encounter.Encounter
	Player        encounter.Player
	PlayerID      string
	OtherPlayerID string
	Instruction   string
}

type Validator struct {
	Encounters ports.EncounterRepository
	Players    ports.PlayerRepository
}

// Validate is the single-writer gate: fetch the encounter, reject outsiders
// and out-of-turn requests, derive the counterpart. Performs no writes.
func (v Validator) Validate(ctx context.Context, req Request) (TurnContext, error) {
	enc, err := v.Encounters.GetByID(ctx, req.ConversationID)
	if err != nil {
		return TurnContext{}, err
	}
	if err := enc.CheckTurn(req.PlayerID); err != nil {
		return TurnContext{}, err
	}

	// The player record only feeds generation framing; an encounter seeded
	// without one still plays.
	player, err := v.Players.GetByID(ctx, req.PlayerID)
	if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return TurnContext{}, err
	}

	return TurnContext{
		Encounter:     enc,
		Player:        player,
		PlayerID:      req.PlayerID,
		OtherPlayerID: enc.OtherParticipant(req.PlayerID),
		Instruction:   req.Instruction,
	}, nil
}
