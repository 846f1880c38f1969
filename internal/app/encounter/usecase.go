package encounterapp

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"semitae/internal/app/ports"
	"semitae/internal/domain/encounter"
)

var (
	ErrInvalidRequest  = errors.New("invalid encounter request")
	ErrUnknownPlayer   = errors.New("participant has no player record")
	ErrSameParticipant = errors.New("participants must be two distinct players")
)

type CreateUseCase struct {
	Encounters ports.EncounterRepository
	Players    ports.PlayerRepository
	TxManager  ports.TxManager
	Now        func() time.Time
	NewID      func() (string, error)
}

// Execute creates an encounter with the first participant holding the opening
// turn. Both participant records must exist; the check and the write share a
// transaction so a racing player deletion cannot slip between them.
func (u CreateUseCase) Execute(ctx context.Context, req CreateRequest) (CreateResponse, error) {
	p0 := strings.TrimSpace(req.Participants[0])
	p1 := strings.TrimSpace(req.Participants[1])
	if p0 == "" || p1 == "" {
		return CreateResponse{}, ErrInvalidRequest
	}
	if p0 == p1 {
		return CreateResponse{}, ErrSameParticipant
	}

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	newID := u.NewID
	if newID == nil {
		newID = func() (string, error) { return newEncounterID(nowFn()) }
	}

	id, err := newID()
	if err != nil {
		return CreateResponse{}, err
	}
	enc := encounter.Encounter{
		ID:           id,
		Participants: [2]string{p0, p1},
		ActivePlayer: p0,
		Realm:        strings.TrimSpace(req.Realm),
		CreatedAt:    nowFn().UTC(),
	}

	err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		for _, playerID := range enc.Participants {
			if _, err := u.Players.GetByID(txCtx, playerID); err != nil {
				if errors.Is(err, ports.ErrNotFound) {
					return ErrUnknownPlayer
				}
				return err
			}
		}
		return u.Encounters.Create(txCtx, enc)
	})
	if err != nil {
		return CreateResponse{}, err
	}
	return CreateResponse{Encounter: enc}, nil
}

type GetUseCase struct {
	Encounters ports.EncounterRepository
}

func (u GetUseCase) Execute(ctx context.Context, req GetRequest) (GetResponse, error) {
	if strings.TrimSpace(req.EncounterID) == "" {
		return GetResponse{}, ErrInvalidRequest
	}
	enc, err := u.Encounters.GetByID(ctx, req.EncounterID)
	if err != nil {
		return GetResponse{}, err
	}
	return GetResponse{Encounter: enc}, nil
}

type HistoryUseCase struct {
	Messages ports.MessageRepository
}

func (u HistoryUseCase) Execute(ctx context.Context, req HistoryRequest) (HistoryResponse, error) {
	if strings.TrimSpace(req.ConversationID) == "" {
		return HistoryResponse{}, ErrInvalidRequest
	}
	msgs, err := u.Messages.ListByConversation(ctx, req.ConversationID, req.Limit)
	if err != nil {
		return HistoryResponse{}, err
	}
	return HistoryResponse{Messages: msgs}, nil
}

func newEncounterID(now time.Time) (string, error) {
	b := make([]byte, 9)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return "enc_" + now.Format("20060102") + "_" + base64.RawURLEncoding.EncodeToString(b), nil
}
