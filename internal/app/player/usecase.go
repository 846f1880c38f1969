package playerapp

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

var ErrInvalidRequest = errors.New("invalid player request")

type CreateRequest struct {
	Name    string
	Persona map[string]string
}

type CreateResponse struct {
	Player encounter.Player `json:"player"`
}

type GetRequest struct {
	PlayerID string
}

type GetResponse struct {
	Player encounter.Player `json:"player"`
}

type CreateUseCase struct {
	Players ports.PlayerRepository
	Now     func() time.Time
	NewID   func() (string, error)
}

func (u CreateUseCase) Execute(ctx context.Context, req CreateRequest) (CreateResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return CreateResponse{}, ErrInvalidRequest
	}

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	newID := u.NewID
	if newID == nil {
		newID = func() (string, error) { return newPlayerID(nowFn()) }
	}

	id, err := newID()
	if err != nil {
		return CreateResponse{}, err
	}
	p := encounter.Player{
		ID:        id,
		Name:      name,
		Persona:   req.Persona,
		CreatedAt: nowFn().UTC(),
	}
	if err := u.Players.Create(ctx, p); err != nil {
		return CreateResponse{}, err
	}
	return CreateResponse{Player: p}, nil
}

type GetUseCase struct {
	Players ports.PlayerRepository
}

func (u GetUseCase) Execute(ctx context.Context, req GetRequest) (GetResponse, error) {
	if strings.TrimSpace(req.PlayerID) == "" {
		return GetResponse{}, ErrInvalidRequest
	}
	p, err := u.Players.GetByID(ctx, req.PlayerID)
	if err != nil {
		return GetResponse{}, err
	}
	return GetResponse{Player: p}, nil
}

func newPlayerID(now time.Time) (string, error) {
	b := make([]byte, 9)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return "plr_" + now.Format("20060102") + "_" + base64.RawURLEncoding.EncodeToString(b), nil
}
