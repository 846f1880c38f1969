package playerapp

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"semitae/internal/app/ports"
	"semitae/internal/domain/encounter"
)

func TestCreateUseCase_MintsPrefixedID(t *testing.T) {
	repo := &fakePlayerRepo{players: map[string]encounter.Player{}}
	uc := CreateUseCase{
		Players: repo,
		Now:     func() time.Time { return time.Unix(1700000000, 0).UTC() },
	}

	resp, err := uc.Execute(context.Background(), CreateRequest{
		Name:    "Korrin",
		Persona: map[string]string{"temper": "short"},
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if !strings.HasPrefix(resp.Player.ID, "plr_20231114_") {
		t.Fatalf("unexpected id shape: %q", resp.Player.ID)
	}
	stored, ok := repo.players[resp.Player.ID]
	if !ok || stored.Name != "Korrin" || stored.Persona["temper"] != "short" {
		t.Fatalf("player not persisted: %+v", stored)
	}
}

func TestCreateUseCase_RejectsBlankName(t *testing.T) {
	uc := CreateUseCase{Players: &fakePlayerRepo{players: map[string]encounter.Player{}}}

	_, err := uc.Execute(context.Background(), CreateRequest{Name: "  "})
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestGetUseCase_NotFound(t *testing.T) {
	uc := GetUseCase{Players: &fakePlayerRepo{players: map[string]encounter.Player{}}}

	_, err := uc.Execute(context.Background(), GetRequest{PlayerID: "missing"})
	if !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

type fakePlayerRepo struct {
	players map[string]encounter.Player
}

func (f *fakePlayerRepo) Create(_ context.Context, p encounter.Player) error {
	f.players[p.ID] = p
	return nil
}

func (f *fakePlayerRepo) GetByID(_ context.Context, id string) (encounter.Player, error) {
	p, ok := f.players[id]
	if !ok {
		return encounter.Player{}, ports.ErrNotFound
	}
	return p, nil
}
