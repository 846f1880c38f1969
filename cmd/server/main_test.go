package main

import (
	"context"
	"testing"

	"semitae/internal/config"
)

func TestMustBuildRepos_MemoryFallbackIsSeeded(t *testing.T) {
	cfg := &config.Config{DatabaseDSN: ""}
	encounters, players, _, txManager := mustBuildRepos(cfg)

	enc, err := encounters.GetByID(context.Background(), "enc_demo")
	if err != nil {
		t.Fatalf("demo encounter: %v", err)
	}
	if enc.ActivePlayer != "plr_demo_aria" {
		t.Fatalf("active player = %q, want plr_demo_aria", enc.ActivePlayer)
	}
	for _, id := range enc.Participants {
		if _, err := players.GetByID(context.Background(), id); err != nil {
			t.Fatalf("demo player %s: %v", id, err)
		}
	}

	err = txManager.RunInTx(context.Background(), func(ctx context.Context) error {
		_, err := encounters.GetByID(ctx, "enc_demo")
		return err
	})
	if err != nil {
		t.Fatalf("tx read: %v", err)
	}
}
