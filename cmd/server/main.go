package main

import (
	"context"
	"log"
	"time"

	httpadapter "semitae/internal/adapter/http"
	metricsinmem "semitae/internal/adapter/metrics/inmemory"
	gormrepo "semitae/internal/adapter/repo/gorm"
	"semitae/internal/adapter/repo/memory"
	openaitext "semitae/internal/adapter/textgen/openai"
	encounterapp "semitae/internal/app/encounter"
	"semitae/internal/app/instruction"
	playerapp "semitae/internal/app/player"
	"semitae/internal/app/ports"
	"semitae/internal/config"
	"semitae/internal/domain/encounter"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}
	cfg := config.New()

	encounters, players, messages, txManager := mustBuildRepos(cfg)
	textGen := openaitext.New(openaitext.Config{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.OpenAIModel,
		Timeout: cfg.TextGenTimeout,
	})
	kpiRecorder := metricsinmem.NewRecorder()

	h := httpadapter.Handler{
		InstructionUC: instruction.UseCase{
			Validator: instruction.Validator{Encounters: encounters, Players: players},
			Generator: instruction.Generator{
				Text:        textGen,
				Temperature: float32(cfg.GenTemperature),
				MaxTokens:   cfg.GenMaxTokens,
			},
			Classifier: instruction.Classifier{Text: textGen},
			Recorder:   instruction.Recorder{Messages: messages, Encounters: encounters, Now: time.Now},
			Metrics:    kpiRecorder,
		},
		CreateEncounterUC: encounterapp.CreateUseCase{
			Encounters: encounters,
			Players:    players,
			TxManager:  txManager,
			Now:        time.Now,
		},
		GetEncounterUC: encounterapp.GetUseCase{Encounters: encounters},
		HistoryUC:      encounterapp.HistoryUseCase{Messages: messages},
		CreatePlayerUC: playerapp.CreateUseCase{Players: players, Now: time.Now},
		GetPlayerUC:    playerapp.GetUseCase{Players: players},
		KPI:            kpiRecorder,
	}

	s := server.Default(server.WithHostPorts(cfg.Addr))
	h.RegisterRoutes(s)

	log.Printf("semitae server listening on %s", cfg.Addr)
	s.Spin()
}

func mustBuildRepos(cfg *config.Config) (ports.EncounterRepository, ports.PlayerRepository, ports.MessageRepository, ports.TxManager) {
	if cfg.DatabaseDSN == "" {
		log.Println("SEMITAE_DB_DSN is empty, using in-memory store with demo fixtures")
		store := memory.NewStore()
		seedDemo(store)
		return memory.NewEncounterRepo(store), memory.NewPlayerRepo(store), memory.NewMessageRepo(store), memory.NewTxManager(store)
	}

	db, err := gormrepo.OpenPostgres(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	if err := gormrepo.ApplyMigrations(context.Background(), db, cfg.MigrationsDir); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}
	return gormrepo.NewEncounterRepo(db), gormrepo.NewPlayerRepo(db), gormrepo.NewMessageRepo(db), gormrepo.NewTxManager(db)
}

// seedDemo gives the in-memory mode two players and an open encounter so the
// API is usable immediately after startup.
func seedDemo(store *memory.Store) {
	now := time.Now().UTC()
	store.SeedPlayer(encounter.Player{
		ID:        "plr_demo_aria",
		Name:      "Aria",
		Persona:   map[string]string{"temperament": "curious", "goal": "map the border wilds"},
		CreatedAt: now,
	})
	store.SeedPlayer(encounter.Player{
		ID:        "plr_demo_bram",
		Name:      "Bram",
		Persona:   map[string]string{"temperament": "wary", "goal": "guard the river crossing"},
		CreatedAt: now,
	})
	store.SeedEncounter(encounter.Encounter{
		ID:           "enc_demo",
		Participants: [2]string{"plr_demo_aria", "plr_demo_bram"},
		ActivePlayer: "plr_demo_aria",
		Realm:        "the border wilds",
		CreatedAt:    now,
	})
	log.Println("seeded demo encounter enc_demo (active player: plr_demo_aria)")
}
