package gormrepo

import (
	"context"
	"encoding/json"
	"errors"

	"semitae/internal/adapter/repo/gorm/model"
	"semitae/internal/app/ports"
	"semitae/internal/domain/encounter"

	"gorm.io/gorm"
)

type PlayerRepo struct {
	db *gorm.DB
}

func NewPlayerRepo(db *gorm.DB) PlayerRepo {
	return PlayerRepo{db: db}
}

func (r PlayerRepo) Create(ctx context.Context, p encounter.Player) error {
	personaBytes, err := json.Marshal(p.Persona)
	if err != nil {
		return err
	}
	m := model.Player{
		ID:        p.ID,
		Name:      p.Name,
		Persona:   personaBytes,
		CreatedAt: p.CreatedAt,
	}
	if err := getDBFromCtx(ctx, r.db).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ports.ErrConflict
		}
		return err
	}
	return nil
}

func (r PlayerRepo) GetByID(ctx context.Context, id string) (encounter.Player, error) {
	var m model.Player
	if err := getDBFromCtx(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return encounter.Player{}, ports.ErrNotFound
		}
		return encounter.Player{}, err
	}
	var persona map[string]string
	if len(m.Persona) > 0 {
		if err := json.Unmarshal(m.Persona, &persona); err != nil {
			return encounter.Player{}, err
		}
	}
	return encounter.Player{
		ID:        m.ID,
		Name:      m.Name,
		Persona:   persona,
		CreatedAt: m.CreatedAt,
	}, nil
}
