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

type EncounterRepo struct {
	db *gorm.DB
}

func NewEncounterRepo(db *gorm.DB) EncounterRepo {
	return EncounterRepo{db: db}
}

func (r EncounterRepo) GetByID(ctx context.Context, id string) (encounter.Encounter, error) {
	var m model.Encounter
	if err := getDBFromCtx(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return encounter.Encounter{}, ports.ErrNotFound
		}
		return encounter.Encounter{}, err
	}
	return fromModel(m)
}

func (r EncounterRepo) Create(ctx context.Context, enc encounter.Encounter) error {
	m, err := toModel(enc)
	if err != nil {
		return err
	}
	if err := getDBFromCtx(ctx, r.db).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ports.ErrConflict
		}
		return err
	}
	return nil
}

// AdvanceTurn appends ref to the message log and flips active_player in one
// guarded update. The active_player predicate makes the write conditional: a
// stale or duplicate run whose requester already lost the turn affects zero
// rows and surfaces as ErrConflict.
func (r EncounterRepo) AdvanceTurn(ctx context.Context, id, fromPlayer, toPlayer string, ref encounter.MessageRef) error {
	db := getDBFromCtx(ctx, r.db)

	var m model.Encounter
	if err := db.Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ErrNotFound
		}
		return err
	}

	var log []encounter.MessageRef
	if len(m.MessageLog) > 0 {
		if err := json.Unmarshal(m.MessageLog, &log); err != nil {
			return err
		}
	}
	log = append(log, ref)
	logBytes, err := json.Marshal(log)
	if err != nil {
		return err
	}

	res := db.Model(&model.Encounter{}).
		Where("id = ? AND active_player = ?", id, fromPlayer).
		Updates(map[string]any{
			"active_player": toPlayer,
			"message_log":   logBytes,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func toModel(enc encounter.Encounter) (model.Encounter, error) {
	logBytes, err := json.Marshal(enc.MessageLog)
	if err != nil {
		return model.Encounter{}, err
	}
	return model.Encounter{
		ID:           enc.ID,
		Participant0: enc.Participants[0],
		Participant1: enc.Participants[1],
		ActivePlayer: enc.ActivePlayer,
		Realm:        enc.Realm,
		MessageLog:   logBytes,
		CreatedAt:    enc.CreatedAt,
	}, nil
}

func fromModel(m model.Encounter) (encounter.Encounter, error) {
	var log []encounter.MessageRef
	if len(m.MessageLog) > 0 {
		if err := json.Unmarshal(m.MessageLog, &log); err != nil {
			return encounter.Encounter{}, err
		}
	}
	return encounter.Encounter{
		ID:           m.ID,
		Participants: [2]string{m.Participant0, m.Participant1},
		ActivePlayer: m.ActivePlayer,
		Realm:        m.Realm,
		MessageLog:   log,
		CreatedAt:    m.CreatedAt,
	}, nil
}
