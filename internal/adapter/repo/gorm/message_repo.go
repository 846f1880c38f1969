package gormrepo

import (
	"context"
	"errors"
	"time"

	"semitae/internal/adapter/repo/gorm/model"
	"semitae/internal/app/ports"
	"semitae/internal/domain/encounter"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MessageRepo struct {
	db *gorm.DB
}

func NewMessageRepo(db *gorm.DB) MessageRepo {
	return MessageRepo{db: db}
}

func (r MessageRepo) Create(ctx context.Context, msg encounter.Message) error {
	m := model.Message{
		ConversationID: msg.Key.ConversationID,
		Timestamp:      msg.Key.Timestamp,
		MessageID:      msg.Key.MessageID,
		Instruction:    msg.Instruction,
		Response:       msg.Response,
		Classification: msg.Classification,
		LastUpdated:    msg.LastUpdated,
	}
	if err := getDBFromCtx(ctx, r.db).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ports.ErrConflict
		}
		return err
	}
	return nil
}

func (r MessageRepo) GetByKey(ctx context.Context, key encounter.MessageKey) (encounter.Message, error) {
	var m model.Message
	err := getDBFromCtx(ctx, r.db).
		Where("conversation_id = ? AND timestamp = ? AND message_id = ?", key.ConversationID, key.Timestamp, key.MessageID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return encounter.Message{}, ports.ErrNotFound
		}
		return encounter.Message{}, err
	}
	return messageFromModel(m), nil
}

// SetClassification enriches a recorded message. Re-applying the stored label
// is a no-op; any other label on a classified row is a conflict. The final
// update stays predicated on classification being unset so concurrent
// enrichments cannot overwrite each other.
func (r MessageRepo) SetClassification(ctx context.Context, key encounter.MessageKey, label string, now time.Time) error {
	db := getDBFromCtx(ctx, r.db)

	var m model.Message
	err := db.
		Where("conversation_id = ? AND timestamp = ? AND message_id = ?", key.ConversationID, key.Timestamp, key.MessageID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ErrNotFound
		}
		return err
	}
	if m.Classification == label {
		return nil
	}
	if m.Classification != "" {
		return ports.ErrConflict
	}

	res := db.Model(&model.Message{}).
		Where("conversation_id = ? AND timestamp = ? AND message_id = ? AND classification = ''", key.ConversationID, key.Timestamp, key.MessageID).
		Updates(map[string]any{
			"classification": label,
			"last_updated":   now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func (r MessageRepo) ListByConversation(ctx context.Context, conversationID string, limit int) ([]encounter.Message, error) {
	rows := []model.Message{}
	query := getDBFromCtx(ctx, r.db).
		Where("conversation_id = ?", conversationID).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{
				{Column: clause.Column{Name: "timestamp"}},
				{Column: clause.Column{Name: "message_id"}},
			},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]encounter.Message, 0, len(rows))
	for _, row := range rows {
		out = append(out, messageFromModel(row))
	}
	return out, nil
}

func messageFromModel(m model.Message) encounter.Message {
	return encounter.Message{
		Key: encounter.MessageKey{
			ConversationID: m.ConversationID,
			Timestamp:      m.Timestamp,
			MessageID:      m.MessageID,
		},
		Instruction:    m.Instruction,
		Response:       m.Response,
		Classification: m.Classification,
		LastUpdated:    m.LastUpdated,
	}
}
