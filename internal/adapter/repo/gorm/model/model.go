package model

import "time"

type Encounter struct {
	ID           string    `gorm:"primaryKey;column:id"`
	Participant0 string    `gorm:"column:participant0"`
	Participant1 string    `gorm:"column:participant1"`
	ActivePlayer string    `gorm:"column:active_player"`
	Realm        string    `gorm:"column:realm"`
	MessageLog   []byte    `gorm:"column:message_log;type:jsonb"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (Encounter) TableName() string { return "encounters" }

type Player struct {
	ID        string    `gorm:"primaryKey;column:id"`
	Name      string    `gorm:"column:name"`
	Persona   []byte    `gorm:"column:persona;type:jsonb"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (Player) TableName() string { return "players" }

// Message rows carry the composite key (conversation, timestamp, message id).
type Message struct {
	ConversationID string    `gorm:"primaryKey;column:conversation_id"`
	Timestamp      time.Time `gorm:"primaryKey;column:timestamp"`
	MessageID      string    `gorm:"primaryKey;column:message_id"`
	Instruction    string    `gorm:"column:instruction"`
	Response       string    `gorm:"column:response"`
	Classification string    `gorm:"column:classification"`
	LastUpdated    time.Time `gorm:"column:last_updated"`
}

func (Message) TableName() string { return "messages" }
