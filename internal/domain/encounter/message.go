package encounter

import "time"

// MessageKey is the composite key of a recorded exchange. Timestamp is the
// write time of the base record, not the request time.
type MessageKey struct {
	ConversationID string    `json:"conversation_id"`
	Timestamp      time.Time `json:"timestamp"`
	MessageID      string    `json:"message_id"`
}

// MessageRef is the messageLog element: a reference into the message table.
type MessageRef struct {
	Timestamp time.Time `json:"timestamp"`
	MessageID string    `json:"message_id"`
}

// Message is one recorded exchange. Instruction and Response are immutable
// after creation; Classification starts empty and is set at most once to a
// meaningful value (re-applying the same label is a no-op).
type Message struct {
	Key            MessageKey `json:"key"`
	Instruction    string     `json:"instruction"`
	Response       string     `json:"response"`
	Classification string     `json:"classification,omitempty"`
	LastUpdated    time.Time  `json:"last_updated"`
}

func (m Message) Ref() MessageRef {
	return MessageRef{Timestamp: m.Key.Timestamp, MessageID: m.Key.MessageID}
}
