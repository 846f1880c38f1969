package instruction

import (
	"errors"

	"semitae/internal/app/ports"
	"semitae/internal/domain/encounter"
)

type Request struct {
	ConversationID string
	PlayerID       string
	Instruction    string
}

type Response struct {
	Message         encounter.Message `json:"message"`
	NewActivePlayer string            `json:"new_active_player"`
}

type Stage string

const (
	StageValidating  Stage = "Validating"
	StageGenerating  Stage = "Generating"
	StageClassifying Stage = "Classifying"
	StageRecording   Stage = "Recording"
	StageCompleted   Stage = "Completed"
)

// StageError tags a step failure with the stage it originated from. The
// wrapped error is left untouched so callers can errors.Is against the
// workflow sentinels.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return string(e.Stage) + ": " + e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func failAt(stage Stage, err error) *StageError {
	return &StageError{Stage: stage, Err: err}
}

// Result is the uniform envelope every run terminates with, success or not.
type Result struct {
	OK              bool               `json:"ok"`
	Stage           Stage              `json:"stage"`
	ErrorKind       string             `json:"error_kind,omitempty"`
	Message         string             `json:"message,omitempty"`
	UpdatedMessage  *encounter.Message `json:"updated_message,omitempty"`
	NewActivePlayer string             `json:"new_active_player,omitempty"`
}

const (
	KindNotFound             = "NotFound"
	KindNotParticipant       = "NotParticipant"
	KindWrongTurn            = "WrongTurn"
	KindGenerationFailed     = "GenerationFailed"
	KindClassificationFailed = "ClassificationFailed"
	KindRecordConflict       = "RecordConflict"
	KindPersistenceError     = "PersistenceError"
	KindInvalidRequest       = "InvalidRequest"
)

func errorKind(err error) string {
	switch {
	case errors.Is(err, encounter.ErrNotParticipant):
		return KindNotParticipant
	case errors.Is(err, encounter.ErrWrongTurn):
		return KindWrongTurn
	case errors.Is(err, ErrGenerationFailed):
		return KindGenerationFailed
	case errors.Is(err, ErrClassificationFailed):
		return KindClassificationFailed
	case errors.Is(err, ports.ErrConflict):
		return KindRecordConflict
	case errors.Is(err, ports.ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidRequest):
		return KindInvalidRequest
	default:
		return KindPersistenceError
	}
}
