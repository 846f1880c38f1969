package instruction

import (
	"context"
	"errors"
	"strings"

	"semitae/internal/app/ports"
)

var ErrInvalidRequest = errors.New("invalid instruction request")

// UseCase sequences one workflow run: validate, generate, record the base
// message, classify, record the classification, then flip the turn. Steps run
// strictly in order against the shared store; the use case itself carries no
// state between runs and performs no business logic beyond sequencing.
type UseCase struct {
	Validator  Validator
	Generator  Generator
	Classifier Classifier
	Recorder   Recorder
	Metrics    ports.WorkflowMetrics
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.ConversationID = strings.TrimSpace(req.ConversationID)
	req.PlayerID = strings.TrimSpace(req.PlayerID)
	req.Instruction = strings.TrimSpace(req.Instruction)
	if req.ConversationID == "" || req.PlayerID == "" || req.Instruction == "" {
		return Response{}, failAt(StageValidating, ErrInvalidRequest)
	}

	tc, err := u.Validator.Validate(ctx, req)
	if err != nil {
		return u.fail(StageValidating, err)
	}

	gen, err := u.Generator.Generate(ctx, tc)
	if err != nil {
		return u.fail(StageGenerating, err)
	}

	// Base message first: a classification failure must never discard a
	// paid-for generation. The turn has not flipped yet, so the requester can
	// re-submit; the unclassified record simply stays behind.
	msg, err := u.Recorder.RecordBase(ctx, req.ConversationID, gen)
	if err != nil {
		return u.fail(StageRecording, err)
	}

	label, err := u.Classifier.Classify(ctx, gen)
	if err != nil {
		return u.fail(StageClassifying, err)
	}

	if err := u.Recorder.RecordClassification(ctx, msg.Key, label); err != nil {
		return u.fail(StageRecording, err)
	}
	msg.Classification = label

	if err := u.Recorder.AdvanceTurn(ctx, tc.Encounter.ID, req.PlayerID, tc.OtherPlayerID, msg.Ref()); err != nil {
		return u.fail(StageRecording, err)
	}

	if u.Metrics != nil {
		u.Metrics.RecordCompleted(label)
	}
	return Response{Message: msg, NewActivePlayer: tc.OtherPlayerID}, nil
}

// Run wraps Execute into the uniform result envelope.
func (u UseCase) Run(ctx context.Context, req Request) Result {
	resp, err := u.Execute(ctx, req)
	if err != nil {
		stage := StageValidating
		var stageErr *StageError
		if errors.As(err, &stageErr) {
			stage = stageErr.Stage
		}
		return Result{
			OK:        false,
			Stage:     stage,
			ErrorKind: errorKind(err),
			Message:   err.Error(),
		}
	}
	return Result{
		OK:              true,
		Stage:           StageCompleted,
		UpdatedMessage:  &resp.Message,
		NewActivePlayer: resp.NewActivePlayer,
	}
}

func (u UseCase) fail(stage Stage, err error) (Response, error) {
	if u.Metrics != nil {
		if errors.Is(err, ports.ErrConflict) {
			u.Metrics.RecordConflict()
		} else {
			u.Metrics.RecordFailed(string(stage))
		}
	}
	return Response{}, failAt(stage, err)
}
