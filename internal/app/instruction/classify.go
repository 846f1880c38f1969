package instruction

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"semitae/internal/app/ports"
)

var ErrClassificationFailed = errors.New("message classification failed")

// Low temperature and a tiny output budget: labels should be stable across
// repeated similar exchanges.
const (
	classificationTemperature float32 = 0.3
	classificationMaxTokens           = 20
)

const classificationFraming = `Classify the following player instruction and character response into a single event type.
Example event types: Attack, Intimidate, Persuade, Threaten, Partner up, Ally, Negotiate, Ponder, Wonder, Befriend, etc.
Respond with only the event type, no explanation.`

type Classifier struct {
	Text ports.TextGenerator
}

func (c Classifier) Classify(ctx context.Context, gen GeneratedMessage) (string, error) {
	content := fmt.Sprintf("Player instruction: %s\nCharacter response: %s", gen.Instruction, gen.Response)
	label, err := c.Text.Complete(ctx, ports.TextRequest{
		SystemFraming: classificationFraming,
		UserContent:   content,
		Temperature:   classificationTemperature,
		MaxTokens:     classificationMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrClassificationFailed, err)
	}
	label = strings.TrimSpace(label)
	if label == "" {
		return "", fmt.Errorf("%w: empty label", ErrClassificationFailed)
	}
	return label, nil
}
