package instruction

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"semitae/internal/app/ports"
)

var ErrGenerationFailed = errors.New("message generation failed")

const (
	defaultGenerationTemperature float32 = 0.7
	defaultGenerationMaxTokens           = 256
)

type Generator struct {
	Text        ports.TextGenerator
	Temperature float32
	MaxTokens   int
}

// GeneratedMessage pairs the generated response with the instruction that
// produced it; both travel together into recording.
type GeneratedMessage struct {
	Instruction string
	Response    string
}

func (g Generator) Generate(ctx context.Context, tc TurnContext) (GeneratedMessage, error) {
	temp := g.Temperature
	if temp == 0 {
		temp = defaultGenerationTemperature
	}
	maxTokens := g.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultGenerationMaxTokens
	}

	out, err := g.Text.Complete(ctx, ports.TextRequest{
		SystemFraming: generationFraming(tc),
		UserContent:   tc.Instruction,
		Temperature:   temp,
		MaxTokens:     maxTokens,
	})
	if err != nil {
		return GeneratedMessage{}, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return GeneratedMessage{}, fmt.Errorf("%w: empty completion", ErrGenerationFailed)
	}
	return GeneratedMessage{Instruction: tc.Instruction, Response: out}, nil
}

func generationFraming(tc TurnContext) string {
	var b strings.Builder
	name := tc.Player.Name
	if name == "" {
		name = tc.PlayerID
	}
	fmt.Fprintf(&b, "You are %s, a character", name)
	if tc.Encounter.Realm != "" {
		fmt.Fprintf(&b, " in the realm of %s", tc.Encounter.Realm)
	}
	b.WriteString(". Stay in character and respond concisely to the player's instruction, addressing the other participant directly.")
	if len(tc.Player.Persona) > 0 {
		b.WriteString("\nCharacter traits:")
		keys := make([]string, 0, len(tc.Player.Persona))
		for k := range tc.Player.Persona {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "\n- %s: %s", k, tc.Player.Persona[k])
		}
	}
	return b.String()
}
