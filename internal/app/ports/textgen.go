package ports

import "context"

// TextRequest is the generative-capability contract. The same port serves
// both in-character generation (moderate temperature) and event-type
// classification (near-zero temperature, tiny output budget).
type TextRequest struct {
	SystemFraming string
	UserContent   string
	Temperature   float32
	MaxTokens     int
}

type TextGenerator interface {
	Complete(ctx context.Context, req TextRequest) (string, error)
}
