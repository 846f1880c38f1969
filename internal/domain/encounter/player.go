package encounter

import "time"

// Player carries the opaque attributes that generation framing consumes.
type Player struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Persona   map[string]string `json:"persona,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}
