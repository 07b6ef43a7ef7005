package reqtrace

import (
	"fmt"
	"math/rand/v2"
)

// RequestID is a short-lived correlation key tagged onto every log line
// a single request produces. Ids are random 16-bit values with no
// uniqueness guarantee; correlation relies on temporal proximity, not
// identity, so collisions between concurrent requests are acceptable.
type RequestID uint16

// NewRequestID draws an id uniformly from [0, 65535]. Safe for
// concurrent use.
func NewRequestID() RequestID {
	return RequestID(rand.IntN(1 << 16))
}

// Format renders the id as a bold, color-decorated 4-digit hex token.
// The color pair is a pure function of the id, so every line carrying
// the same id gets the same decoration.
func (id RequestID) Format(p *Palette) string {
	return p.Pair(id).decorate(fmt.Sprintf("%04x", uint16(id)))
}
