// Package banner models the merchandising payload optionally attached to a
// hosted-search response. A banner is request-scoped: it survives the search
// call only long enough for the follow-up impression and click telemetry.
package banner

import "encoding/json"

// Banner is a merchandising payload returned with a search response.
type Banner struct {
	id      int
	payload json.RawMessage
}

// New creates a banner. The payload is kept opaque.
func New(id int, payload json.RawMessage) Banner {
	return Banner{id: id, payload: payload}
}

// ID returns the banner identifier. Zero means the banner is untracked.
func (b Banner) ID() int { return b.id }

// Payload returns the opaque merchandising payload.
func (b Banner) Payload() json.RawMessage { return b.payload }

// Trackable reports whether the banner carries an identifier usable for
// impression and click registration.
func (b Banner) Trackable() bool { return b.id > 0 }
