package user

import (
	"encoding/json"
)

// Principal is a verified caller identity taken from a session token
type Principal struct {
	id     UserID
	claims json.RawMessage
}

// NewPrincipal creates a Principal. claims holds the verified token claims as JSON
// and may be nil, in which case Claims synthesizes a minimal {"sub": id} document.
func NewPrincipal(id UserID, claims json.RawMessage) *Principal {
	return &Principal{id: id, claims: claims}
}

func (p *Principal) ID() UserID {
	return p.id
}

// Claims returns the claims document that row-level policies read the caller from
func (p *Principal) Claims() json.RawMessage {
	if len(p.claims) > 0 {
		return p.claims
	}
	b, _ := json.Marshal(map[string]string{"sub": p.id.String()})
	return b
}

// IsAuthenticated reports whether p carries a caller identity
func (p *Principal) IsAuthenticated() bool {
	return p != nil && !p.id.IsZero()
}
