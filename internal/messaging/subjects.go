package messaging

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	sessionPrefix = "olc.session."

	// BroadcastSubject reaches every open session.
	BroadcastSubject = "olc.sessions"
)

// SessionSubject is where notices for one editing session are published.
func SessionSubject(id uuid.UUID) string {
	return sessionPrefix + id.String()
}

// ParseSessionSubject returns the session id a subject belongs to.
func ParseSessionSubject(subject string) (uuid.UUID, error) {
	rest, ok := strings.CutPrefix(subject, sessionPrefix)
	if !ok {
		return uuid.Nil, fmt.Errorf("%q is not a session subject", subject)
	}
	id, err := uuid.Parse(rest)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parsing session id: %w", err)
	}
	return id, nil
}
