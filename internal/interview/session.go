package interview

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/zero360/researchlab/internal/analytics"
	"github.com/zero360/researchlab/internal/dialogue"
	"github.com/zero360/researchlab/internal/persona"
	"github.com/zero360/researchlab/internal/product"
)

// Session carries one interactive interview: the persona under
// interview, the product being discussed, the running transcript, and
// the metrics computed from it. It is an explicit handle with a single
// writer; callers that share a session across goroutines must
// serialize access themselves.
type Session struct {
	ID         string            `json:"id"`
	Persona    persona.Persona   `json:"persona"`
	Product    product.Product   `json:"product"`
	Transcript Transcript        `json:"transcript"`
	Metrics    analytics.Metrics `json:"metrics"`
	CreatedAt  time.Time         `json:"created_at"`
	Active     bool              `json:"active"`
}

// NewSessionID generates a ULID for a new session.
func NewSessionID() (string, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return "", fmt.Errorf("generate ulid: %w", err)
	}
	return id.String(), nil
}

// NewSession starts an interview session. The persona is resolved once
// here; later calls rely on its Kind and Archetype being final.
func NewSession(p persona.Persona, prod product.Product) (*Session, error) {
	id, err := NewSessionID()
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:        id,
		Persona:   p.Resolved(),
		Product:   prod,
		Metrics:   analytics.Score(nil),
		CreatedAt: time.Now(),
		Active:    true,
	}, nil
}

// Ask records one interviewer question, obtains the persona's reply,
// and refreshes the metrics. The returned reply may be a fail-soft
// apology; it is recorded either way.
func (s *Session) Ask(ctx context.Context, r dialogue.Responder, question string) dialogue.Reply {
	s.Transcript.Add(RoleInterviewer, question)
	reply := r.Respond(ctx, question, s.Persona, s.Product)
	s.Transcript.AddReply(reply)
	s.RefreshMetrics()
	return reply
}

// RefreshMetrics recomputes the analytics for the current transcript.
func (s *Session) RefreshMetrics() {
	s.Metrics = analytics.Score(s.Transcript.PersonaContents())
}

// End marks the session inactive. The transcript and metrics stay
// readable.
func (s *Session) End() {
	s.Active = false
}
