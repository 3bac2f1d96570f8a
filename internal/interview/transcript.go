// Package interview holds the conversation record of a simulated user
// interview and the orchestrator that produces it from a question list.
package interview

import (
	"time"

	"github.com/zero360/researchlab/internal/dialogue"
)

// Role identifies who spoke a transcript turn.
type Role string

const (
	RoleInterviewer Role = "interviewer"
	RolePersona     Role = "persona"
)

// Turn is one utterance in an interview. Failed marks a persona turn
// whose content is a fail-soft apology rather than in-character speech.
type Turn struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Failed    bool      `json:"failed,omitempty"`
}

// Transcript is the ordered record of an interview. Append-only while
// the interview runs; consumers filter by role rather than assuming
// strict alternation.
type Transcript []Turn

// Add appends a turn stamped with the current time.
func (t *Transcript) Add(role Role, content string) {
	*t = append(*t, Turn{Role: role, Content: content, Timestamp: time.Now()})
}

// AddReply appends a persona turn from a dialogue reply, keeping the
// fail-soft text and the Failed flag.
func (t *Transcript) AddReply(r dialogue.Reply) {
	*t = append(*t, Turn{
		Role:      RolePersona,
		Content:   r.Text,
		Timestamp: time.Now(),
		Failed:    r.Failed,
	})
}

// PersonaContents returns the persona-side texts in order. This is the
// input shape the analytics engine scores.
func (t Transcript) PersonaContents() []string {
	var out []string
	for _, turn := range t {
		if turn.Role == RolePersona {
			out = append(out, turn.Content)
		}
	}
	return out
}

// Questions returns the interviewer-side texts in order.
func (t Transcript) Questions() []string {
	var out []string
	for _, turn := range t {
		if turn.Role == RoleInterviewer {
			out = append(out, turn.Content)
		}
	}
	return out
}
