package interview

import (
	"context"
	"log/slog"

	"github.com/zero360/researchlab/internal/dialogue"
	"github.com/zero360/researchlab/internal/persona"
	"github.com/zero360/researchlab/internal/product"
)

// Observer is called after each completed exchange with the number of
// questions answered so far and the total.
type Observer func(done, total int)

// Orchestrator runs scripted interviews: a fixed question list against
// one persona, one exchange at a time on the calling goroutine.
type Orchestrator struct {
	responder dialogue.Responder
	observer  Observer
	log       *slog.Logger
}

// NewOrchestrator wires an orchestrator. observer may be nil.
func NewOrchestrator(r dialogue.Responder, observer Observer, log *slog.Logger) *Orchestrator {
	if log == nil {
		log = slog.Default()
	}
	return &Orchestrator{responder: r, observer: observer, log: log}
}

// Run asks every question in order and returns the transcript. A
// completed run holds exactly two turns per question, interviewer then
// persona, in question order; failed replies are recorded as persona
// turns with Failed set and the run continues. Cancellation is checked
// between exchanges only, returning the partial transcript with the
// context error.
func (o *Orchestrator) Run(ctx context.Context, p persona.Persona, prod product.Product, questions []string) (Transcript, error) {
	p = p.Resolved()
	var t Transcript

	for i, q := range questions {
		if err := ctx.Err(); err != nil {
			return t, err
		}

		t.Add(RoleInterviewer, q)

		reply := o.responder.Respond(ctx, q, p, prod)
		if reply.Failed {
			o.log.Warn("persona reply failed",
				"persona", p.Name,
				"question", i+1,
				"error", reply.Err)
		}
		t.AddReply(reply)

		if o.observer != nil {
			o.observer(i+1, len(questions))
		}
	}

	return t, nil
}
