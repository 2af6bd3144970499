package proof

import "github.com/xDarkicex/satcheck/internal/sat"

// TranscriptEventKind tags a user-visible summary event (component T).
type TranscriptEventKind uint8

const (
	EventModel TranscriptEventKind = iota
	EventAssumptions
	EventFailedAssumptions
	EventTautology
	EventNewlyIrredundant
)

// TranscriptEvent is one user-facing summary record.
type TranscriptEvent struct {
	Kind     TranscriptEventKind
	Lits     []sat.Lit
	ClauseID CheckerClauseID
}

// Transcript accumulates the user-visible subset of checker events
// (§4 component T): model assignments, assumption sets, failed-core
// reports, and a few diagnostic notes (tautological input, a clause
// becoming newly-irredundant). It is purely observational — nothing
// here feeds back into checker verification.
type Transcript struct {
	events []TranscriptEvent
}

func NewTranscript() *Transcript { return &Transcript{} }

func (t *Transcript) RecordModel(lits []sat.Lit) {
	t.events = append(t.events, TranscriptEvent{Kind: EventModel, Lits: lits})
}

func (t *Transcript) RecordAssumptions(lits []sat.Lit) {
	t.events = append(t.events, TranscriptEvent{Kind: EventAssumptions, Lits: lits})
}

func (t *Transcript) RecordFailedAssumptions(lits []sat.Lit) {
	t.events = append(t.events, TranscriptEvent{Kind: EventFailedAssumptions, Lits: lits})
}

func (t *Transcript) RecordTautology(id CheckerClauseID) {
	t.events = append(t.events, TranscriptEvent{Kind: EventTautology, ClauseID: id})
}

func (t *Transcript) RecordNewlyIrredundant(id CheckerClauseID) {
	t.events = append(t.events, TranscriptEvent{Kind: EventNewlyIrredundant, ClauseID: id})
}

// Events returns every recorded summary event in order.
func (t *Transcript) Events() []TranscriptEvent { return t.events }
