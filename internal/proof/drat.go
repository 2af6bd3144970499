package proof

import (
	"bufio"
	"fmt"
	"io"

	"github.com/xDarkicex/satcheck/internal/sat"
)

// DRATWriter is a thin serializer over the same step-event stream the
// native encoder consumes (§6 "DRAT"). DRAT emission proper is an
// external collaborator's concern per spec.md's Non-goals, but the
// stream it would read from is this package's Step type, so wiring a
// writer for it costs little and exercises the same event model.
type DRATWriter struct {
	w      *bufio.Writer
	binary bool
}

func NewDRATWriter(w io.Writer, binary bool) *DRATWriter {
	return &DRATWriter{w: bufio.NewWriter(w), binary: binary}
}

func (d *DRATWriter) Flush() error { return d.w.Flush() }

// Write emits one step as DRAT, if it is a step DRAT can represent
// (clause additions and deletions only — DRAT has no notion of
// variable renaming, hashing, or assumptions, so other step kinds are
// silently skipped rather than erroring, matching a "derived,
// incremental addition and RAT unsupported" serializer's scope).
func (d *DRATWriter) Write(s Step) error {
	switch s.Kind {
	case StepAddClause, StepAtClauseRedundant, StepAtClauseIrredundant:
		return d.writeLine(s.Lits, false)
	case StepDeleteClauseRedundant, StepDeleteClauseSimplified, StepDeleteClauseSatisfied:
		return d.writeLine(s.Lits, true)
	default:
		return nil
	}
}

func (d *DRATWriter) writeLine(lits []sat.Lit, deletion bool) error {
	if d.binary {
		return d.writeBinary(lits, deletion)
	}
	return d.writeText(lits, deletion)
}

func (d *DRATWriter) writeText(lits []sat.Lit, deletion bool) error {
	if deletion {
		if _, err := d.w.WriteString("d "); err != nil {
			return err
		}
	}
	for _, l := range lits {
		if _, err := fmt.Fprintf(d.w, "%d ", l.DimacsInt()); err != nil {
			return err
		}
	}
	_, err := d.w.WriteString("0\n")
	return err
}

// writeBinary prefixes each line with 'a'/'d' and encodes literals as
// LEB128 of (lit_code+2) with a 0 terminator (§6 "Binary-DRAT").
func (d *DRATWriter) writeBinary(lits []sat.Lit, deletion bool) error {
	tag := byte('a')
	if deletion {
		tag = byte('d')
	}
	if err := d.w.WriteByte(tag); err != nil {
		return err
	}
	for _, l := range lits {
		v := uint64(uint32(l.Code())) + 2
		for {
			b := byte(v & 0x7f)
			v >>= 7
			if v != 0 {
				if err := d.w.WriteByte(b | 0x80); err != nil {
					return err
				}
			} else {
				if err := d.w.WriteByte(b); err != nil {
					return err
				}
				break
			}
		}
	}
	return d.w.WriteByte(0)
}
