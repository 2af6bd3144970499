package proof

import (
	"github.com/sirupsen/logrus"

	"github.com/xDarkicex/satcheck/core"
	"github.com/xDarkicex/satcheck/internal/sat"
)

// Emitter is the solver-side half of §4.O: it turns solver mutations
// into canonical Steps and forwards each one, in the exact order
// mutations occur, to whichever sinks are configured — a native
// encoder for on-disk serialization, an in-process Checker for
// on-the-fly verification, or both (§5 "the proof emitter emits steps
// in the exact order that mutations occur, so the on-the-fly checker
// sees identical state").
type Emitter struct {
	core.Poisoned
	log *logrus.Logger

	encoder *NativeEncoder
	checker *Checker

	width        uint8
	liveClauses  int
	firstSolveDone bool
}

// NewEmitter constructs an emitter; either sink may be nil (e.g. a
// checker-less run that only serializes, or an in-process verification
// run with no on-disk proof).
func NewEmitter(encoder *NativeEncoder, checker *Checker) *Emitter {
	return &Emitter{
		log:     logrus.StandardLogger(),
		encoder: encoder,
		checker: checker,
		width:   NewHashWidth().Bits,
	}
}

func (e *Emitter) SetLogger(l *logrus.Logger) { e.log = l }

func (e *Emitter) emit(s Step) error {
	e.CheckPoisoned()
	if e.encoder != nil {
		if err := e.encoder.Encode(s); err != nil {
			e.Poison(err)
			return err
		}
	}
	if e.checker != nil {
		if err := e.checker.Process(s); err != nil {
			e.Poison(core.NewProofProcessorError("checker", err))
			return e.Err()
		}
	}
	return nil
}

func (e *Emitter) EmitUserVarName(global, user int32) error {
	return e.emit(Step{Kind: StepUserVarName, GlobalVar: global, UserVar: user})
}

func (e *Emitter) EmitSolverVarNameUpdate(global, solver int32) error {
	return e.emit(Step{Kind: StepSolverVarNameUpdate, GlobalVar: global, SolverVar: solver})
}

func (e *Emitter) EmitSolverVarNameRemove(global int32) error {
	return e.emit(Step{Kind: StepSolverVarNameRemove, GlobalVar: global})
}

func (e *Emitter) EmitDeleteVar(global int32) error {
	return e.emit(Step{Kind: StepDeleteVar, GlobalVar: global})
}

func (e *Emitter) EmitChangeSamplingMode(global int32, sample bool) error {
	return e.emit(Step{Kind: StepChangeSamplingMode, GlobalVar: global, Sample: sample})
}

// EmitAddClause records an input clause. Per SUPPLEMENTED FEATURES
// item 1, the caller must only invoke this for clauses added after the
// first solve() call; clauses present in the initial load are implicit
// and never themselves need a proof step.
func (e *Emitter) EmitAddClause(lits []sat.Lit) error {
	if err := e.emit(Step{Kind: StepAddClause, Lits: lits}); err != nil {
		return err
	}
	e.noteLiveClauseDelta(1)
	return nil
}

func (e *Emitter) EmitAtClause(redundant bool, lits []sat.Lit, hashes []uint64) error {
	kind := StepAtClauseIrredundant
	if redundant {
		kind = StepAtClauseRedundant
	}
	if err := e.emit(Step{Kind: kind, Lits: lits, Hashes: hashes}); err != nil {
		return err
	}
	e.noteLiveClauseDelta(1)
	return nil
}

func (e *Emitter) EmitUnitClauses(units []UnitEntry) error {
	return e.emit(Step{Kind: StepUnitClauses, Units: units})
}

type DeleteProof uint8

const (
	DeleteRedundant DeleteProof = iota
	DeleteSimplified
	DeleteSatisfied
)

func (e *Emitter) EmitDeleteClause(proof DeleteProof, lits []sat.Lit) error {
	var kind StepKind
	switch proof {
	case DeleteRedundant:
		kind = StepDeleteClauseRedundant
	case DeleteSimplified:
		kind = StepDeleteClauseSimplified
	case DeleteSatisfied:
		kind = StepDeleteClauseSatisfied
	}
	if err := e.emit(Step{Kind: kind, Lits: lits}); err != nil {
		return err
	}
	e.noteLiveClauseDelta(-1)
	return nil
}

func (e *Emitter) EmitModel(lits []sat.Lit) error {
	return e.emit(Step{Kind: StepModel, Lits: lits})
}

func (e *Emitter) EmitAssumptions(lits []sat.Lit) error {
	return e.emit(Step{Kind: StepAssumptions, Lits: lits})
}

func (e *Emitter) EmitFailedAssumptions(lits []sat.Lit, hashes []uint64) error {
	return e.emit(Step{Kind: StepFailedAssumptions, Lits: lits, Hashes: hashes})
}

func (e *Emitter) EmitEnd() error {
	return e.emit(Step{Kind: StepEnd})
}

// MarkFirstSolveDone enables the adaptive-hash-width shrink path,
// which per §4.O only applies "only after first solve".
func (e *Emitter) MarkFirstSolveDone() { e.firstSolveDone = true }

func (e *Emitter) noteLiveClauseDelta(delta int) {
	e.liveClauses += delta
	if e.liveClauses < 0 {
		e.liveClauses = 0
	}
	e.maybeResizeHash()
}

// maybeResizeHash implements the adaptive hashing policy: grow the
// width by 2 bits once live clauses exceed 1<<(bits/2); shrink by 2
// once they drop below a quarter of that threshold, but only once a
// first solve has completed (§4.O "Adaptive hashing").
func (e *Emitter) maybeResizeHash() {
	threshold := uint64(1) << uint(e.width/2)
	grew := false
	if uint64(e.liveClauses) > threshold {
		e.width += 2
		grew = true
	} else if e.firstSolveDone && uint64(e.liveClauses) < threshold/4 && e.width > 2 {
		e.width -= 2
		grew = true
	}
	if grew {
		e.log.WithFields(logrus.Fields{"bits": e.width, "live_clauses": e.liveClauses}).
			Debug("proof: adaptive hash width changed")
		_ = e.emit(Step{Kind: StepChangeHashBits, Bits: e.width})
	}
}
