package proof

import (
	"github.com/sirupsen/logrus"

	"github.com/xDarkicex/satcheck/core"
	"github.com/xDarkicex/satcheck/internal/sat"
)

// CheckVerdict is the checker's public result, mirroring the solver's
// own SAT/UNSAT/UNKNOWN trio per §7 "User-visible behavior".
type CheckVerdict uint8

const (
	CheckUnknown CheckVerdict = iota
	CheckVerified
	CheckNotVerified
)

func (v CheckVerdict) String() string {
	switch v {
	case CheckVerified:
		return "VERIFIED"
	case CheckNotVerified:
		return "NOT VERIFIED"
	default:
		return "UNKNOWN"
	}
}

// Checker is the on-the-fly proof-step processor of §4.P/Q/R: it
// consumes a Step stream (from either the native decoder or a direct
// in-process emitter) and validates each step against its own clause
// index and variable table, independent of the solver that produced
// the proof.
type Checker struct {
	core.Poisoned
	log *logrus.Logger

	idx   *ClauseIndex
	width *HashWidth
	vars  *VarTable
	rup   *RUPChecker

	assumptions []sat.Lit
	model       []sat.Lit

	lastIrredundant *CheckerClause

	unitConflict [2]CheckerClauseID
	hasConflict  bool

	lrat       *LRATTranscriber
	transcript *Transcript

	sawEnd bool
	step   int64
}

func NewChecker() *Checker {
	width := NewHashWidth()
	idx := NewClauseIndex(width)
	c := &Checker{
		log:        logrus.StandardLogger(),
		idx:        idx,
		width:      width,
		vars:       NewVarTable(),
		rup:        NewRUPChecker(idx),
		lrat:       NewLRATTranscriber(),
		transcript: NewTranscript(),
	}
	return c
}

func (c *Checker) SetLogger(l *logrus.Logger) { c.log = l }

// Process validates one proof step and updates checker state. Parse
// and semantic (CheckFailedError) errors abort checking immediately per
// §7 "Propagation".
func (c *Checker) Process(s Step) error {
	c.CheckPoisoned()
	c.step++
	if err := c.process(s); err != nil {
		return err
	}
	return nil
}

func (c *Checker) process(s Step) error {
	switch s.Kind {
	case StepUserVarName:
		if s.UserVar < 0 {
			c.vars.ClearUserName(s.GlobalVar)
			return nil
		}
		return c.vars.SetUserName(c.step, s.GlobalVar, s.UserVar)
	case StepSolverVarNameUpdate:
		c.vars.SetSolverName(s.GlobalVar, s.SolverVar)
		return nil
	case StepSolverVarNameRemove:
		c.vars.RemoveSolverName(s.GlobalVar)
		return nil
	case StepChangeSamplingMode:
		return c.vars.ChangeSamplingMode(c.step, s.GlobalVar, s.Sample)
	case StepDeleteVar:
		return c.processDeleteVar(s.GlobalVar)
	case StepAddClause:
		return c.processAddClause(s.Lits)
	case StepAtClauseRedundant:
		return c.processAtClause(s.Lits, s.Hashes, true)
	case StepAtClauseIrredundant:
		return c.processAtClause(s.Lits, s.Hashes, false)
	case StepUnitClauses:
		return c.processUnitClauses(s.Units)
	case StepDeleteClauseRedundant:
		return c.processDelete(s.Lits, deleteRedundant)
	case StepDeleteClauseSimplified:
		return c.processDelete(s.Lits, deleteSimplified)
	case StepDeleteClauseSatisfied:
		return c.processDelete(s.Lits, deleteSatisfied)
	case StepChangeHashBits:
		c.idx.Rehash(s.Bits)
		c.log.WithField("bits", s.Bits).Debug("proof: hash width changed")
		return nil
	case StepModel:
		c.model = s.Lits
		c.transcript.RecordModel(s.Lits)
		return nil
	case StepAssumptions:
		c.assumptions = s.Lits
		c.transcript.RecordAssumptions(s.Lits)
		return nil
	case StepFailedAssumptions:
		c.transcript.RecordFailedAssumptions(s.Lits)
		return nil
	case StepEnd:
		c.sawEnd = true
		return nil
	default:
		return core.NewCheckFailedError(c.step, "unrecognized step kind", s.Kind.String())
	}
}

// processDeleteVar implements the RAT-pivot deletion path of
// SUPPLEMENTED FEATURES item 2: a variable with a known unit is
// deleted as if by a RAT step pivoting on that variable, which this
// checker models as simply discharging the recorded unit (the unit's
// justification was already independently verified when it was added)
// before handing off to VarTable's structural checks.
func (c *Checker) processDeleteVar(global int32) error {
	if _, hasUnit := c.vars.HasUnit(global); hasUnit {
		c.log.WithField("global", global).Debug("proof: deleting variable via RAT-pivot unit discharge")
	}
	return c.vars.Delete(c.step, global)
}

func (c *Checker) processAddClause(lits []sat.Lit) error {
	canon, tautology := Canonicalize(lits)
	if tautology {
		c.idx.nextID++
		c.transcript.RecordTautology(c.idx.nextID)
		return nil
	}
	clause, isNew := c.idx.Insert(canon, false)
	if len(canon) == 1 {
		if err := c.observeUnit(canon[0], clause.ID); err != nil {
			return err
		}
	}
	if !isNew && clause.RefRed > 0 && clause.RefIrred == 1 {
		c.transcript.RecordNewlyIrredundant(clause.ID)
	}
	if len(canon) >= 2 {
		for _, l := range canon {
			c.vars.SetIsolated(int32(l.Var()), false)
		}
	}
	return nil
}

func (c *Checker) processAtClause(lits []sat.Lit, hashes []uint64, redundant bool) error {
	canon, tautology := Canonicalize(lits)
	if tautology {
		return core.NewCheckFailedError(c.step, "AT/RUP step produced a tautological clause", "AtClause")
	}
	ok, trace := c.rup.Check(canon, hashes)
	if !ok {
		return core.NewCheckFailedError(c.step, "RUP check failed: clause is not implied by the recorded hints", "AtClause")
	}
	clause, isNew := c.idx.Insert(canon, redundant)
	_ = isNew
	if len(canon) == 1 {
		if err := c.observeUnit(canon[0], clause.ID); err != nil {
			return err
		}
	}
	if !redundant {
		c.lastIrredundant = clause
	}
	c.lrat.RecordAdd(clause.ID, canon, trace)
	return nil
}

func (c *Checker) processUnitClauses(units []UnitEntry) error {
	for _, u := range units {
		ok, trace := c.rup.Check([]sat.Lit{u.Lit}, []uint64{u.Hash})
		if !ok {
			return core.NewCheckFailedError(c.step, "unit propagation step failed RUP verification", "UnitClauses")
		}
		clause, _ := c.idx.Insert([]sat.Lit{u.Lit}, true)
		if err := c.observeUnit(u.Lit, clause.ID); err != nil {
			return err
		}
		c.lrat.RecordAdd(clause.ID, []sat.Lit{u.Lit}, trace)
	}
	return nil
}

// observeUnit enforces "unit clauses are globally unique per literal":
// a second, conflicting unit on the same variable flips the checker
// into UNSAT with the recorded pair of ids (§4.P step-processor
// invariants).
func (c *Checker) observeUnit(lit sat.Lit, id CheckerClauseID) error {
	c.vars.MarkUnit(int32(lit.Var()), lit)
	if other := c.idx.Find([]sat.Lit{lit.Negate()}); other != nil {
		c.unitConflict = [2]CheckerClauseID{id, other.ID}
		c.hasConflict = true
	}
	return nil
}

type deleteKind uint8

const (
	deleteRedundant deleteKind = iota
	deleteSimplified
	deleteSatisfied
)

func (c *Checker) processDelete(lits []sat.Lit, kind deleteKind) error {
	canon, _ := Canonicalize(lits)
	if len(canon) <= 1 {
		return core.NewCheckFailedError(c.step, "cannot delete a unit or empty clause", "DeleteClause")
	}

	existing := c.idx.Find(canon)
	if existing == nil {
		return core.NewCheckFailedError(c.step, "delete of unknown clause", "DeleteClause")
	}

	switch kind {
	case deleteRedundant:
		if existing.RefRed == 0 {
			return core.NewCheckFailedError(c.step, "Redundant delete of a clause with no redundant reference", "DeleteClause")
		}
		_, _, _ = c.idx.Remove(canon, true)
	case deleteSatisfied:
		subsumer, satisfied := c.findSatisfyingUnit(canon)
		if !satisfied {
			return core.NewCheckFailedError(c.step, "Satisfied delete: no literal of the clause is a known unit", "DeleteClause")
		}
		c.lrat.RecordImplicitDelete(existing.ID, subsumer)
		_, _, _ = c.idx.Remove(canon, existing.RefRed > 0)
	case deleteSimplified:
		if c.lastIrredundant == nil || !strictSuperset(canon, c.lastIrredundant.Literals) {
			return core.NewCheckFailedError(c.step, "Simplified delete: clause is not a strict superset of the previous irredundant clause", "DeleteClause")
		}
		c.lrat.RecordImplicitDelete(existing.ID, c.lastIrredundant.ID)
		_, _, _ = c.idx.Remove(canon, existing.RefRed > 0)
	}

	c.lrat.RecordDelete(existing.ID)
	return nil
}

func (c *Checker) findSatisfyingUnit(lits []sat.Lit) (CheckerClauseID, bool) {
	for _, l := range lits {
		if u, ok := c.idx.UnitValue(l.Var()); ok && u == l {
			if clause := c.idx.Find([]sat.Lit{u}); clause != nil {
				return clause.ID, true
			}
		}
	}
	return 0, false
}

func strictSuperset(a, b []sat.Lit) bool {
	if len(a) <= len(b) {
		return false
	}
	set := make(map[sat.Lit]bool, len(a))
	for _, l := range a {
		set[l] = true
	}
	for _, l := range b {
		if !set[l] {
			return false
		}
	}
	return true
}

// Verdict reports the checker's final status: NotVerified on an
// observed unit conflict, Verified if an End step was processed
// without one, Unknown otherwise (proof still in progress).
func (c *Checker) Verdict() (CheckVerdict, error) {
	if c.hasConflict {
		return CheckNotVerified, core.NewCheckFailedError(c.step,
			"conflicting unit clauses observed", "unit-conflict")
	}
	if c.sawEnd {
		return CheckVerified, nil
	}
	return CheckUnknown, core.NewProofIncompleteError("no End step observed")
}

// LRAT returns the accumulated LRAT transcript.
func (c *Checker) LRAT() *LRATTranscriber { return c.lrat }

// Transcript returns the accumulated user-visible event summary.
func (c *Checker) Transcript() *Transcript { return c.transcript }
