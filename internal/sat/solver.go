// Package sat implements the CDCL search core described at the top of
// literal.go. This file assembles components A-N into the top-level
// Solver, following the "named parts" discipline: routines take only
// the parts (*Trail, *Watchlists, *ClauseAllocator, ...) they need
// rather than the whole Solver, so the compiler enforces which state a
// routine may touch even though Go has no partial-borrow checker.
package sat

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/xDarkicex/satcheck/core"
)

// Verdict is the outcome of a Solve call.
type Verdict uint8

const (
	Unknown Verdict = iota
	Satisfiable
	Unsatisfiable
)

func (v Verdict) String() string {
	switch v {
	case Satisfiable:
		return "SAT"
	case Unsatisfiable:
		return "UNSAT"
	default:
		return "UNKNOWN"
	}
}

// Result is returned by Solve: a model under Satisfiable, a failed
// assumption core under Unsatisfiable-with-assumptions, or neither.
type Result struct {
	Verdict    Verdict
	Model      []Lbool // indexed by Var, valid when Verdict == Satisfiable
	FailedCore []Lit   // valid when Verdict == Unsatisfiable and assumptions were set
}

// Solver ties every component together. Each field is independently
// owned infrastructure; solver.go's job is orchestration, not state.
type Solver struct {
	core.Poisoned

	cfg Config
	log *logrus.Logger

	alloc *ClauseAllocator
	db    *ClauseDB
	bin   *BinaryClauses
	watch *Watchlists
	trail *Trail
	prop  *Propagator
	an    *Analyzer
	vsids *VSIDS
	sched *Scheduler
	red   *Reducer
	asm   *AssumptionState
	vars  *VariableTable

	stats Stats

	unitClauses  []Lit // clauses of length 1, folded directly into the root trail
	rootConflict bool  // set when two input unit clauses contradict each other
}

// NewSolver constructs an empty solver ready to accept clauses.
func NewSolver(cfg Config) *Solver {
	alloc := NewClauseAllocator()
	s := &Solver{
		cfg:   cfg,
		log:   logrus.StandardLogger(),
		alloc: alloc,
		db:    NewClauseDB(alloc),
		bin:   NewBinaryClauses(0),
		watch: NewWatchlists(0),
		trail: NewTrail(0),
		vsids: NewVSIDS(0),
		sched: NewScheduler(),
		asm:   NewAssumptionState(),
		vars:  NewVariableTable(),
	}
	s.prop = NewPropagator(s.alloc, s.watch, s.bin, s.trail)
	s.an = NewAnalyzer(s.alloc, s.bin, s.trail, 0)
	s.red = NewReducer(s.alloc, s.db)
	return s
}

// SetLogger overrides the default standard logrus logger, letting a
// caller route solver diagnostics into its own structured pipeline.
func (s *Solver) SetLogger(l *logrus.Logger) { s.log = l }

func (s *Solver) ensureCapacity(v Var) {
	s.trail.EnsureVar(v)
	s.watch.EnsureVar(v)
	s.bin.EnsureVar(v)
	s.vsids.ensureVar(v)
	s.an.ensureVar(v)
	s.vsids.Insert(v)
}

// NewUserVar returns the solver variable for a 1-based DIMACS var
// number, allocating capacity across every component that indexes by
// variable on first use.
func (s *Solver) NewUserVar(dimacsVar int) Var {
	s.CheckPoisoned()
	v := s.vars.EnsureUserVar(dimacsVar)
	s.ensureCapacity(v)
	return v
}

// AddClause adds an input (irredundant) clause of any length >= 1.
// Clauses of length 0 are an immediate contradiction.
func (s *Solver) AddClause(lits []Lit) error {
	s.CheckPoisoned()
	if len(lits) == 0 {
		s.Poison(core.NewSolverInterruptedError("empty clause added: instance trivially unsat"))
		return s.Err()
	}
	for _, l := range lits {
		s.ensureCapacity(l.Var())
	}
	switch len(lits) {
	case 1:
		lit := lits[0]
		if s.trail.VarValue(lit.Var()) == LUnassigned {
			s.trail.EnqueueRoot(lit)
		} else if s.trail.Value(lit) == LFalse {
			// A prior unit clause already fixed this variable the
			// other way: the input is unconditionally unsatisfiable.
			s.rootConflict = true
		}
	case 2:
		s.bin.Add(lits[0], lits[1])
	default:
		s.db.AddIrredundant(lits)
		a, b := lits[0], lits[1]
		s.watch.AddClause(s.lastIrredundantHandle(), a, b)
	}
	return nil
}

func (s *Solver) lastIrredundantHandle() ClauseHandle {
	list := s.db.ByTier(TierIrred)
	return list[len(list)-1]
}

// SetAssumptions configures the assumption literals for the next Solve call.
func (s *Solver) SetAssumptions(lits []Lit) {
	s.CheckPoisoned()
	s.asm.Set(lits)
}

// Solve runs CDCL search to completion (or until MaxConflicts is
// exceeded), following the top-level loop of §4.H/K: propagate, and on
// conflict either report UNSAT (if the conflict occurs at level 0) or
// learn+backtrack+re-propagate; on no conflict, either satisfy all
// variables (SAT) or branch (possibly consuming a pending assumption
// first).
func (s *Solver) Solve() (Result, error) {
	s.CheckPoisoned()

	if s.rootConflict {
		return Result{Verdict: Unsatisfiable}, nil
	}
	if conf := s.prop.Propagate(); !conf.NoConflict() {
		return Result{Verdict: Unsatisfiable}, nil
	}

	assumeIdx := 0
	for {
		conf := s.prop.Propagate()
		if !conf.NoConflict() {
			s.stats.Conflicts++
			if s.trail.Level() == 0 {
				return Result{Verdict: Unsatisfiable}, nil
			}
			if s.cfg.MaxConflicts > 0 && s.stats.Conflicts > s.cfg.MaxConflicts {
				return Result{Verdict: Unknown}, core.NewSolverInterruptedError("conflict budget exhausted")
			}

			res, failedLit, isAssumptionFail := s.handleConflict(conf)
			if isAssumptionFail {
				core := s.asm.BuildFailedCore(s.trail, s.alloc, failedLit)
				return Result{Verdict: Unsatisfiable, FailedCore: core}, nil
			}
			_ = res
			continue
		}

		if s.sched.DueMidsReduce() {
			s.red.ReduceMids()
			s.sched.MarkMidsReduced()
			s.stats.ReduceMids++
		}
		if s.sched.DueLocalsReduce() {
			s.red.ReduceLocals(s.isReason)
			s.sched.MarkLocalsReduced()
			s.stats.ReduceLocals++
		}
		if s.db.NeedsCompaction() {
			s.compact()
		}
		if s.sched.OnConflict() && s.stats.Conflicts > 0 {
			s.stats.Restarts++
			s.trail.BacktrackTo(0)
			assumeIdx = 0
			s.log.WithField("restarts", s.stats.Restarts).Debug("sat: restart")
		}

		lit, idx, conflicted := s.asm.NextUnassigned(s.trail, assumeIdx)
		if lit != LitUndef && conflicted {
			core := s.asm.BuildFailedCore(s.trail, s.alloc, lit.Negate())
			return Result{Verdict: Unsatisfiable, FailedCore: core}, nil
		}
		if lit != LitUndef {
			assumeIdx = idx + 1
			s.trail.Decide(lit)
			s.stats.Decisions++
			continue
		}

		branch, ok := s.pickBranchVar()
		if !ok {
			return Result{Verdict: Satisfiable, Model: s.extractModel()}, nil
		}
		polarity := s.trail.LastPhase(branch)
		negated := polarity == LFalse
		s.trail.Decide(NewLit(branch, negated))
		s.stats.Decisions++
	}
}

func (s *Solver) isReason(h ClauseHandle) bool {
	lits := s.alloc.Literals(h)
	for _, l := range lits {
		v := l.Var()
		if s.trail.VarValue(v) != LUnassigned && s.trail.Reason(v) == h {
			return true
		}
	}
	return false
}

// handleConflict runs first-UIP analysis, learns the resulting clause,
// and backtracks to the computed level. It reports whether the
// conflict is actually an unsatisfiable-assumption failure (i.e. the
// backtrack target is below the first assumption decision level).
func (s *Solver) handleConflict(conf Conflict) (AnalysisResult, Lit, bool) {
	res := s.an.Analyze(conf)
	lits := s.an.Minimize(res.Literals)
	s.vsids.Decay()
	for _, l := range lits {
		s.vsids.Bump(l.Var())
	}

	if int32(s.asm.Len()) > 0 && res.BacktrackTo < s.assumptionDepth() {
		return res, lits[0].Negate(), true
	}

	s.trail.BacktrackTo(res.BacktrackTo)

	switch len(lits) {
	case 1:
		s.trail.EnqueueRoot(lits[0])
		s.stats.LearnedUnits++
	case 2:
		s.bin.Add(lits[0], lits[1])
		s.trail.EnqueueBinaryReason(lits[0], lits[1])
		s.stats.LearnedBinary++
	default:
		h := s.db.AddLearned(lits, res.Glue)
		s.watch.AddClause(h, lits[0], lits[1])
		s.trail.EnqueueClauseReason(lits[0], h)
		s.stats.LearnedLong++
	}
	return res, LitUndef, false
}

// assumptionDepth returns the decision level the last assumption
// occupies, used to detect when a learned clause's backtrack target
// would unwind past the assumption prefix (signaling failure under
// assumptions rather than an ordinary backjump).
func (s *Solver) assumptionDepth() int32 {
	n := s.asm.Len()
	if n == 0 {
		return 0
	}
	return int32(n)
}

func (s *Solver) pickBranchVar() (Var, bool) {
	for {
		v, ok := s.vsids.PopMax()
		if !ok {
			return 0, false
		}
		if s.trail.VarValue(v) == LUnassigned && s.vars.Mode(v) != ModeHidden {
			return v, true
		}
	}
}

func (s *Solver) extractModel() []Lbool {
	model := make([]Lbool, len(s.trail.assign))
	for v := range model {
		model[v] = s.trail.VarValue(Var(v))
	}
	return model
}

func (s *Solver) compact() {
	reasonOf := make(map[ClauseHandle]Var)
	for v := Var(0); int(v) < len(s.trail.assign); v++ {
		if h := s.trail.Reason(v); h != HandleNone {
			reasonOf[h] = v
		}
	}

	s.watch.Disable()
	s.db.CompactNow(func(old, new ClauseHandle) {
		if v, ok := reasonOf[old]; ok {
			s.trail.assign[v].Reason = new
		}
	})
	s.watch.RebuildFrom(s.alloc, s.db.LiveClauses())
	s.stats.Compactions++
}

// Stats returns a snapshot of the solver's run counters.
func (s *Solver) Stats() Stats { return s.stats }

// errSolverNotReady describes use of the solver after a prior fatal
// error. No method in this package returns it: CheckPoisoned panics
// with the stored error instead.
var errSolverNotReady = errors.New("sat: solver used after prior fatal error")
