// Package satcheck ties the CDCL search core (internal/sat) to the
// on-the-fly proof pipeline (internal/proof) the way §2's "Data flow"
// describes: clauses enter through the solver, every provable mutation
// is sent to a Proof Emitter, and a Checker can validate the resulting
// stream in-process without ever touching a file.
package satcheck

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/xDarkicex/satcheck/internal/proof"
	"github.com/xDarkicex/satcheck/internal/sat"
)

// Session is the public entry point: a solver plus an optional proof
// pipeline (serialize to a writer, verify in-process, or both).
type Session struct {
	solver  *sat.Solver
	emitter *proof.Emitter
	checker *proof.Checker

	solvedOnce bool
}

// SessionConfig configures a Session's solver and proof pipeline.
type SessionConfig struct {
	SolverConfig sat.Config

	// ProofWriter, if non-nil, receives the native binary proof format.
	ProofWriter io.Writer

	// VerifyOnTheFly, if true, runs a Checker in-process against every
	// emitted step as it happens, rather than only via an external
	// proof file later.
	VerifyOnTheFly bool

	Logger *logrus.Logger
}

// NewSession constructs a ready-to-use solving session.
func NewSession(cfg SessionConfig) *Session {
	s := &Session{solver: sat.NewSolver(cfg.SolverConfig)}

	var encoder *proof.NativeEncoder
	if cfg.ProofWriter != nil {
		encoder = proof.NewNativeEncoder(cfg.ProofWriter)
	}
	var checker *proof.Checker
	if cfg.VerifyOnTheFly {
		checker = proof.NewChecker()
		if cfg.Logger != nil {
			checker.SetLogger(cfg.Logger)
		}
		s.checker = checker
	}
	if encoder != nil || checker != nil {
		s.emitter = proof.NewEmitter(encoder, checker)
		if cfg.Logger != nil {
			s.emitter.SetLogger(cfg.Logger)
		}
	}
	if cfg.Logger != nil {
		s.solver.SetLogger(cfg.Logger)
	}
	return s
}

// AddClause adds a clause, given as non-zero signed DIMACS integers,
// and forwards an AddClause proof step once a prior Solve has already
// run (SUPPLEMENTED FEATURES item 1: only post-first-solve additions
// are provable events; the initial load is implicit).
func (s *Session) AddClause(dimacsLits ...int) error {
	for _, n := range dimacsLits {
		v := n
		if v < 0 {
			v = -v
		}
		s.solver.NewUserVar(v)
	}
	lits := sat.ClauseFromDimacs(dimacsLits)
	if err := s.solver.AddClause(lits); err != nil {
		return err
	}
	if s.emitter != nil && s.solvedOnce {
		if err := s.emitter.EmitAddClause(lits); err != nil {
			return err
		}
	}
	return nil
}

// SetAssumptions configures assumption literals (DIMACS ints) for the
// next Solve call.
func (s *Session) SetAssumptions(dimacsLits ...int) {
	lits := sat.ClauseFromDimacs(dimacsLits)
	s.solver.SetAssumptions(lits)
	if s.emitter != nil {
		_ = s.emitter.EmitAssumptions(lits)
	}
}

// SolveResult mirrors sat.Result with DIMACS-facing accessors.
type SolveResult struct {
	Verdict    sat.Verdict
	Model      []sat.Lbool
	FailedCore []int
}

// Solve runs CDCL search and forwards the outcome (model or failed
// core) as a proof step.
func (s *Session) Solve() (SolveResult, error) {
	res, err := s.solver.Solve()
	if err != nil {
		return SolveResult{}, err
	}
	s.solvedOnce = true
	if s.emitter != nil {
		s.emitter.MarkFirstSolveDone()
		switch res.Verdict {
		case sat.Satisfiable:
			_ = s.emitter.EmitModel(modelToLits(res.Model))
		case sat.Unsatisfiable:
			if len(res.FailedCore) > 0 {
				_ = s.emitter.EmitFailedAssumptions(res.FailedCore, nil)
			}
		}
		_ = s.emitter.EmitEnd()
	}

	out := SolveResult{Verdict: res.Verdict, Model: res.Model}
	for _, l := range res.FailedCore {
		out.FailedCore = append(out.FailedCore, l.DimacsInt())
	}
	return out, nil
}

func modelToLits(model []sat.Lbool) []sat.Lit {
	lits := make([]sat.Lit, 0, len(model))
	for v, val := range model {
		if val == sat.LUnassigned {
			continue
		}
		lits = append(lits, sat.NewLit(sat.Var(v), val == sat.LFalse))
	}
	return lits
}

// Stats returns the underlying solver's run counters.
func (s *Session) Stats() sat.Stats { return s.solver.Stats() }

// Checker returns the in-process checker, if VerifyOnTheFly was set.
func (s *Session) Checker() *proof.Checker { return s.checker }

// Verify reads a previously-written native proof stream and validates
// it against a fresh Checker, independent of any Session that produced
// it (the standalone "second subcommand" use case of §6's external
// CLI, exposed here as a library call instead).
func Verify(r io.Reader) (proof.CheckVerdict, error) {
	checker := proof.NewChecker()
	parser := proof.NewParser(proof.NewNativeDecoder(r), checker)
	return parser.Run()
}
