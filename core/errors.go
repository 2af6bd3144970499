// Package core holds error types shared by the solver and proof checker.
package core

import (
	"fmt"

	"github.com/pkg/errors"
)

// ParseError reports malformed proof input at a given step index.
type ParseError struct {
	Step  int64
	cause error
}

func NewParseError(step int64, cause error) *ParseError {
	return &ParseError{Step: step, cause: errors.WithStack(cause)}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at step %d: %v", e.Step, e.cause)
}

func (e *ParseError) Unwrap() error { return e.cause }
func (e *ParseError) Cause() error  { return e.cause }

// IOError reports a read/write failure encountered mid-proof.
type IOError struct {
	Step  int64
	cause error
}

func NewIOError(step int64, cause error) *IOError {
	return &IOError{Step: step, cause: errors.WithStack(cause)}
}

func (e *IOError) Error() string {
	return fmt.Sprintf("io error at step %d: %v", e.Step, e.cause)
}

func (e *IOError) Unwrap() error { return e.cause }
func (e *IOError) Cause() error  { return e.cause }

// ProofIncompleteError reports that proof parsing ended before an End
// step, or before an UNSAT derivation was reached.
type ProofIncompleteError struct {
	Reason string
}

func NewProofIncompleteError(reason string) *ProofIncompleteError {
	return &ProofIncompleteError{Reason: reason}
}

func (e *ProofIncompleteError) Error() string {
	return fmt.Sprintf("proof incomplete: %s", e.Reason)
}

// CheckFailedError reports a semantic violation: a tautology where
// forbidden, deletion of an unknown or wrong-kind clause, a failed AT
// check, an unsubsumed "Simplified" deletion, a hidden variable
// appearing in a clause, and so on. StepDebug carries a debug rendering
// of the offending step for diagnostics.
type CheckFailedError struct {
	Step      int64
	Message   string
	StepDebug string
}

func NewCheckFailedError(step int64, message, stepDebug string) *CheckFailedError {
	return &CheckFailedError{Step: step, Message: message, StepDebug: stepDebug}
}

func (e *CheckFailedError) Error() string {
	return fmt.Sprintf("check failed at step %d: %s (step: %s)", e.Step, e.Message, e.StepDebug)
}

// ProofProcessorError reports that a downstream processor (LRAT writer,
// transcript) rejected a step. The Emitter that raises it poisons
// itself with it: subsequent public calls panic rather than silently
// continue on corrupted state.
type ProofProcessorError struct {
	Processor string
	cause     error
}

func NewProofProcessorError(processor string, cause error) *ProofProcessorError {
	return &ProofProcessorError{Processor: processor, cause: errors.WithStack(cause)}
}

func (e *ProofProcessorError) Error() string {
	return fmt.Sprintf("proof processor %q rejected step: %v", e.Processor, e.cause)
}

func (e *ProofProcessorError) Unwrap() error { return e.cause }
func (e *ProofProcessorError) Cause() error  { return e.cause }

// SolverInterruptedError reports that the solver's resource budget was
// exhausted (caller stopped polling schedule steps, or a configured
// conflict/time budget ran out).
type SolverInterruptedError struct {
	Reason string
}

func NewSolverInterruptedError(reason string) *SolverInterruptedError {
	return &SolverInterruptedError{Reason: reason}
}

func (e *SolverInterruptedError) Error() string {
	return fmt.Sprintf("solver interrupted: %s", e.Reason)
}

// Poisoned marks an object that must refuse further public calls after
// an unrecoverable error (ProofProcessorError, IO write failure during
// emission). Embed it and check Err() before serving a public method.
type Poisoned struct {
	err error
}

// Poison records the unrecoverable error. Subsequent calls to Err will
// report it until the owner is reconstructed.
func (p *Poisoned) Poison(err error) {
	if p.err == nil {
		p.err = err
	}
}

// Err returns the poisoning error, or nil if the owner is still healthy.
func (p *Poisoned) Err() error { return p.err }

// CheckPoisoned panics if the owner has been poisoned by a prior
// unrecoverable error. Mirrors the "subsequent public calls panic on
// reuse" contract of spec §7.
func (p *Poisoned) CheckPoisoned() {
	if p.err != nil {
		panic(errors.Wrap(p.err, "use of poisoned solver/checker"))
	}
}
