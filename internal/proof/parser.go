package proof

import (
	"errors"
	"io"

	"github.com/xDarkicex/satcheck/core"
)

// Parser drives a NativeDecoder's Step stream into a Checker until an
// End step is reached, an error occurs, or the input is exhausted
// prematurely (§7 "ProofIncomplete... proof parsing ended before End").
type Parser struct {
	dec     *NativeDecoder
	checker *Checker
}

func NewParser(dec *NativeDecoder, checker *Checker) *Parser {
	return &Parser{dec: dec, checker: checker}
}

// Run consumes steps until End or failure, returning the checker's
// final verdict.
func (p *Parser) Run() (CheckVerdict, error) {
	for {
		step, err := p.dec.Decode()
		if err != nil {
			if isEOF(err) {
				return CheckNotVerified, core.NewProofIncompleteError("input ended before an End step was read")
			}
			return CheckNotVerified, err
		}
		if err := p.checker.Process(step); err != nil {
			return CheckNotVerified, err
		}
		if step.Kind == StepEnd {
			return p.checker.Verdict()
		}
	}
}

func isEOF(err error) bool {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	type causer interface{ Cause() error }
	if c, ok := err.(causer); ok {
		return isEOF(c.Cause())
	}
	type unwrapper interface{ Unwrap() error }
	if u, ok := err.(unwrapper); ok {
		if inner := u.Unwrap(); inner != nil {
			return isEOF(inner)
		}
	}
	return false
}
