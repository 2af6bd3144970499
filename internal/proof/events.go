// Package proof implements the on-the-fly proof checker pipeline:
// native proof-step parsing, a hashed clause index, Reverse Unit
// Propagation (RUP) and Resolution Asymmetric Tautology (RAT)
// checking, variable-namespace bookkeeping, and LRAT transcription.
package proof

import "github.com/xDarkicex/satcheck/internal/sat"

// StepKind tags which variant of Step is populated. A single flat
// struct (rather than an interface per variant) keeps steps cache-dense
// on the hot decoding path, per the "tagged variants" design note
// favoring tagged-union representation for dispatch speed.
type StepKind uint8

const (
	StepSolverVarNameUpdate StepKind = iota
	StepSolverVarNameRemove
	StepAtClauseRedundant
	StepAtClauseIrredundant
	StepUnitClauses
	StepDeleteClauseRedundant
	StepDeleteClauseSimplified
	StepDeleteClauseSatisfied
	StepChangeHashBits
	StepModel
	StepAddClause
	StepAssumptions
	StepFailedAssumptions
	StepUserVarName
	StepDeleteVar
	StepChangeSamplingMode
	StepEnd
)

func (k StepKind) String() string {
	names := [...]string{
		"SolverVarNameUpdate", "SolverVarNameRemove", "AtClauseRedundant",
		"AtClauseIrredundant", "UnitClauses", "DeleteClauseRedundant",
		"DeleteClauseSimplified", "DeleteClauseSatisfied", "ChangeHashBits",
		"Model", "AddClause", "Assumptions", "FailedAssumptions",
		"UserVarName", "DeleteVar", "ChangeSamplingMode", "End",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// UnitEntry pairs a propagated unit literal with its clause hash, the
// payload of a batched UnitClauses step.
type UnitEntry struct {
	Lit  sat.Lit
	Hash uint64
}

// Step is the tagged union of every event the emitter produces and the
// checker consumes (§4.O). Only the fields relevant to Kind are
// populated; the zero value of the rest is ignored.
type Step struct {
	Kind StepKind

	GlobalVar   int32
	SolverVar   int32 // -1 means "Remove"/"None"
	UserVar     int32 // -1 means "None"
	Sample      bool  // ChangeSamplingMode payload

	Lits   []sat.Lit
	Hashes []uint64

	Units []UnitEntry

	Bits uint8 // ChangeHashBits payload
}
