package proof

import (
	"github.com/xDarkicex/satcheck/core"
	"github.com/xDarkicex/satcheck/internal/sat"
)

// checkerSamplingMode mirrors sat.SamplingMode but lives independently
// in the checker: the checker consumes a proof stream and must be able
// to validate variable lifecycle transitions without any access to the
// solver's own VariableTable (§4.P "User variable table").
type checkerSamplingMode uint8

const (
	checkerSample checkerSamplingMode = iota
	checkerWitness
	checkerHide
)

// checkerVarRecord is the checker-side record for one global variable:
// its user name (if any), solver name (native format only, optional),
// sampling mode, and the RAT-relevant bookkeeping from §3's "Variables
// (N) model" (unit/isolated/deleted), re-derived here from the proof
// stream rather than shared with the solver's own table.
type checkerVarRecord struct {
	user      int32 // -1 if none
	solver    int32 // -1 if none (native-format-only mapping)
	mode      checkerSamplingMode
	hasUnit   bool
	unit      sat.Lit
	isolated  bool // no multi-literal clause currently mentions this variable
	deleted   bool
}

// VarTable is the checker's tri-namespace bookkeeping: user<->global
// and global<->solver, each global variable owning at most one user
// name at a time (§4.P).
type VarTable struct {
	byGlobal map[int32]*checkerVarRecord
	byUser   map[int32]int32 // user -> global
}

func NewVarTable() *VarTable {
	return &VarTable{
		byGlobal: make(map[int32]*checkerVarRecord),
		byUser:   make(map[int32]int32),
	}
}

func (vt *VarTable) record(g int32) *checkerVarRecord {
	r, ok := vt.byGlobal[g]
	if !ok {
		r = &checkerVarRecord{user: -1, solver: -1, mode: checkerSample, isolated: true}
		vt.byGlobal[g] = r
	}
	return r
}

// SetUserName attaches a user-visible DIMACS variable number to a
// global variable, enforcing uniqueness and the Hide-forbids-attach
// rule (§4.P).
func (vt *VarTable) SetUserName(step int64, global, user int32) error {
	if existingGlobal, ok := vt.byUser[user]; ok && existingGlobal != global {
		return core.NewCheckFailedError(step, "user variable name already owned by a different global variable", "UserVarName")
	}
	r := vt.record(global)
	if r.mode == checkerHide {
		return core.NewCheckFailedError(step, "cannot attach a user name to a hidden variable", "UserVarName")
	}
	if r.user >= 0 {
		delete(vt.byUser, r.user)
	}
	r.user = user
	vt.byUser[user] = global
	return nil
}

// ClearUserName removes a global variable's user name, if any,
// transitioning it to Hide per the supplemented lifecycle table.
func (vt *VarTable) ClearUserName(global int32) {
	r := vt.record(global)
	if r.user < 0 {
		return
	}
	delete(vt.byUser, r.user)
	r.user = -1
	r.mode = checkerHide
}

// SetSolverName records the native-format-only solver-namespace
// mapping for a global variable (tags 0/1 of §6).
func (vt *VarTable) SetSolverName(global, solver int32) {
	vt.record(global).solver = solver
}

func (vt *VarTable) RemoveSolverName(global int32) {
	vt.record(global).solver = -1
}

// SolverCodeOf implements NameResolver for hash.go: if global g has a
// live solver name, returns the packed literal code in the solver
// namespace.
func (vt *VarTable) SolverCodeOf(g int32, negated bool) (uint64, bool) {
	r, ok := vt.byGlobal[g]
	if !ok || r.solver < 0 {
		return 0, false
	}
	return uint64(uint32(sat.NewLit(sat.Var(r.solver), negated).Code())), true
}

// ChangeSamplingMode implements the Hide/Witness/Sample transition
// table from SUPPLEMENTED FEATURES item 3: Sample<->Witness is permitted
// freely; a Hide variable cannot change mode, and since SetUserName
// also refuses a Hide variable, Hide is never left once entered.
func (vt *VarTable) ChangeSamplingMode(step int64, global int32, toSample bool) error {
	r := vt.record(global)
	if r.mode == checkerHide {
		return core.NewCheckFailedError(step, "cannot change sampling mode of a hidden variable without attaching a user name first", "ChangeSamplingMode")
	}
	if toSample {
		r.mode = checkerSample
	} else {
		r.mode = checkerWitness
	}
	return nil
}

// MarkUnit records that global variable v is permanently fixed to lit.
func (vt *VarTable) MarkUnit(global int32, lit sat.Lit) {
	r := vt.record(global)
	r.hasUnit = true
	r.unit = lit
}

// SetIsolated updates whether any live multi-literal clause still
// mentions this global variable.
func (vt *VarTable) SetIsolated(global int32, isolated bool) {
	vt.record(global).isolated = isolated
}

// Delete removes a global variable, requiring no user name and
// isolation, per §4.P "Deleting a global variable requires...". A
// recorded unit does not change this: no separate RAT check is run for
// it, here or in the checker's DeleteVar handling.
func (vt *VarTable) Delete(step int64, global int32) error {
	r := vt.record(global)
	if r.user >= 0 {
		return core.NewCheckFailedError(step, "cannot delete a global variable that still has a user name", "DeleteVar")
	}
	if !r.isolated {
		return core.NewCheckFailedError(step, "cannot delete a global variable mentioned by a multi-literal clause", "DeleteVar")
	}
	r.deleted = true
	delete(vt.byGlobal, global)
	return nil
}

// HasUnit reports whether global variable v has a recorded unit value,
// needed by the RAT-pivot deletion path.
func (vt *VarTable) HasUnit(global int32) (sat.Lit, bool) {
	r, ok := vt.byGlobal[global]
	if !ok || !r.hasUnit {
		return sat.LitUndef, false
	}
	return r.unit, true
}
