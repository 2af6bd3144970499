package sat

// SamplingMode classifies how a variable's value should be treated in
// a model: Sample variables are reported in models and counted for
// projection; Witness variables exist to support a derivation but are
// not part of the user's problem; Hidden variables are internal to the
// solver (e.g. renamed-away deleted variables) and never surface to a
// caller. Per the supplemented Hide/Witness/Sample lifecycle, a
// variable may transition Sample -> Witness -> Hidden but never back,
// mirroring the corresponding `VarData` states in the system this was
// modeled on.
type SamplingMode uint8

const (
	ModeSample SamplingMode = iota
	ModeWitness
	ModeHidden
)

func (m SamplingMode) String() string {
	switch m {
	case ModeSample:
		return "sample"
	case ModeWitness:
		return "witness"
	case ModeHidden:
		return "hidden"
	default:
		return "unknown"
	}
}

// globalVar indexes the solver-internal namespace that survives
// variable deletion/renaming; userVar is the namespace a caller
// presents DIMACS integers in. solverVar (== Var used throughout this
// package) is the dense, freelist-compacted namespace the CDCL core
// actually allocates trail/watch/activity slots for.
type globalVar int32
type userVar int32

// VarRecord tracks one global variable's current namespace mapping and
// lifecycle state.
type VarRecord struct {
	Global globalVar
	User   userVar // -1 if this variable has no (or no longer has) a user-visible name
	Solver Var     // -1 if this variable has been deleted from the solver's dense namespace
	Mode   SamplingMode
	Active bool // false once fully deleted and placed on a freelist
}

// VariableTable is the three-namespace mapping of component N: it
// translates between the caller's DIMACS-numbered variables, a stable
// global numbering used by the proof/solver boundary, and the dense
// solver-internal Var indices that the allocator/trail/VSIDS actually
// use. Deleting a variable frees its solver-namespace slot for reuse
// by a later global variable without disturbing existing global or
// user numbering.
type VariableTable struct {
	byGlobal []VarRecord
	byUser   map[userVar]globalVar
	bySolver []globalVar // indexed by Var; -1 where the slot is free

	solverFreelist []Var
	nextGlobal     globalVar
}

func NewVariableTable() *VariableTable {
	return &VariableTable{
		byUser: make(map[userVar]globalVar),
	}
}

// EnsureUserVar returns the solver variable for a 1-based user/DIMACS
// variable number, allocating a fresh global and solver variable if
// this is the first time it has been seen.
func (vt *VariableTable) EnsureUserVar(dimacsVar int) Var {
	u := userVar(dimacsVar)
	if g, ok := vt.byUser[u]; ok {
		return vt.byGlobal[g].Solver
	}
	g := vt.allocGlobal()
	vt.byUser[u] = g
	rec := &vt.byGlobal[g]
	rec.User = u
	rec.Mode = ModeSample
	return rec.Solver
}

// NewWitness allocates a solver/global variable with no user name,
// used for clauses introduced internally (e.g. RAT witness bookkeeping
// in the proof checker); it starts life already in ModeWitness.
func (vt *VariableTable) NewWitness() Var {
	g := vt.allocGlobal()
	rec := &vt.byGlobal[g]
	rec.User = -1
	rec.Mode = ModeWitness
	return rec.Solver
}

func (vt *VariableTable) allocGlobal() globalVar {
	g := vt.nextGlobal
	vt.nextGlobal++

	var sv Var
	if n := len(vt.solverFreelist); n > 0 {
		sv = vt.solverFreelist[n-1]
		vt.solverFreelist = vt.solverFreelist[:n-1]
	} else {
		sv = Var(len(vt.bySolver))
		vt.bySolver = append(vt.bySolver, -1)
	}
	vt.bySolver[sv] = g

	vt.byGlobal = append(vt.byGlobal, VarRecord{
		Global: g,
		User:   -1,
		Solver: sv,
		Mode:   ModeSample,
		Active: true,
	})
	return g
}

// GlobalOf returns the global variable backing solver variable v.
func (vt *VariableTable) GlobalOf(v Var) globalVar { return vt.bySolver[v] }

// SolverOf returns the current solver-namespace variable for a global
// variable, or -1 if it has been deleted.
func (vt *VariableTable) SolverOf(g globalVar) Var { return vt.byGlobal[g].Solver }

// UserOf returns the DIMACS-visible variable number for v, or 0 if v
// has no user name (witness/internal variable).
func (vt *VariableTable) UserOf(v Var) int {
	g := vt.bySolver[v]
	u := vt.byGlobal[g].User
	if u < 0 {
		return 0
	}
	return int(u)
}

// Mode returns the current sampling mode of v.
func (vt *VariableTable) Mode(v Var) SamplingMode {
	return vt.byGlobal[vt.bySolver[v]].Mode
}

// Demote transitions a variable forward along Sample -> Witness ->
// Hidden; demoting an already-Hidden variable is a no-op, matching the
// one-directional lifecycle.
func (vt *VariableTable) Demote(v Var, to SamplingMode) {
	rec := &vt.byGlobal[vt.bySolver[v]]
	if to > rec.Mode {
		rec.Mode = to
	}
}

// Delete removes v from the dense solver namespace, returning its slot
// to the freelist for reuse by a future global variable. The global
// and user numbering remain valid for reporting purposes (e.g. an LRAT
// transcript referring to a variable deleted mid-proof), but
// SolverOf(g) will return -1 afterward.
func (vt *VariableTable) Delete(v Var) {
	g := vt.bySolver[v]
	rec := &vt.byGlobal[g]
	rec.Active = false
	rec.Mode = ModeHidden
	rec.Solver = -1
	vt.bySolver[v] = -1
	vt.solverFreelist = append(vt.solverFreelist, v)
}

// Count returns the number of globally-allocated variables, active or not.
func (vt *VariableTable) Count() int { return len(vt.byGlobal) }

// SolverCapacity returns the size the dense solver namespace has grown
// to (including freed-but-not-reused slots).
func (vt *VariableTable) SolverCapacity() int { return len(vt.bySolver) }
