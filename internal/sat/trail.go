package sat

// VarState holds per-variable assignment bookkeeping: current value,
// decision level, the clause that forced it (or HandleNone if it was a
// decision or a unit/binary reason), and the last value it held for
// phase saving (§4.F). A binary-clause reason is flagged by HasBinReason
// and recorded as a bare literal (BinReason) rather than a handle.
type VarState struct {
	Value      Lbool
	Level      int32
	Reason     ClauseHandle
	BinReason  Lit // valid only when Reason == HandleNone && HasBinReason
	BinReason2 Lit
	HasBinReason bool
	LastPhase  Lbool // phase-saving: sticky across unassignment
}

// Trail is the ordered sequence of assigned literals plus the
// per-variable state array. Decision levels are tracked by recording
// the trail length at which each level began, so backtracking is a
// slice-truncation (§4.G).
type Trail struct {
	assign []VarState // indexed by Var
	seq    []Lit      // chronological assignment order
	levelStart []int32 // trail index where each decision level begins
	qhead  int         // propagation queue head: next trail index to propagate
}

// NewTrail allocates state for nVars variables, all initially unassigned.
func NewTrail(nVars int) *Trail {
	t := &Trail{
		assign:     make([]VarState, nVars),
		seq:        make([]Lit, 0, nVars),
		levelStart: []int32{0},
	}
	return t
}

func (t *Trail) EnsureVar(v Var) {
	need := int(v) + 1
	if need <= len(t.assign) {
		return
	}
	grown := make([]VarState, need)
	copy(grown, t.assign)
	t.assign = grown
}

// Level returns the current decision level (0 = root).
func (t *Trail) Level() int32 { return int32(len(t.levelStart) - 1) }

// Len returns the number of literals currently on the trail.
func (t *Trail) Len() int { return len(t.seq) }

// QHead returns the index of the next trail entry awaiting propagation.
func (t *Trail) QHead() int { return t.qhead }

// SetQHead advances (or resets, on backtrack) the propagation queue head.
func (t *Trail) SetQHead(i int) { t.qhead = i }

// Value returns the current truth value of a literal.
func (t *Trail) Value(lit Lit) Lbool {
	return litValue(lit, t.assign[lit.Var()].Value)
}

// VarValue returns the current truth value of a variable.
func (t *Trail) VarValue(v Var) Lbool { return t.assign[v].Value }

// VarLevel returns the decision level at which v was assigned.
func (t *Trail) VarLevel(v Var) int32 { return t.assign[v].Level }

// Reason returns the clause handle responsible for forcing v's value,
// or HandleNone if v was a decision, a binary-clause implication
// (check HasBinaryReason), or is unassigned.
func (t *Trail) Reason(v Var) ClauseHandle { return t.assign[v].Reason }

// HasBinaryReason reports whether v was forced by a binary clause; if
// so, BinaryReason returns the other literal of that clause.
func (t *Trail) HasBinaryReason(v Var) bool { return t.assign[v].HasBinReason }

func (t *Trail) BinaryReason(v Var) Lit { return t.assign[v].BinReason }

// IsDecision reports whether v's assignment was a branching decision
// (no reason clause and no binary reason).
func (t *Trail) IsDecision(v Var) bool {
	s := &t.assign[v]
	return s.Reason == HandleNone && !s.HasBinReason
}

// LastPhase returns the sticky last-known value of v for phase saving;
// LUnassigned if v has never been assigned.
func (t *Trail) LastPhase(v Var) Lbool { return t.assign[v].LastPhase }

// assignCommon records lit as true at the current level with the given
// reason bookkeeping and pushes it onto the trail/queue.
func (t *Trail) assignCommon(lit Lit, reason ClauseHandle, binReason Lit, hasBin bool) {
	v := lit.Var()
	value := LTrue
	if lit.IsNegative() {
		value = LFalse
	}
	s := &t.assign[v]
	s.Value = value
	s.Level = t.Level()
	s.Reason = reason
	s.HasBinReason = hasBin
	s.BinReason = binReason
	s.LastPhase = value
	t.seq = append(t.seq, lit)
}

// Decide pushes a new decision level and assigns lit as a branching
// decision (no reason).
func (t *Trail) Decide(lit Lit) {
	t.levelStart = append(t.levelStart, int32(len(t.seq)))
	t.assignCommon(lit, HandleNone, LitUndef, false)
}

// EnqueueClauseReason assigns lit as forced by a long-clause reason,
// without opening a new decision level.
func (t *Trail) EnqueueClauseReason(lit Lit, reason ClauseHandle) {
	t.assignCommon(lit, reason, LitUndef, false)
}

// EnqueueBinaryReason assigns lit as forced by binary clause {other, lit},
// where other is the clause's (false) second literal.
func (t *Trail) EnqueueBinaryReason(lit Lit, other Lit) {
	t.assignCommon(lit, HandleNone, other, true)
}

// EnqueueRoot assigns lit at level 0 with no reason (a unit clause or
// an assumption folded into the root, per §4.M handling of fixed units).
func (t *Trail) EnqueueRoot(lit Lit) {
	t.assignCommon(lit, HandleNone, LitUndef, false)
}

// BacktrackTo truncates the trail back to the start of targetLevel+1,
// unassigning every variable above it and resetting the queue head.
// Phase-saving values (LastPhase) are preserved across the unassign.
func (t *Trail) BacktrackTo(targetLevel int32) {
	if targetLevel >= t.Level() {
		return
	}
	cut := int(t.levelStart[targetLevel+1])
	for i := len(t.seq) - 1; i >= cut; i-- {
		v := t.seq[i].Var()
		s := &t.assign[v]
		s.Value = LUnassigned
		s.Reason = HandleNone
		s.HasBinReason = false
	}
	t.seq = t.seq[:cut]
	t.levelStart = t.levelStart[:targetLevel+2]
	if t.qhead > cut {
		t.qhead = cut
	}
}

// TrailLiterals returns the full chronological assignment sequence.
// The returned slice aliases internal state; callers must not retain
// it across a mutating call.
func (t *Trail) TrailLiterals() []Lit { return t.seq }

// LevelStart returns the trail index at which decision level lvl began.
func (t *Trail) LevelStart(lvl int32) int32 { return t.levelStart[lvl] }

// LiteralsAt returns the literals assigned at exactly decision level lvl.
func (t *Trail) LiteralsAt(lvl int32) []Lit {
	start := t.levelStart[lvl]
	var end int32
	if int(lvl)+1 < len(t.levelStart) {
		end = t.levelStart[lvl+1]
	} else {
		end = int32(len(t.seq))
	}
	return t.seq[start:end]
}
