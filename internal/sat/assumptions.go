package sat

// AssumptionState drives solving under a temporary set of assumed
// literals (§4.M): each assumption is pushed as its own decision level
// (reason-free, like a branching decision), so ordinary backtracking
// and conflict analysis handle them uniformly. If propagation conflicts
// while assumptions remain on the trail, the conflict clause's
// level-tagged literals identify the failed core.
type AssumptionState struct {
	assumptions []Lit
	failedCore  []Lit
}

func NewAssumptionState() *AssumptionState { return &AssumptionState{} }

// Set replaces the pending assumption list for the next Solve call.
func (a *AssumptionState) Set(lits []Lit) {
	a.assumptions = append(a.assumptions[:0], lits...)
	a.failedCore = a.failedCore[:0]
}

// Len returns the number of assumptions.
func (a *AssumptionState) Len() int { return len(a.assumptions) }

// At returns the i-th assumption literal.
func (a *AssumptionState) At(i int) Lit { return a.assumptions[i] }

// NextUnassigned scans assumptions in order, returning the first whose
// variable is not yet assigned, or (LitUndef, len(assumptions), false)
// if all are already satisfied or the list is exhausted. An assumption that is already
// falsified is reported immediately so the caller can build a
// single-literal failed core.
func (a *AssumptionState) NextUnassigned(trail *Trail, fromIndex int) (lit Lit, idx int, conflicted bool) {
	for i := fromIndex; i < len(a.assumptions); i++ {
		lit := a.assumptions[i]
		switch trail.Value(lit) {
		case LTrue:
			continue
		case LFalse:
			return lit, i, true
		default:
			return lit, i, false
		}
	}
	return LitUndef, len(a.assumptions), false
}

// BuildFailedCore computes the subset of assumptions responsible for
// unsatisfiability by walking backward through the implication graph
// from the conflicting assumption (or conflict clause), collecting
// every assumption-level literal whose negation participated, per the
// standard "analyze final" procedure.
func (a *AssumptionState) BuildFailedCore(trail *Trail, alloc *ClauseAllocator, falsified Lit) []Lit {
	seen := make(map[Var]bool)
	assumptionLit := make(map[Var]Lit, len(a.assumptions))
	for _, l := range a.assumptions {
		assumptionLit[l.Var()] = l
	}

	var stack []Lit
	stack = append(stack, falsified)
	var core []Lit

	for len(stack) > 0 {
		lit := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		v := lit.Var()
		if seen[v] {
			continue
		}
		seen[v] = true

		// Record v whenever it is an assumption variable, whether it
		// reached its value by decision or by propagation from an
		// earlier assumption; report it in its originally asserted
		// polarity, not the (possibly conflicting) reason literal's.
		if al, ok := assumptionLit[v]; ok {
			core = append(core, al)
		}

		if trail.HasBinaryReason(v) {
			stack = append(stack, trail.BinaryReason(v))
			continue
		}
		h := trail.Reason(v)
		if h == HandleNone {
			continue // decision (or otherwise reason-free) leaf
		}
		for _, rl := range alloc.Literals(h) {
			if rl.Var() != v {
				stack = append(stack, rl)
			}
		}
	}

	a.failedCore = core
	return core
}

// FailedCore returns the most recently computed failed-assumption core.
func (a *AssumptionState) FailedCore() []Lit { return a.failedCore }
