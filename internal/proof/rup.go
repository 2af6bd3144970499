package proof

import "github.com/xDarkicex/satcheck/internal/sat"

// RUPChecker implements the Reverse Unit Propagation / Asymmetric
// Tautology redundancy check of §4.Q against the checker's own clause
// index, independent of the solver's own propagator (the checker must
// be able to validate a proof it did not itself produce).
type RUPChecker struct {
	idx *ClauseIndex
}

func NewRUPChecker(idx *ClauseIndex) *RUPChecker { return &RUPChecker{idx: idx} }

// rupState is the scratch tentative assignment used by one Check call;
// kept local (not on the shared index) so RUP checks never leak into
// the checker's persistent state (§5 "no concurrent writers" applies
// equally to this nested, single-threaded check).
type rupState struct {
	value     map[sat.Var]sat.Lbool
	antecedent map[sat.Var]CheckerClauseID
}

func newRUPState() *rupState {
	return &rupState{
		value:      make(map[sat.Var]sat.Lbool),
		antecedent: make(map[sat.Var]CheckerClauseID),
	}
}

func (st *rupState) valueOf(lit sat.Lit) sat.Lbool {
	v, ok := st.value[lit.Var()]
	if !ok {
		return sat.LUnassigned
	}
	if lit.IsNegative() {
		if v == sat.LTrue {
			return sat.LFalse
		}
		if v == sat.LFalse {
			return sat.LTrue
		}
		return sat.LUnassigned
	}
	return v
}

// assignTrue forces lit to true in the tentative assignment.
func (st *rupState) assignTrue(lit sat.Lit, by CheckerClauseID, hasAntecedent bool) {
	val := sat.LTrue
	if lit.IsNegative() {
		val = sat.LFalse
	}
	st.value[lit.Var()] = val
	if hasAntecedent {
		st.antecedent[lit.Var()] = by
	}
}

// Check runs the five-step RUP algorithm of §4.Q against target's
// negation, guided by the hint clause hashes. On success it returns the
// minimized set of clause ids whose propagations were actually used
// (for LRAT); the target clause itself is not included.
func (r *RUPChecker) Check(target []sat.Lit, hints []uint64) (ok bool, trace []CheckerClauseID) {
	for _, l := range target {
		if u, found := r.idx.UnitValue(l.Var()); found && u == l {
			if c := r.idx.Find([]sat.Lit{u}); c != nil {
				return true, []CheckerClauseID{c.ID}
			}
			return true, nil
		}
	}

	st := newRUPState()
	for _, l := range target {
		st.assignTrue(l.Negate(), 0, false)
	}

	var conflictClause *CheckerClause

hints:
	for _, h := range hints {
		for _, cand := range r.idx.BucketCandidates(h) {
			unassignedCount := 0
			var lastUnassigned sat.Lit
			falsified := true
			for _, cl := range cand.Literals {
				switch st.valueOf(cl) {
				case sat.LTrue:
					falsified = false
				case sat.LUnassigned:
					falsified = false
					unassignedCount++
					lastUnassigned = cl
				}
			}
			if falsified {
				conflictClause = cand
				break hints
			}
			if unassignedCount == 1 {
				st.assignTrue(lastUnassigned, cand.ID, true)
				continue hints
			}
		}
		return false, nil
	}

	if conflictClause == nil {
		return false, nil
	}

	trace = r.minimizeTrace(conflictClause, st)
	return true, trace
}

// minimizeTrace walks backward from the conflicting clause through the
// antecedent chain recorded during propagation, collecting every
// clause id actually used (§4.Q step 4).
func (r *RUPChecker) minimizeTrace(conflict *CheckerClause, st *rupState) []CheckerClauseID {
	seen := make(map[CheckerClauseID]bool)
	var order []CheckerClauseID
	var visit func(c *CheckerClause)
	visit = func(c *CheckerClause) {
		if seen[c.ID] {
			return
		}
		seen[c.ID] = true
		for _, lit := range c.Literals {
			if id, ok := st.antecedent[lit.Var()]; ok {
				// The antecedent clause propagated this literal; recurse
				// into it before recording the current clause, so the
				// trace is in a valid replay order for LRAT.
				if ante := r.findByID(id); ante != nil {
					visit(ante)
				}
			}
		}
		order = append(order, c.ID)
	}
	visit(conflict)
	return order
}

func (r *RUPChecker) findByID(id CheckerClauseID) *CheckerClause {
	for _, list := range r.idx.buckets {
		for _, c := range list {
			if c.ID == id {
				return c
			}
		}
	}
	return nil
}
