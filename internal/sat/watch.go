package sat

// Watch pairs a watched clause with a cached blocking literal: if the
// blocking literal is already true, the propagator can skip the clause
// entirely without dereferencing it (§4.H step 1).
type Watch struct {
	Clause  ClauseHandle
	Blocker Lit
}

// Watchlists is the two-watched-literal index: for each literal L, the
// list of clauses currently watching ¬L (i.e. that need re-examination
// when L becomes true). Lists tolerate being cleared
// and rebuilt in O(clauses); a GC pass disables them and triggers a
// rebuild from the clause database on next use (§4.E).
type Watchlists struct {
	lists   [][]Watch // indexed by Lit.Code()
	enabled bool
}

// NewWatchlists allocates watch lists for nVars variables.
func NewWatchlists(nVars int) *Watchlists {
	return &Watchlists{lists: make([][]Watch, nVars*2), enabled: true}
}

func (w *Watchlists) EnsureVar(v Var) {
	need := (int(v) + 1) * 2
	if need <= len(w.lists) {
		return
	}
	grown := make([][]Watch, need)
	copy(grown, w.lists)
	w.lists = grown
}

// Enabled reports whether the watchlists are in a usable state.
func (w *Watchlists) Enabled() bool { return w.enabled }

// Disable clears all lists ahead of a compaction; the lists must be
// rebuilt before the next propagate() call.
func (w *Watchlists) Disable() {
	for i := range w.lists {
		w.lists[i] = w.lists[i][:0]
	}
	w.enabled = false
}

// AddClause registers a long clause's two watched literals (positions 0
// and 1 by convention): the watch on a for clause {a,b,...} goes in ¬a's
// list with blocker b, and the watch on b goes in ¬b's list with
// blocker a (§4.E "Maintenance rules").
func (w *Watchlists) AddClause(h ClauseHandle, a, b Lit) {
	w.EnsureVar(a.Var())
	w.EnsureVar(b.Var())
	w.lists[a.Negate().Code()] = append(w.lists[a.Negate().Code()], Watch{Clause: h, Blocker: b})
	w.lists[b.Negate().Code()] = append(w.lists[b.Negate().Code()], Watch{Clause: h, Blocker: a})
}

// ListFor returns the (mutable, aliased) watch list for literal lit.
func (w *Watchlists) ListFor(lit Lit) []Watch {
	idx := lit.Code()
	if int(idx) >= len(w.lists) {
		return nil
	}
	return w.lists[idx]
}

// SetListFor overwrites the watch list for lit, used by the propagator
// to write back the compacted-in-place list after a scan.
func (w *Watchlists) SetListFor(lit Lit, list []Watch) {
	w.EnsureVar(lit.Var())
	w.lists[lit.Code()] = list
}

// Append adds a single watch to lit's list (used when migrating a
// watch during propagation, §4.H step 4).
func (w *Watchlists) Append(lit Lit, watch Watch) {
	w.EnsureVar(lit.Var())
	w.lists[lit.Code()] = append(w.lists[lit.Code()], watch)
}

// RebuildFrom reconstructs every watch list from scratch by scanning
// the clause database and allocator, used after a GC/compaction pass
// (§4.E "GC triggers a rebuild").
func (w *Watchlists) RebuildFrom(alloc *ClauseAllocator, handles []ClauseHandle) {
	for i := range w.lists {
		w.lists[i] = w.lists[i][:0]
	}
	for _, h := range handles {
		if alloc.Deleted(h) {
			continue
		}
		n := alloc.Len(h)
		if n < 2 {
			continue
		}
		a := alloc.Lit(h, 0)
		b := alloc.Lit(h, 1)
		w.AddClause(h, a, b)
	}
	w.enabled = true
}
