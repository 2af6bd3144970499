package sat

// Propagator ties the trail, watchlists, binary clauses, and clause
// allocator together to run unit propagation (§4.H). It holds no state
// of its own; all state lives in the parts it is given (pattern U: this routine only touches
// Trail/Watchlists/Binary/Alloc, never the VSIDS heap or the schedule).
type Propagator struct {
	alloc *ClauseAllocator
	watch *Watchlists
	bin   *BinaryClauses
	trail *Trail
}

func NewPropagator(alloc *ClauseAllocator, watch *Watchlists, bin *BinaryClauses, trail *Trail) *Propagator {
	return &Propagator{alloc: alloc, watch: watch, bin: bin, trail: trail}
}

// Conflict describes the clause that falsified during propagation: for
// a long-clause conflict, Handle is set; for a binary-clause conflict,
// BinA/BinB hold both (now-false) literals and Handle is HandleNone.
type Conflict struct {
	Handle   ClauseHandle
	BinA     Lit
	BinB     Lit
	IsBinary bool
}

// NoConflict reports whether c represents "no conflict occurred".
func (c Conflict) NoConflict() bool {
	return c.Handle == HandleNone && !c.IsBinary
}

var noConflict = Conflict{Handle: HandleNone}

// Propagate drains the trail's propagation queue, first checking binary
// implications for each newly-assigned literal (cheaper, no watch-list
// walk) and then scanning long-clause watchlists with blocking-literal
// short-circuiting, per §4.H:
//
//  1. For each watch in lit's list (the clauses watching ¬lit), if its
//     blocker is already true, skip without touching the clause.
//  2. Otherwise look at the clause: ensure the false literal is at
//     position 1 (swap with position 0 if needed), then scan positions
//     2..n-1 for a non-false literal to become the new watch.
//  3. If found, migrate the watch to that literal's list.
//  4. If none found and position 0 is false too, it's a conflict.
//  5. If none found and position 0 is unassigned, it becomes a unit.
func (p *Propagator) Propagate() Conflict {
	for p.trail.QHead() < p.trail.Len() {
		lits := p.trail.TrailLiterals()
		lit := lits[p.trail.QHead()]
		p.trail.SetQHead(p.trail.QHead() + 1)

		if c := p.propagateBinary(lit); !c.NoConflict() {
			return c
		}
		if c := p.propagateLong(lit); !c.NoConflict() {
			return c
		}
	}
	return noConflict
}

func (p *Propagator) propagateBinary(lit Lit) Conflict {
	for _, other := range p.bin.Implied(lit) {
		v := p.trail.Value(other)
		switch v {
		case LTrue:
			continue
		case LFalse:
			return Conflict{Handle: HandleNone, IsBinary: true, BinA: lit.Negate(), BinB: other}
		default:
			p.trail.EnqueueBinaryReason(other, lit.Negate())
		}
	}
	return noConflict
}

func (p *Propagator) propagateLong(lit Lit) Conflict {
	// lit just became true, so the literal falseLit = ¬lit is now false
	// in every clause that watches it. AddClause stores a clause's watch
	// on a literal w under key ¬w, so the list to scan is keyed by lit
	// itself (lit == ¬w exactly when w == falseLit).
	falseLit := lit.Negate()
	list := p.watch.ListFor(lit)
	if len(list) == 0 {
		return noConflict
	}

	kept := list[:0]
	conflict := noConflict

scan:
	for i := 0; i < len(list); i++ {
		w := list[i]
		if p.trail.Value(w.Blocker) == LTrue {
			kept = append(kept, w)
			continue
		}

		h := w.Clause
		if p.alloc.Deleted(h) {
			continue
		}
		n := p.alloc.Len(h)

		// Ensure the false watched literal sits at position 1.
		if p.alloc.Lit(h, 0) == falseLit {
			p.alloc.SetLit(h, 0, p.alloc.Lit(h, 1))
			p.alloc.SetLit(h, 1, falseLit)
		}
		other := p.alloc.Lit(h, 0)
		if other != w.Blocker && p.trail.Value(other) == LTrue {
			kept = append(kept, Watch{Clause: h, Blocker: other})
			continue
		}

		for k := 2; k < n; k++ {
			cand := p.alloc.Lit(h, k)
			if p.trail.Value(cand) != LFalse {
				p.alloc.SetLit(h, 1, cand)
				p.alloc.SetLit(h, k, falseLit)
				p.watch.Append(cand.Negate(), Watch{Clause: h, Blocker: other})
				continue scan
			}
		}

		// No replacement watch found: either a conflict or a unit.
		kept = append(kept, w)
		switch p.trail.Value(other) {
		case LFalse:
			conflict = Conflict{Handle: h}
			// Copy the remainder of the list unchanged before bailing,
			// since callers expect watch list invariants preserved.
			for j := i + 1; j < len(list); j++ {
				kept = append(kept, list[j])
			}
			p.watch.SetListFor(lit, kept)
			return conflict
		case LUnassigned:
			p.trail.EnqueueClauseReason(other, h)
		}
	}

	p.watch.SetListFor(lit, kept)
	return noConflict
}
