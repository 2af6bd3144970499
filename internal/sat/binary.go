package sat

// BinaryClauses stores 2-literal clauses as per-literal implication
// lists rather than in the long-clause allocator: for literal L,
// implied(L) lists every L' such that clause {¬L, L'} exists (§3
// "Binary clauses"). This is the standard CDCL optimization of never
// watching binary clauses — propagating them is a direct list walk.
type BinaryClauses struct {
	implied [][]Lit // indexed by Lit.Code()
	count   int
}

// NewBinaryClauses allocates implication lists for nVars variables.
func NewBinaryClauses(nVars int) *BinaryClauses {
	return &BinaryClauses{implied: make([][]Lit, nVars*2)}
}

// EnsureVar grows the implication-list table to cover v.
func (b *BinaryClauses) EnsureVar(v Var) {
	need := (int(v) + 1) * 2
	if need <= len(b.implied) {
		return
	}
	grown := make([][]Lit, need)
	copy(grown, b.implied)
	b.implied = grown
}

// Add registers clause {a, b}: b is implied when a is false (i.e. ¬a is
// true) and vice versa.
func (b *BinaryClauses) Add(a, bLit Lit) {
	b.EnsureVar(a.Var())
	b.EnsureVar(bLit.Var())
	b.implied[a.Negate().Code()] = append(b.implied[a.Negate().Code()], bLit)
	b.implied[bLit.Negate().Code()] = append(b.implied[bLit.Negate().Code()], a)
	b.count++
}

// Implied returns the literals implied by lit becoming true, i.e. the
// other halves of every binary clause {¬lit, L'}.
func (b *BinaryClauses) Implied(lit Lit) []Lit {
	idx := lit.Code()
	if int(idx) >= len(b.implied) {
		return nil
	}
	return b.implied[idx]
}

// Count returns the total number of binary clauses.
func (b *BinaryClauses) Count() int { return b.count }

// Simplify removes every binary clause that mentions a variable already
// fixed at decision level 0, dropping both of its implication-list
// entries, per §3's "simplification prunes entries whose variables are
// already fixed". isFixed reports whether v has a permanent (level-0)
// assignment.
func (b *BinaryClauses) Simplify(isFixed func(v Var) bool) {
	removed := 0
	for lit := range b.implied {
		list := b.implied[lit]
		if len(list) == 0 {
			continue
		}
		keyFixed := isFixed(LitFromCode(int32(lit)).Var())
		dst := list[:0]
		for _, other := range list {
			if !keyFixed && !isFixed(other.Var()) {
				dst = append(dst, other)
			}
		}
		removed += len(list) - len(dst)
		b.implied[lit] = dst
	}
	b.count -= removed / 2 // each clause counted from both endpoints
}
