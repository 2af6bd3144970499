package sat

// Analyzer derives a learned clause from a conflict via first-UIP
// resolution (§4.I), grounded on the teacher's FirstUIPAnalyzer
// resolution loop but rebuilt over packed Lits/ClauseHandles and the
// allocator/trail split instead of pointer-based clauses and a
// string-keyed `seen` map.
type Analyzer struct {
	alloc *ClauseAllocator
	bin   *BinaryClauses
	trail *Trail

	seen       []bool // indexed by Var; scratch, cleared after each use
	levelsSeen map[int32]bool
	outLits    []Lit
	scratchVars []Var // vars marked seen, for O(k) clearing
}

func NewAnalyzer(alloc *ClauseAllocator, bin *BinaryClauses, trail *Trail, nVars int) *Analyzer {
	return &Analyzer{
		alloc:      alloc,
		bin:        bin,
		trail:      trail,
		seen:       make([]bool, nVars),
		levelsSeen: make(map[int32]bool),
	}
}

func (an *Analyzer) ensureVar(v Var) {
	need := int(v) + 1
	if need <= len(an.seen) {
		return
	}
	grown := make([]bool, need)
	copy(grown, an.seen)
	an.seen = grown
}

// AnalysisResult is a freshly learned clause plus its glue (LBD) and
// the level to backtrack to (the second-highest level among its
// literals, or 0 if it is a unit clause).
type AnalysisResult struct {
	Literals      []Lit // asserting literal at index 0
	Glue          int
	BacktrackTo   int32
}

func (an *Analyzer) conflictLits(c Conflict) []Lit {
	if c.IsBinary {
		return []Lit{c.BinA, c.BinB}
	}
	return an.alloc.Literals(c.Handle)
}

// Analyze walks the implication graph backward from the conflicting
// clause, resolving away literals assigned at the current decision
// level until exactly one remains (the first UIP), per §4.I.
func (an *Analyzer) Analyze(conf Conflict) AnalysisResult {
	curLevel := an.trail.Level()
	clauseLits := an.conflictLits(conf)

	pending := 0 // literals at curLevel awaiting resolution
	an.outLits = an.outLits[:0]
	an.outLits = append(an.outLits, LitUndef) // reserve slot 0 for the asserting literal
	an.levelsSeen = make(map[int32]bool)
	an.scratchVars = an.scratchVars[:0]

	mark := func(lit Lit) {
		v := lit.Var()
		an.ensureVar(v)
		if an.seen[v] {
			return
		}
		lvl := an.trail.VarLevel(v)
		if lvl == 0 {
			return // level-0 falsified literals never appear in the clause
		}
		an.seen[v] = true
		an.scratchVars = append(an.scratchVars, v)
		an.levelsSeen[lvl] = true
		if lvl == curLevel {
			pending++
		} else {
			an.outLits = append(an.outLits, lit.Negate())
		}
	}

	for _, l := range clauseLits {
		mark(l)
	}

	seq := an.trail.TrailLiterals()
	idx := len(seq) - 1
	var uipLit Lit
	for {
		for !an.seen[seq[idx].Var()] {
			idx--
		}
		v := seq[idx].Var()
		an.seen[v] = false
		pending--
		if pending == 0 {
			uipLit = seq[idx].Negate()
			break
		}
		reasonLits := an.reasonLiterals(v)
		for _, rl := range reasonLits {
			mark(rl)
		}
		idx--
	}

	an.outLits[0] = uipLit

	for _, v := range an.scratchVars {
		an.seen[v] = false
	}

	an.fixWatchPosition(an.outLits)
	backtrack := int32(0)
	if len(an.outLits) > 1 {
		backtrack = an.trail.VarLevel(an.outLits[1].Var())
	}

	return AnalysisResult{
		Literals:    append([]Lit(nil), an.outLits...),
		Glue:        len(an.levelsSeen),
		BacktrackTo: backtrack,
	}
}

// fixWatchPosition moves the highest-level literal among lits[1:] into
// position 1, leaving the asserting literal at position 0. The watched
// literals of a learned clause are always lits[0] and lits[1]; after
// backtracking to BacktrackTo, every literal besides the asserting one
// must already be false at a level the watch can re-detect, so the
// second watch must sit on the literal that stays assigned longest.
// Grounded on the same swap in
// _examples/original_source/varisat/src/analyze_conflict.rs.
func (an *Analyzer) fixWatchPosition(lits []Lit) {
	if len(lits) <= 1 {
		return
	}
	best := 1
	bestLvl := an.trail.VarLevel(lits[1].Var())
	for i := 2; i < len(lits); i++ {
		if lvl := an.trail.VarLevel(lits[i].Var()); lvl > bestLvl {
			bestLvl = lvl
			best = i
		}
	}
	if best != 1 {
		lits[1], lits[best] = lits[best], lits[1]
	}
}

// reasonLiterals returns the "other" literals of the clause that forced
// v's assignment (i.e. excluding v's own literal), for resolution.
func (an *Analyzer) reasonLiterals(v Var) []Lit {
	if an.trail.HasBinaryReason(v) {
		return []Lit{an.trail.BinaryReason(v)}
	}
	h := an.trail.Reason(v)
	if h == HandleNone {
		return nil // decision variable, nothing to resolve
	}
	lits := an.alloc.Literals(h)
	assigned := NewLit(v, an.trail.VarValue(v) == LFalse)
	out := make([]Lit, 0, len(lits)-1)
	for _, l := range lits {
		if l != assigned {
			out = append(out, l)
		}
	}
	return out
}

// Minimize removes literals from the learned clause whose falsification
// is already implied by the reasons of other literals in the clause
// (self-subsuming resolution), a cheap one-pass variant of recursive
// clause minimization.
func (an *Analyzer) Minimize(lits []Lit) []Lit {
	if len(lits) <= 1 {
		return lits
	}
	inClause := make(map[Var]bool, len(lits))
	for _, l := range lits {
		inClause[l.Var()] = true
	}
	out := lits[:1] // never drop the asserting literal
	for _, l := range lits[1:] {
		if an.redundant(l, inClause) {
			continue
		}
		out = append(out, l)
	}
	// Minimization can drop the literal Analyze placed in position 1,
	// so the watch invariant has to be re-established here too.
	an.fixWatchPosition(out)
	return out
}

func (an *Analyzer) redundant(lit Lit, inClause map[Var]bool) bool {
	v := lit.Var()
	if an.trail.IsDecision(v) {
		return false
	}
	reasons := an.reasonLiterals(v)
	if reasons == nil {
		return false
	}
	for _, r := range reasons {
		if an.trail.VarLevel(r.Var()) == 0 {
			continue
		}
		if !inClause[r.Var()] {
			return false
		}
	}
	return true
}
