package proof

import (
	"sort"

	"github.com/xDarkicex/satcheck/internal/sat"
)

// CheckerClauseID uniquely identifies a clause stored in the index,
// assigned in insertion order; LRAT transcription reuses these ids
// directly (§8 invariant 10).
type CheckerClauseID uint64

// CheckerClause is the checker's own record of a clause (§3 "Checker
// clause (P)"): canonical (sorted, deduplicated) literals plus two
// independent reference counts, since a clause can simultaneously be
// present as an original input clause and be re-derived as a redundant
// lemma.
type CheckerClause struct {
	ID       CheckerClauseID
	Literals []sat.Lit // global-namespace, sorted ascending by Code(), deduped
	RefIrred int
	RefRed   int
}

// Live reports whether the clause still has any owning reference.
func (c *CheckerClause) Live() bool { return c.RefIrred > 0 || c.RefRed > 0 }

// ClauseIndex is the hash-bucketed multiset of checker clauses (§4.P).
// Each bucket holds every clause currently hashing to that bucket,
// deduplicated at insert time so equal clauses share one entry with
// bumped ref-counts (universal invariant 9).
type ClauseIndex struct {
	buckets map[uint64][]*CheckerClause
	nextID  CheckerClauseID
	width   *HashWidth

	// units maps a (global) variable to the literal it is fixed to,
	// enforcing the "unit clauses are globally unique per literal"
	// invariant; a conflicting second unit flips the checker UNSAT.
	units map[sat.Var]sat.Lit
}

func NewClauseIndex(width *HashWidth) *ClauseIndex {
	return &ClauseIndex{
		buckets: make(map[uint64][]*CheckerClause),
		width:   width,
		units:   make(map[sat.Var]sat.Lit),
	}
}

// Canonicalize sorts and deduplicates a clause's literals and reports
// whether it is a tautology (contains both a literal and its negation).
func Canonicalize(lits []sat.Lit) (out []sat.Lit, tautology bool) {
	cp := append([]sat.Lit(nil), lits...)
	sort.Slice(cp, func(i, j int) bool { return cp[i].Code() < cp[j].Code() })
	out = cp[:0]
	for i, l := range cp {
		if i > 0 && l == out[len(out)-1] {
			continue
		}
		out = append(out, l)
	}
	for i := 0; i+1 < len(out); i++ {
		if out[i].Var() == out[i+1].Var() {
			return out, true
		}
	}
	return out, false
}

func (idx *ClauseIndex) bucketFor(lits []sat.Lit) uint64 {
	return idx.width.Active(ClauseHashGlobal(lits))
}

// find locates an existing clause with identical canonical literals in
// the bucket, or nil.
func (idx *ClauseIndex) find(bucket uint64, lits []sat.Lit) *CheckerClause {
	for _, c := range idx.buckets[bucket] {
		if litsEqual(c.Literals, lits) {
			return c
		}
	}
	return nil
}

func litsEqual(a, b []sat.Lit) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Insert adds a clause (already canonicalized by the caller) as either
// redundant or irredundant, bumping ref-count if an identical clause
// already exists; returns the clause record and whether this was a
// brand-new entry (vs. a ref-count bump on an existing one).
func (idx *ClauseIndex) Insert(lits []sat.Lit, redundant bool) (*CheckerClause, bool) {
	bucket := idx.bucketFor(lits)
	if c := idx.find(bucket, lits); c != nil {
		if redundant {
			c.RefRed++
		} else {
			c.RefIrred++
		}
		if len(lits) == 1 {
			idx.units[lits[0].Var()] = lits[0]
		}
		return c, false
	}

	idx.nextID++
	c := &CheckerClause{ID: idx.nextID, Literals: lits}
	if redundant {
		c.RefRed = 1
	} else {
		c.RefIrred = 1
	}
	idx.buckets[bucket] = append(idx.buckets[bucket], c)
	if len(lits) == 1 {
		idx.units[lits[0].Var()] = lits[0]
	}
	return c, true
}

// Remove decrements the appropriate ref-count and reports whether the
// clause became fully dead (both ref-counts zero) and whether it
// transitioned from "has an irredundant copy" to "redundant only",
// i.e. "newly redundant" per §4.P step-processor invariants.
func (idx *ClauseIndex) Remove(lits []sat.Lit, redundant bool) (dead, newlyRedundant bool, c *CheckerClause) {
	bucket := idx.bucketFor(lits)
	c = idx.find(bucket, lits)
	if c == nil {
		return false, false, nil
	}
	wasIrred := c.RefIrred > 0
	if redundant {
		c.RefRed--
	} else {
		c.RefIrred--
	}
	newlyRedundant = wasIrred && c.RefIrred == 0 && c.RefRed > 0
	if !c.Live() {
		idx.removeFromBucket(bucket, c)
		if len(c.Literals) == 1 {
			delete(idx.units, c.Literals[0].Var())
		}
		return true, newlyRedundant, c
	}
	return false, newlyRedundant, c
}

func (idx *ClauseIndex) removeFromBucket(bucket uint64, target *CheckerClause) {
	list := idx.buckets[bucket]
	for i, c := range list {
		if c == target {
			idx.buckets[bucket] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// Find looks up a clause by its canonical literals without mutating
// ref-counts.
func (idx *ClauseIndex) Find(lits []sat.Lit) *CheckerClause {
	return idx.find(idx.bucketFor(lits), lits)
}

// BucketCandidates returns every clause whose hash matches h at the
// active width, for RUP's hint-driven candidate search.
func (idx *ClauseIndex) BucketCandidates(h uint64) []*CheckerClause {
	return idx.buckets[idx.width.Active(h)]
}

// UnitValue returns the literal a variable is permanently fixed to, if any.
func (idx *ClauseIndex) UnitValue(v sat.Var) (sat.Lit, bool) {
	l, ok := idx.units[v]
	return l, ok
}

// Rehash redistributes every bucket entry under a new hash width,
// called when ChangeHashBits widens or narrows the active width.
func (idx *ClauseIndex) Rehash(newBits uint8) {
	old := idx.buckets
	idx.width.Bits = newBits
	idx.buckets = make(map[uint64][]*CheckerClause, len(old))
	for _, list := range old {
		for _, c := range list {
			b := idx.bucketFor(c.Literals)
			idx.buckets[b] = append(idx.buckets[b], c)
		}
	}
}

// LiveCount returns the number of distinct live clause entries. The
// emitter's hash-width policy keeps its own live-clause count and does
// not call this.
func (idx *ClauseIndex) LiveCount() int {
	n := 0
	for _, list := range idx.buckets {
		n += len(list)
	}
	return n
}
