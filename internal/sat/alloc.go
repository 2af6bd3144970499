package sat

import "math"

func float32bits(f float32) uint32   { return math.Float32bits(f) }
func float32frombits(b uint32) float32 { return math.Float32frombits(b) }

// Tier classifies a long clause for the eviction policy (§4.C, §4.L).
type Tier uint8

const (
	TierIrred Tier = iota // original input clause, never evicted
	TierCore               // glue <= 2, never deleted by reduction
	TierMid                // glue 3..6, demoted to Local when inactive
	TierLocal               // glue > 6, deleted aggressively
)

func (t Tier) String() string {
	switch t {
	case TierIrred:
		return "irred"
	case TierCore:
		return "core"
	case TierMid:
		return "mid"
	case TierLocal:
		return "local"
	default:
		return "unknown"
	}
}

// ClauseHandle is a 32-bit offset (in words) into the allocator's arena.
// Clauses are referenced by handle rather than pointer so that
// compaction can move them in memory with a single rewrite pass over
// handles stored as trail reasons; this also keeps watchlist entries
// small. A handle survives only until the next Compact call that
// invalidates it by rewriting the arena.
type ClauseHandle uint32

// HandleNone marks the absence of a clause handle.
const HandleNone ClauseHandle = 0xFFFFFFFF

const (
	headerWords  = 3
	glueMax      = 63 // 6-bit saturating field
	minAllocLen  = 3  // unit/binary clauses never enter the allocator
	initialWords = 1 << 16
)

// bit layout of the flags word (header word 1):
//
//	bits 0-1   tier
//	bit  2     deleted
//	bit  3     mark       (asserting clause during compaction)
//	bit  4     active     (touched since last reduction pass)
//	bits 5-10  glue (0..63, saturating)
const (
	flagTierShift   = 0
	flagTierMask    = 0x3
	flagDeletedBit  = 1 << 2
	flagMarkBit     = 1 << 3
	flagActiveBit   = 1 << 4
	flagGlueShift   = 5
	flagGlueMask    = 0x3F
)

// ClauseAllocator is a bump arena of 32-bit words holding clause headers
// and literals contiguously. Handles are word offsets, not pointers, so
// they remain valid (modulo a compaction pass) across arena growth.
type ClauseAllocator struct {
	words []uint32
	top   uint32 // next free word offset
	// garbageWords counts words reclaimable the next time Compact runs.
	garbageWords uint32
}

// NewClauseAllocator creates an allocator with an initial geometric
// capacity.
func NewClauseAllocator() *ClauseAllocator {
	return &ClauseAllocator{
		words: make([]uint32, 0, initialWords),
		top:   0,
	}
}

// Add copies a clause's header fields and literals into the arena and
// returns its handle. Minimum clause length is 3; unit and binary
// clauses are kept in the trail/binary-implication structures instead.
func (a *ClauseAllocator) Add(lits []Lit, tier Tier, glue int, learned bool) ClauseHandle {
	if len(lits) < minAllocLen {
		panic("sat: clause allocator requires length >= 3")
	}
	a.growFor(headerWords + len(lits))
	h := ClauseHandle(a.top)

	if glue > glueMax {
		glue = glueMax
	}
	flags := (uint32(tier) & flagTierMask) << flagTierShift
	flags |= uint32(glue&flagGlueMask) << flagGlueShift
	if learned {
		flags |= flagActiveBit
	}

	base := a.top
	a.words[base+0] = uint32(len(lits))
	a.words[base+1] = flags
	a.words[base+2] = 0 // activity, float32 bits, zero-initialized
	for i, l := range lits {
		a.words[base+uint32(headerWords)+uint32(i)] = uint32(l.Code())
	}
	a.top += uint32(headerWords + len(lits))
	return h
}

func (a *ClauseAllocator) growFor(n int) {
	need := int(a.top) + n
	if need <= len(a.words) {
		return
	}
	newCap := len(a.words)
	if newCap == 0 {
		newCap = initialWords
	}
	for newCap < need {
		newCap *= 2
	}
	grown := make([]uint32, newCap)
	copy(grown, a.words[:a.top])
	a.words = grown
}

// Len returns the literal count of the clause at h.
func (a *ClauseAllocator) Len(h ClauseHandle) int { return int(a.words[h]) }

// Tier returns the clause's current tier.
func (a *ClauseAllocator) Tier(h ClauseHandle) Tier {
	return Tier((a.words[h+1] >> flagTierShift) & flagTierMask)
}

// SetTier mutates only the header's tier bits; by design this does not
// touch by-tier index lists, which are cleaned up lazily during
// reduction (§4.C "Tier change").
func (a *ClauseAllocator) SetTier(h ClauseHandle, t Tier) {
	a.words[h+1] = (a.words[h+1] &^ (flagTierMask << flagTierShift)) | (uint32(t) & flagTierMask)
}

// Glue returns the clause's saturated glue/LBD value.
func (a *ClauseAllocator) Glue(h ClauseHandle) int {
	return int((a.words[h+1] >> flagGlueShift) & flagGlueMask)
}

func (a *ClauseAllocator) SetGlue(h ClauseHandle, g int) {
	if g > glueMax {
		g = glueMax
	}
	a.words[h+1] = (a.words[h+1] &^ (flagGlueMask << flagGlueShift)) | (uint32(g&flagGlueMask) << flagGlueShift)
}

func (a *ClauseAllocator) Deleted(h ClauseHandle) bool { return a.words[h+1]&flagDeletedBit != 0 }

func (a *ClauseAllocator) SetDeleted(h ClauseHandle, v bool) {
	if v {
		a.words[h+1] |= flagDeletedBit
	} else {
		a.words[h+1] &^= flagDeletedBit
	}
}

func (a *ClauseAllocator) Marked(h ClauseHandle) bool { return a.words[h+1]&flagMarkBit != 0 }

func (a *ClauseAllocator) SetMark(h ClauseHandle, v bool) {
	if v {
		a.words[h+1] |= flagMarkBit
	} else {
		a.words[h+1] &^= flagMarkBit
	}
}

func (a *ClauseAllocator) Active(h ClauseHandle) bool { return a.words[h+1]&flagActiveBit != 0 }

func (a *ClauseAllocator) SetActive(h ClauseHandle, v bool) {
	if v {
		a.words[h+1] |= flagActiveBit
	} else {
		a.words[h+1] &^= flagActiveBit
	}
}

func (a *ClauseAllocator) Activity(h ClauseHandle) float32 {
	return float32frombits(a.words[h+2])
}

func (a *ClauseAllocator) SetActivity(h ClauseHandle, act float32) {
	a.words[h+2] = float32bits(act)
}

// Lit returns the i-th literal of the clause at h.
func (a *ClauseAllocator) Lit(h ClauseHandle, i int) Lit {
	return LitFromCode(int32(a.words[uint32(h)+uint32(headerWords)+uint32(i)]))
}

// SetLit overwrites the i-th literal, used when swapping watched
// literals into positions 0/1 per the propagator's contract.
func (a *ClauseAllocator) SetLit(h ClauseHandle, i int, l Lit) {
	a.words[uint32(h)+uint32(headerWords)+uint32(i)] = uint32(l.Code())
}

// Literals returns a freshly allocated copy of all literals of the
// clause at h; later changes to the arena do not affect it.
func (a *ClauseAllocator) Literals(h ClauseHandle) []Lit {
	n := a.Len(h)
	base := uint32(h) + uint32(headerWords)
	out := make([]Lit, n)
	for i := 0; i < n; i++ {
		out[i] = LitFromCode(int32(a.words[base+uint32(i)]))
	}
	return out
}

// MarkGarbage records a clause's words as reclaimable on the next
// compaction and flags it deleted.
func (a *ClauseAllocator) MarkGarbage(h ClauseHandle) {
	if a.Deleted(h) {
		return
	}
	a.SetDeleted(h, true)
	a.garbageWords += uint32(headerWords + a.Len(h))
}

// GarbageWords returns the number of words reclaimable by compaction.
func (a *ClauseAllocator) GarbageWords() uint32 { return a.garbageWords }

// BufferWords returns the allocator's current capacity in words, for
// the garbage_size > buffer_size/2 compaction trigger.
func (a *ClauseAllocator) BufferWords() uint32 { return uint32(len(a.words)) }

// Compact copies every live clause into a fresh arena (doubled
// capacity), invoking remap for each surviving (oldHandle, newHandle)
// pair so callers can rewrite handles held as trail reasons. Dead
// clauses are dropped; the watchlists must be rebuilt by the caller
// afterward since all handles are invalidated.
func (a *ClauseAllocator) Compact(live []ClauseHandle, remap func(old, new ClauseHandle)) []ClauseHandle {
	newCap := len(a.words) * 2
	if newCap == 0 {
		newCap = initialWords
	}
	fresh := make([]uint32, newCap)
	var top uint32
	newHandles := make([]ClauseHandle, 0, len(live))

	for _, h := range live {
		if a.Deleted(h) {
			continue
		}
		n := a.Len(h)
		total := uint32(headerWords + n)
		for int(top)+int(total) > len(fresh) {
			grown := make([]uint32, len(fresh)*2)
			copy(grown, fresh[:top])
			fresh = grown
		}
		copy(fresh[top:top+total], a.words[uint32(h):uint32(h)+total])
		newH := ClauseHandle(top)
		remap(h, newH)
		newHandles = append(newHandles, newH)
		top += total
	}

	a.words = fresh
	a.top = top
	a.garbageWords = 0
	return newHandles
}
