package sat

// ClauseDB is the multiset of long (length >= 3) clauses, partitioned
// into tiers. It owns no memory itself beyond the index slices; clause
// contents live in a ClauseAllocator (component B). Per spec §3:
// `clauses` may contain dead entries until GC; `by_tier` may contain
// duplicates or stale tiers (the tier of record lives in the header);
// `count_by_tier` is always an exact live count.
type ClauseDB struct {
	alloc *ClauseAllocator

	clauses []ClauseHandle
	byTier  [4][]ClauseHandle
	counts  [4]int
}

// NewClauseDB creates an empty database backed by the given allocator.
func NewClauseDB(alloc *ClauseAllocator) *ClauseDB {
	return &ClauseDB{alloc: alloc}
}

// AddLearned inserts a freshly learned long clause (length >= 3) into
// its glue-selected tier (§4.I "Tier selection").
func (db *ClauseDB) AddLearned(lits []Lit, glue int) ClauseHandle {
	tier := tierForGlue(glue)
	h := db.alloc.Add(lits, tier, glue, true)
	db.clauses = append(db.clauses, h)
	db.byTier[tier] = append(db.byTier[tier], h)
	db.counts[tier]++
	return h
}

// AddIrredundant inserts an original input clause (length >= 3); these
// are never evicted by reduction.
func (db *ClauseDB) AddIrredundant(lits []Lit) ClauseHandle {
	h := db.alloc.Add(lits, TierIrred, 0, false)
	db.clauses = append(db.clauses, h)
	db.byTier[TierIrred] = append(db.byTier[TierIrred], h)
	db.counts[TierIrred]++
	return h
}

// tierForGlue implements §4.I's tier selection: glue <= 2 -> Core,
// 3..6 -> Mid, otherwise -> Local.
func tierForGlue(glue int) Tier {
	switch {
	case glue <= 2:
		return TierCore
	case glue <= 6:
		return TierMid
	default:
		return TierLocal
	}
}

// CountByTier returns the exact live-clause count for a tier.
func (db *ClauseDB) CountByTier(t Tier) int { return db.counts[t] }

// Size returns the total number of live long clauses.
func (db *ClauseDB) Size() int {
	n := 0
	for _, c := range db.counts {
		n += c
	}
	return n
}

// ChangeTier writes the new tier into the allocator header, moves the
// count_by_tier bookkeeping, and appends the handle to the new tier's
// list. The stale entry is left in the old by-tier list to be lazily
// cleaned during the next reduction pass over that tier.
func (db *ClauseDB) ChangeTier(h ClauseHandle, newTier Tier) {
	old := db.alloc.Tier(h)
	if old == newTier {
		return
	}
	db.counts[old]--
	db.counts[newTier]++
	db.alloc.SetTier(h, newTier)
	db.byTier[newTier] = append(db.byTier[newTier], h)
}

// Delete marks a clause garbage and updates its tier's live count.
func (db *ClauseDB) Delete(h ClauseHandle) {
	if db.alloc.Deleted(h) {
		return
	}
	t := db.alloc.Tier(h)
	db.counts[t]--
	db.alloc.MarkGarbage(h)
}

// ByTier returns the (possibly stale/duplicated) handle list for a
// tier; callers must re-check `!alloc.Deleted(h) && alloc.Tier(h)==t`
// before trusting an entry, per the dedup-lazy-lists design note.
func (db *ClauseDB) ByTier(t Tier) []ClauseHandle { return db.byTier[t] }

// SetByTier replaces a tier's index list, used by the reduction pass
// after it has deduplicated and possibly shrunk the list.
func (db *ClauseDB) SetByTier(t Tier, handles []ClauseHandle) { db.byTier[t] = handles }

// LiveClauses returns every live long-clause handle, skipping dead
// entries in `clauses`.
func (db *ClauseDB) LiveClauses() []ClauseHandle {
	out := make([]ClauseHandle, 0, len(db.clauses))
	for _, h := range db.clauses {
		if !db.alloc.Deleted(h) {
			out = append(out, h)
		}
	}
	return out
}

// NeedsCompaction reports whether the garbage accumulated in the
// allocator exceeds half of its buffer, the compaction trigger of §4.C.
func (db *ClauseDB) NeedsCompaction() bool {
	return db.alloc.GarbageWords() > db.alloc.BufferWords()/2
}

// CompactNow performs the allocator compaction and rewrites this
// database's handle lists. The caller (Solver) is responsible for also
// rewriting trail reasons and disabling/rebuilding watchlists, since
// this type has no visibility into those structures (pattern U: this
// routine only touches the Clauses/Allocator parts it owns).
func (db *ClauseDB) CompactNow(remapReasons func(old, new ClauseHandle)) {
	live := db.LiveClauses()
	newHandles := db.alloc.Compact(live, remapReasons)

	db.clauses = newHandles
	for t := range db.byTier {
		db.byTier[t] = db.byTier[t][:0]
	}
	for _, h := range newHandles {
		t := db.alloc.Tier(h)
		db.byTier[t] = append(db.byTier[t], h)
	}
}
