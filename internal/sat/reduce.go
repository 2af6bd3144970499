package sat

import "sort"

// Reducer implements the two periodic clause-database maintenance
// passes of §4.L: reduce-mids demotes inactive Mid-tier clauses to
// Local, and reduce-locals deletes the least-useful half of the Local
// tier. Both passes also dedup the stale by-tier index lists they
// encounter, per the "dedup-on-read" design note in §3. Grounded on the
// teacher's AdvancedClauseDeletion (sat/heuristics_advanced.go), with
// the LBD-threshold/activity scoring adapted to the allocator's packed
// header fields.
type Reducer struct {
	alloc *ClauseAllocator
	db    *ClauseDB
}

func NewReducer(alloc *ClauseAllocator, db *ClauseDB) *Reducer {
	return &Reducer{alloc: alloc, db: db}
}

// dedupLive filters a by-tier list down to handles that are still
// live and still actually in tier t, per the lazy-cleanup contract.
func (r *Reducer) dedupLive(t Tier) []ClauseHandle {
	raw := r.db.ByTier(t)
	seen := make(map[ClauseHandle]bool, len(raw))
	out := raw[:0]
	for _, h := range raw {
		if seen[h] {
			continue
		}
		if r.alloc.Deleted(h) || r.alloc.Tier(h) != t {
			continue
		}
		seen[h] = true
		out = append(out, h)
	}
	return out
}

// ReduceMids demotes Mid-tier clauses that were not marked active since
// the last pass to Local, and clears every clause's active flag for the
// next interval (§4.L "reduce-mids").
func (r *Reducer) ReduceMids() {
	live := r.dedupLive(TierMid)
	remaining := live[:0]
	for _, h := range live {
		if !r.alloc.Active(h) {
			r.db.ChangeTier(h, TierLocal)
			continue
		}
		r.alloc.SetActive(h, false)
		remaining = append(remaining, h)
	}
	r.db.SetByTier(TierMid, remaining)
}

// ReduceLocals sorts the Local tier by glue descending (worst first),
// then deletes the worse half, skipping any clause that is currently a
// propagation reason (§4.L "reduce-locals").
func (r *Reducer) ReduceLocals(isReason func(ClauseHandle) bool) {
	live := r.dedupLive(TierLocal)
	sort.Slice(live, func(i, j int) bool {
		gi, gj := r.alloc.Glue(live[i]), r.alloc.Glue(live[j])
		if gi != gj {
			return gi > gj
		}
		return r.alloc.Activity(live[i]) < r.alloc.Activity(live[j])
	})

	target := len(live) / 2
	kept := make([]ClauseHandle, 0, len(live)-target)
	deleted := 0
	for _, h := range live {
		if deleted < target && !isReason(h) {
			r.db.Delete(h)
			deleted++
			continue
		}
		kept = append(kept, h)
	}
	r.db.SetByTier(TierLocal, kept)
}
