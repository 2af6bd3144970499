package proof

import (
	"bytes"
	"fmt"

	"github.com/xDarkicex/satcheck/internal/sat"
)

// LRATTranscriber emits LRAT (and, via Binary, compressed LRAT) from
// validated checker events (§4.S). It batches consecutive deletions
// into a single "d" line/record the way the reference LRAT writer
// does, only flushing the batch when an Add event (or end-of-stream)
// forces a boundary.
type LRATTranscriber struct {
	lastAddedID CheckerClauseID
	pendingDel  []CheckerClauseID
	lines       []string
	records     []lratRecord
}

// lratRecord mirrors one transcript line in structured form, so Binary
// can encode literals straight from their sat.Lit values instead of
// re-parsing the rendered decimal text (which loses the sign of
// negative DIMACS literals).
type lratRecord struct {
	isDelete bool
	id       CheckerClauseID
	lits     []sat.Lit
	trace    []CheckerClauseID
	deletes  []CheckerClauseID
}

func NewLRATTranscriber() *LRATTranscriber { return &LRATTranscriber{} }

// RecordAdd flushes any pending delete batch and emits an add line:
// `id lits 0 trace_ids 0`.
func (t *LRATTranscriber) RecordAdd(id CheckerClauseID, lits []sat.Lit, trace []CheckerClauseID) {
	t.flushDeletes()
	var b bytes.Buffer
	fmt.Fprintf(&b, "%d", id)
	for _, l := range lits {
		fmt.Fprintf(&b, " %d", l.DimacsInt())
	}
	b.WriteString(" 0")
	for _, tid := range trace {
		fmt.Fprintf(&b, " %d", tid)
	}
	b.WriteString(" 0")
	t.lines = append(t.lines, b.String())
	t.lastAddedID = id
	t.records = append(t.records, lratRecord{
		id:    id,
		lits:  append([]sat.Lit(nil), lits...),
		trace: append([]CheckerClauseID(nil), trace...),
	})
}

// RecordDelete adds id to the pending delete batch.
func (t *LRATTranscriber) RecordDelete(id CheckerClauseID) {
	t.pendingDel = append(t.pendingDel, id)
}

// RecordImplicitDelete is called when id was subsumed by subsumer (a
// Satisfied/Simplified deletion). LRAT has no separate notation for
// this, so it records nothing: the id enters the delete batch only
// through RecordDelete, and the subsumer is discarded.
func (t *LRATTranscriber) RecordImplicitDelete(id, subsumer CheckerClauseID) {
	_ = subsumer
}

func (t *LRATTranscriber) flushDeletes() {
	if len(t.pendingDel) == 0 {
		return
	}
	var b bytes.Buffer
	fmt.Fprintf(&b, "%d d", t.lastAddedID)
	for _, id := range t.pendingDel {
		fmt.Fprintf(&b, " %d", id)
	}
	b.WriteString(" 0")
	t.lines = append(t.lines, b.String())
	t.records = append(t.records, lratRecord{
		isDelete: true,
		id:       t.lastAddedID,
		deletes:  append([]CheckerClauseID(nil), t.pendingDel...),
	})
	t.pendingDel = t.pendingDel[:0]
}

// Finish flushes any trailing delete batch; call once the proof stream
// is fully processed.
func (t *LRATTranscriber) Finish() { t.flushDeletes() }

// Lines returns the textual LRAT transcript, one entry per line.
func (t *LRATTranscriber) Lines() []string { return t.lines }

// Binary serializes the same transcript in compressed LRAT form: each
// record's id, literals, and trailing id list are LEB128-encoded and
// zero-terminated per list, with an 'a'/'d' tag byte distinguishing
// add from delete records, mirroring the native proof format's own
// tag+varint shape (§6) rather than introducing a third encoding.
// Literals are encoded from their sat.Lit values directly (the same
// Code() varint native.go uses), not by re-parsing rendered decimal
// text, so the sign of negative DIMACS literals is never lost.
func (t *LRATTranscriber) Binary() []byte {
	var buf bytes.Buffer
	for _, r := range t.records {
		if r.isDelete {
			buf.WriteByte('d')
			writeLEB128(&buf, uint64(r.id))
			for _, id := range r.deletes {
				writeLEB128(&buf, uint64(id))
			}
			buf.WriteByte(0)
			continue
		}
		buf.WriteByte('a')
		writeLEB128(&buf, uint64(r.id))
		for _, l := range r.lits {
			writeLEB128(&buf, uint64(uint32(l.Code())))
		}
		buf.WriteByte(0)
		for _, tid := range r.trace {
			writeLEB128(&buf, uint64(tid))
		}
		buf.WriteByte(0)
	}
	return buf.Bytes()
}

func writeLEB128(buf *bytes.Buffer, v uint64) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			buf.WriteByte(b | 0x80)
		} else {
			buf.WriteByte(b)
			return
		}
	}
}
