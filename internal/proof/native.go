package proof

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/xDarkicex/satcheck/core"
	"github.com/xDarkicex/satcheck/internal/sat"
)

// Native format wire tags (§6 "Native proof format (binary)").
const (
	tagSolverVarNameUpdate     = 0
	tagSolverVarNameRemove     = 1
	tagAtClauseRedundant       = 2
	tagAtClauseIrredundant     = 3
	tagUnitClauses             = 4
	tagDeleteClauseRedundant   = 5
	tagDeleteClauseSimplified  = 6
	tagDeleteClauseSatisfied   = 7
	tagChangeHashBits          = 8
	tagModel                   = 9
	tagAddClause               = 10
	tagAssumptions             = 11
	tagFailedAssumptions       = 12
)

// tagEnd is the sentinel marking proof completion; it is encoded as its
// own varint rather than sharing the small-tag space, so it can never
// collide with a payload length of an adjacent step.
const tagEnd uint64 = 0x9ac3391f4294c211

// putVarint encodes v using a unary prefix of zero bits: the lowest set
// bit of the first byte, at position k, says "k more bytes follow";
// the value occupies the remaining first-byte bits (low-to-high) plus
// the full 8 bits of each following byte. Values needing more than 56
// bits escape via a first byte of all zero bits followed by 8 raw
// little-endian bytes. This keeps 1- and 2-byte encodings for small
// tags/literals while reaching the full uint64 range within 9 bytes.
func putVarint(w *bufio.Writer, v uint64) error {
	for k := 0; k <= 7; k++ {
		capBits := uint(7 + 7*k)
		if capBits >= 64 || v < (uint64(1)<<capBits) {
			valueBits := uint(7 - k)
			b0 := byte(1 << uint(k))
			if valueBits > 0 {
				b0 |= byte(v&((uint64(1)<<valueBits)-1)) << uint(k+1)
			}
			if err := w.WriteByte(b0); err != nil {
				return err
			}
			rem := v >> valueBits
			for i := 0; i < k; i++ {
				if err := w.WriteByte(byte(rem)); err != nil {
					return err
				}
				rem >>= 8
			}
			return nil
		}
	}
	if err := w.WriteByte(0); err != nil {
		return err
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// getVarint decodes a value written by putVarint.
func getVarint(r *bufio.Reader) (uint64, error) {
	b0, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	if b0 == 0 {
		var buf [8]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, err
		}
		return binary.LittleEndian.Uint64(buf[:]), nil
	}
	k := trailingZeros8(b0)
	valueBits := uint(7 - k)
	v := uint64(b0>>uint(k+1)) & ((uint64(1) << valueBits) - 1)
	shift := valueBits
	for i := 0; i < k; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		v |= uint64(b) << shift
		shift += 8
	}
	return v, nil
}

func trailingZeros8(b byte) int {
	for i := 0; i < 8; i++ {
		if b&(1<<uint(i)) != 0 {
			return i
		}
	}
	return 8
}

func putLit(w *bufio.Writer, l sat.Lit) error { return putVarint(w, uint64(uint32(l.Code()))) }

func getLit(r *bufio.Reader) (sat.Lit, error) {
	v, err := getVarint(r)
	if err != nil {
		return sat.LitUndef, err
	}
	return sat.LitFromCode(int32(uint32(v))), nil
}

func putLits(w *bufio.Writer, lits []sat.Lit) error {
	if err := putVarint(w, uint64(len(lits))); err != nil {
		return err
	}
	for _, l := range lits {
		if err := putLit(w, l); err != nil {
			return err
		}
	}
	return nil
}

func getLits(r *bufio.Reader) ([]sat.Lit, error) {
	n, err := getVarint(r)
	if err != nil {
		return nil, err
	}
	out := make([]sat.Lit, n)
	for i := range out {
		l, err := getLit(r)
		if err != nil {
			return nil, err
		}
		out[i] = l
	}
	return out, nil
}

func putHashes(w *bufio.Writer, hashes []uint64) error {
	if err := putVarint(w, uint64(len(hashes))); err != nil {
		return err
	}
	for _, h := range hashes {
		if err := putVarint(w, h); err != nil {
			return err
		}
	}
	return nil
}

func getHashes(r *bufio.Reader) ([]uint64, error) {
	n, err := getVarint(r)
	if err != nil {
		return nil, err
	}
	out := make([]uint64, n)
	for i := range out {
		h, err := getVarint(r)
		if err != nil {
			return nil, err
		}
		out[i] = h
	}
	return out, nil
}

// NativeEncoder serializes Steps onto an underlying writer in the
// native binary format.
type NativeEncoder struct {
	w    *bufio.Writer
	step int64
}

func NewNativeEncoder(w io.Writer) *NativeEncoder {
	return &NativeEncoder{w: bufio.NewWriter(w)}
}

// Encode writes one step; callers must call Flush (or encode a
// StepEnd, which flushes automatically) when done.
func (e *NativeEncoder) Encode(s Step) error {
	e.step++
	if err := e.encode(s); err != nil {
		return core.NewIOError(e.step, err)
	}
	if s.Kind == StepEnd {
		return e.Flush()
	}
	return nil
}

func (e *NativeEncoder) Flush() error { return e.w.Flush() }

func (e *NativeEncoder) encode(s Step) error {
	switch s.Kind {
	case StepSolverVarNameUpdate:
		if err := putVarint(e.w, tagSolverVarNameUpdate); err != nil {
			return err
		}
		if err := putVarint(e.w, uint64(uint32(s.GlobalVar))); err != nil {
			return err
		}
		return putVarint(e.w, uint64(uint32(s.SolverVar)))
	case StepSolverVarNameRemove:
		if err := putVarint(e.w, tagSolverVarNameRemove); err != nil {
			return err
		}
		return putVarint(e.w, uint64(uint32(s.GlobalVar)))
	case StepAtClauseRedundant:
		if err := putVarint(e.w, tagAtClauseRedundant); err != nil {
			return err
		}
		if err := putLits(e.w, s.Lits); err != nil {
			return err
		}
		return putHashes(e.w, s.Hashes)
	case StepAtClauseIrredundant:
		if err := putVarint(e.w, tagAtClauseIrredundant); err != nil {
			return err
		}
		if err := putLits(e.w, s.Lits); err != nil {
			return err
		}
		return putHashes(e.w, s.Hashes)
	case StepUnitClauses:
		if err := putVarint(e.w, tagUnitClauses); err != nil {
			return err
		}
		if err := putVarint(e.w, uint64(len(s.Units))); err != nil {
			return err
		}
		for _, u := range s.Units {
			if err := putLit(e.w, u.Lit); err != nil {
				return err
			}
			if err := putVarint(e.w, u.Hash); err != nil {
				return err
			}
		}
		return nil
	case StepDeleteClauseRedundant:
		if err := putVarint(e.w, tagDeleteClauseRedundant); err != nil {
			return err
		}
		return putLits(e.w, s.Lits)
	case StepDeleteClauseSimplified:
		if err := putVarint(e.w, tagDeleteClauseSimplified); err != nil {
			return err
		}
		return putLits(e.w, s.Lits)
	case StepDeleteClauseSatisfied:
		if err := putVarint(e.w, tagDeleteClauseSatisfied); err != nil {
			return err
		}
		return putLits(e.w, s.Lits)
	case StepChangeHashBits:
		if err := putVarint(e.w, tagChangeHashBits); err != nil {
			return err
		}
		return putVarint(e.w, uint64(s.Bits))
	case StepModel:
		if err := putVarint(e.w, tagModel); err != nil {
			return err
		}
		return putLits(e.w, s.Lits)
	case StepAddClause:
		if err := putVarint(e.w, tagAddClause); err != nil {
			return err
		}
		return putLits(e.w, s.Lits)
	case StepAssumptions:
		if err := putVarint(e.w, tagAssumptions); err != nil {
			return err
		}
		return putLits(e.w, s.Lits)
	case StepFailedAssumptions:
		if err := putVarint(e.w, tagFailedAssumptions); err != nil {
			return err
		}
		if err := putLits(e.w, s.Lits); err != nil {
			return err
		}
		return putHashes(e.w, s.Hashes)
	case StepEnd:
		return putVarint(e.w, tagEnd)
	default:
		panic("proof: unknown step kind in native encoder")
	}
}

// NativeDecoder parses the native binary format back into Steps.
type NativeDecoder struct {
	r    *bufio.Reader
	step int64
}

func NewNativeDecoder(r io.Reader) *NativeDecoder {
	return &NativeDecoder{r: bufio.NewReader(r)}
}

// Decode reads the next step, returning a StepEnd when the End marker
// is reached. io.EOF before an End marker is surfaced via
// ProofIncompleteError by the caller (the parser tracks whether End
// was seen), not by this low-level decoder.
func (d *NativeDecoder) Decode() (Step, error) {
	d.step++
	s, err := d.decode()
	if err != nil {
		return Step{}, core.NewParseError(d.step, err)
	}
	return s, nil
}

func (d *NativeDecoder) decode() (Step, error) {
	tag, err := getVarint(d.r)
	if err != nil {
		return Step{}, err
	}
	switch tag {
	case tagSolverVarNameUpdate:
		g, err := getVarint(d.r)
		if err != nil {
			return Step{}, err
		}
		sv, err := getVarint(d.r)
		if err != nil {
			return Step{}, err
		}
		return Step{Kind: StepSolverVarNameUpdate, GlobalVar: int32(uint32(g)), SolverVar: int32(uint32(sv))}, nil
	case tagSolverVarNameRemove:
		g, err := getVarint(d.r)
		if err != nil {
			return Step{}, err
		}
		return Step{Kind: StepSolverVarNameRemove, GlobalVar: int32(uint32(g))}, nil
	case tagAtClauseRedundant, tagAtClauseIrredundant:
		lits, err := getLits(d.r)
		if err != nil {
			return Step{}, err
		}
		hashes, err := getHashes(d.r)
		if err != nil {
			return Step{}, err
		}
		kind := StepAtClauseRedundant
		if tag == tagAtClauseIrredundant {
			kind = StepAtClauseIrredundant
		}
		return Step{Kind: kind, Lits: lits, Hashes: hashes}, nil
	case tagUnitClauses:
		n, err := getVarint(d.r)
		if err != nil {
			return Step{}, err
		}
		units := make([]UnitEntry, n)
		for i := range units {
			l, err := getLit(d.r)
			if err != nil {
				return Step{}, err
			}
			h, err := getVarint(d.r)
			if err != nil {
				return Step{}, err
			}
			units[i] = UnitEntry{Lit: l, Hash: h}
		}
		return Step{Kind: StepUnitClauses, Units: units}, nil
	case tagDeleteClauseRedundant, tagDeleteClauseSimplified, tagDeleteClauseSatisfied:
		lits, err := getLits(d.r)
		if err != nil {
			return Step{}, err
		}
		kind := StepDeleteClauseRedundant
		switch tag {
		case tagDeleteClauseSimplified:
			kind = StepDeleteClauseSimplified
		case tagDeleteClauseSatisfied:
			kind = StepDeleteClauseSatisfied
		}
		return Step{Kind: kind, Lits: lits}, nil
	case tagChangeHashBits:
		bits, err := getVarint(d.r)
		if err != nil {
			return Step{}, err
		}
		return Step{Kind: StepChangeHashBits, Bits: uint8(bits)}, nil
	case tagModel:
		lits, err := getLits(d.r)
		if err != nil {
			return Step{}, err
		}
		return Step{Kind: StepModel, Lits: lits}, nil
	case tagAddClause:
		lits, err := getLits(d.r)
		if err != nil {
			return Step{}, err
		}
		return Step{Kind: StepAddClause, Lits: lits}, nil
	case tagAssumptions:
		lits, err := getLits(d.r)
		if err != nil {
			return Step{}, err
		}
		return Step{Kind: StepAssumptions, Lits: lits}, nil
	case tagFailedAssumptions:
		lits, err := getLits(d.r)
		if err != nil {
			return Step{}, err
		}
		hashes, err := getHashes(d.r)
		if err != nil {
			return Step{}, err
		}
		return Step{Kind: StepFailedAssumptions, Lits: lits, Hashes: hashes}, nil
	case tagEnd:
		return Step{Kind: StepEnd}, nil
	default:
		return Step{}, errUnknownTag
	}
}

var errUnknownTag = unknownTagError{}

type unknownTagError struct{}

func (unknownTagError) Error() string { return "proof: unknown step tag" }
