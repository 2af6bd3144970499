package proof

import "github.com/xDarkicex/satcheck/internal/sat"

// globalNameOffset is added to a literal's global-name code before
// mixing, so that a global-named literal's hash never collides with a
// solver-named literal's hash for small codes (§4.P "Clause hash").
const globalNameOffset uint64 = 1 << 40

// mix is a 64-bit integer hash (splitmix64 finalizer) used to spread a
// single literal code across the active hash width.
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// NameResolver maps a literal's variable to its solver-namespace code
// when known, so the checker can hash native-format clauses the same
// way the solver does post-elimination.
type NameResolver interface {
	// SolverCodeOf returns (code, true) if the variable named by the
	// global index g currently has a live solver-namespace variable;
	// otherwise (0, false), meaning the global name itself must be used.
	SolverCodeOf(g int32, negated bool) (code uint64, ok bool)
}

// HashWidth holds the currently active hash bit width, adjusted by
// ChangeHashBits steps (§4.O "Adaptive hashing").
type HashWidth struct {
	Bits uint8
}

func NewHashWidth() *HashWidth { return &HashWidth{Bits: 16} }

// Active returns a hash shifted down to the current active width.
func (h *HashWidth) Active(full uint64) uint64 {
	shift := 64 - uint(h.Bits)
	return full >> shift
}

// ClauseHash computes the permutation-invariant hash of a clause's
// literals: XOR of per-literal mixing hashes, using the solver-name
// code if available, otherwise the global-name code offset so the two
// namespaces never collide (§4.P).
func ClauseHash(lits []sat.Lit, globalOf func(sat.Var) int32, resolve NameResolver) uint64 {
	var h uint64
	for _, l := range lits {
		g := globalOf(l.Var())
		code, ok := resolve.SolverCodeOf(g, l.IsNegative())
		if !ok {
			gc := uint64(uint32(sat.NewLit(sat.Var(g), l.IsNegative()).Code()))
			code = gc + globalNameOffset
		}
		h ^= mix(code)
	}
	return h
}

// ClauseHashGlobal computes the same hash directly over global-indexed
// literal codes, used by the checker side which never sees solver
// names for clauses it did not itself derive.
func ClauseHashGlobal(globalLits []sat.Lit) uint64 {
	var h uint64
	for _, l := range globalLits {
		code := uint64(uint32(l.Code())) + globalNameOffset
		h ^= mix(code)
	}
	return h
}
