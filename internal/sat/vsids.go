package sat

// VSIDS is a max-heap over per-variable activity scores with a reverse
// index for O(log n) bump/removal, grounded on the teacher's
// VSIDSHeuristic (sat/heuristics.go) but simplified to the classic
// bump/decay scheme described in §4.J, dropping the teacher's LRB/
// anti-aging extensions (not named by the spec).
type VSIDS struct {
	activity []float64 // indexed by Var
	heap     []Var     // binary heap of variable indices, by activity desc
	position []int     // reverse index: position[v] = index in heap, or -1 if absent
	inHeap   []bool

	bumpInc float64
	decay   float64 // multiplicative decay factor applied to bumpInc
}

const (
	vsidsDefaultDecay = 0.95
	vsidsRescaleLimit = 1e100
)

func NewVSIDS(nVars int) *VSIDS {
	v := &VSIDS{
		activity: make([]float64, nVars),
		position: make([]int, nVars),
		inHeap:   make([]bool, nVars),
		bumpInc:  1.0,
		decay:    vsidsDefaultDecay,
	}
	for i := range v.position {
		v.position[i] = -1
	}
	return v
}

func (v *VSIDS) ensureVar(n Var) {
	need := int(n) + 1
	if need <= len(v.activity) {
		return
	}
	growF := make([]float64, need)
	copy(growF, v.activity)
	v.activity = growF
	growP := make([]int, need)
	copy(growP, v.position)
	for i := len(v.position); i < need; i++ {
		growP[i] = -1
	}
	v.position = growP
	growB := make([]bool, need)
	copy(growB, v.inHeap)
	v.inHeap = growB
}

// Insert adds v to the heap if not already present (e.g. on first
// appearance or after being popped as a decision).
func (v *VSIDS) Insert(n Var) {
	v.ensureVar(n)
	if v.inHeap[n] {
		return
	}
	v.heap = append(v.heap, n)
	v.position[n] = len(v.heap) - 1
	v.inHeap[n] = true
	v.siftUp(v.position[n])
}

// Contains reports whether v is currently in the decision heap.
func (v *VSIDS) Contains(n Var) bool {
	if int(n) >= len(v.inHeap) {
		return false
	}
	return v.inHeap[n]
}

// Bump increases v's activity and re-heapifies; triggers a global
// rescale if any activity would overflow float64 precision headroom.
func (v *VSIDS) Bump(n Var) {
	v.ensureVar(n)
	v.activity[n] += v.bumpInc
	if v.activity[n] > vsidsRescaleLimit {
		v.rescale()
	}
	if v.inHeap[n] {
		v.siftUp(v.position[n])
	}
}

func (v *VSIDS) rescale() {
	for i := range v.activity {
		v.activity[i] *= 1e-100
	}
	v.bumpInc *= 1e-100
}

// Decay increases the bump increment, implementing activity decay by
// making future bumps relatively larger rather than rescaling every
// variable (the standard MiniSat-derived trick).
func (v *VSIDS) Decay() {
	v.bumpInc /= v.decay
}

// Activity returns v's current raw activity score.
func (v *VSIDS) Activity(n Var) float64 {
	if int(n) >= len(v.activity) {
		return 0
	}
	return v.activity[n]
}

// PopMax removes and returns the variable with highest activity; the
// caller is responsible for re-inserting it if it becomes unassigned
// again (e.g. after backtracking).
func (v *VSIDS) PopMax() (Var, bool) {
	if len(v.heap) == 0 {
		return 0, false
	}
	top := v.heap[0]
	last := len(v.heap) - 1
	v.swap(0, last)
	v.heap = v.heap[:last]
	v.inHeap[top] = false
	v.position[top] = -1
	if len(v.heap) > 0 {
		v.siftDown(0)
	}
	return top, true
}

// Peek returns the current highest-activity variable without removing it.
func (v *VSIDS) Peek() (Var, bool) {
	if len(v.heap) == 0 {
		return 0, false
	}
	return v.heap[0], true
}

func (v *VSIDS) less(i, j Var) bool { return v.activity[i] > v.activity[j] }

func (v *VSIDS) swap(i, j int) {
	v.heap[i], v.heap[j] = v.heap[j], v.heap[i]
	v.position[v.heap[i]] = i
	v.position[v.heap[j]] = j
}

func (v *VSIDS) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !v.less(v.heap[i], v.heap[parent]) {
			break
		}
		v.swap(i, parent)
		i = parent
	}
}

func (v *VSIDS) siftDown(i int) {
	n := len(v.heap)
	for {
		l, r := 2*i+1, 2*i+2
		largest := i
		if l < n && v.less(v.heap[l], v.heap[largest]) {
			largest = l
		}
		if r < n && v.less(v.heap[r], v.heap[largest]) {
			largest = r
		}
		if largest == i {
			break
		}
		v.swap(i, largest)
		i = largest
	}
}
