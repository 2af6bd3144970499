package sat

// Stats accumulates solver-run counters for diagnostics. The solver
// logs the restart count via logrus at each restart; the other counters
// are only returned by Solver.Stats.
type Stats struct {
	Decisions     uint64
	Propagations  uint64
	Conflicts     uint64
	Restarts      uint64
	LearnedUnits  uint64
	LearnedBinary uint64
	LearnedLong   uint64
	ReduceMids    uint64
	ReduceLocals  uint64
	Compactions   uint64
}
