package cpu

// Listener receives control-unit and memory-bank events. Implementations
// observe only; they must never mutate engine state.
type Listener interface {
	// CycleDone reports one completed timing state.
	CycleDone()
	// InstructionDone reports the sequence counter returning to 0 at an
	// instruction boundary.
	InstructionDone()
	// MemoryRead reports a counted read of addr.
	MemoryRead(addr Word)
	// MemoryWrite reports a counted write of addr.
	MemoryWrite(addr Word)
}

// Profiler subscribes to engine events and keeps monotonic counters.
// It is reset together with a fresh image load.
type Profiler struct {
	Cycles       int // Timing-state advances.
	Instructions int // Instructions completed.
	Reads        int // Memory reads.
	Writes       int // Memory writes.
}

var _ Listener = (*Profiler)(nil)

func (p *Profiler) CycleDone() {
	p.Cycles++
}

func (p *Profiler) InstructionDone() {
	p.Instructions++
}

func (p *Profiler) MemoryRead(addr Word) {
	p.Reads++
}

func (p *Profiler) MemoryWrite(addr Word) {
	p.Writes++
}

// Reset zeroes every counter.
func (p *Profiler) Reset() {
	*p = Profiler{}
}

// Cpi returns cycles per instruction. ok is false when no instruction has
// completed yet; the ratio is undefined there.
func (p *Profiler) Cpi() (cpi float64, ok bool) {
	if p.Instructions == 0 {
		return
	}

	return float64(p.Cycles) / float64(p.Instructions), true
}

// Snapshot is a point-in-time copy of the profiler counters.
type Snapshot struct {
	Cycles       int
	Instructions int
	Reads        int
	Writes       int
	Cpi          float64
	CpiValid     bool // False when Instructions == 0.
}

// Snapshot returns the current counters.
func (p *Profiler) Snapshot() (snap Snapshot) {
	snap = Snapshot{
		Cycles:       p.Cycles,
		Instructions: p.Instructions,
		Reads:        p.Reads,
		Writes:       p.Writes,
	}
	snap.Cpi, snap.CpiValid = p.Cpi()

	return
}
