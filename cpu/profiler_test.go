package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfilerCounts(t *testing.T) {
	assert := assert.New(t)

	c := NewCpu()
	var p Profiler
	c.Attach(&p)

	// LDA direct is 5 cycles with 2 reads; HLT is 4 cycles with 1 read.
	loadWords(c, 0x100,
		MakeMemory(OP_LDA, 0x104, false),
		MakeRegister(REG_HLT),
	)
	runToHalt(t, c)

	assert.Equal(9, p.Cycles)
	assert.Equal(2, p.Instructions)
	assert.Equal(3, p.Reads)
	assert.Equal(0, p.Writes)

	cpi, ok := p.Cpi()
	assert.True(ok)
	assert.Equal(4.5, cpi)
}

func TestProfilerCpiUndefined(t *testing.T) {
	assert := assert.New(t)

	var p Profiler
	_, ok := p.Cpi()
	assert.False(ok)

	snap := p.Snapshot()
	assert.False(snap.CpiValid)
	assert.Equal(0.0, snap.Cpi)
}

func TestProfilerReset(t *testing.T) {
	assert := assert.New(t)

	p := Profiler{Cycles: 10, Instructions: 2, Reads: 3, Writes: 1}
	p.Reset()
	assert.Equal(Profiler{}, p)
}

func TestProfilerSnapshot(t *testing.T) {
	assert := assert.New(t)

	p := Profiler{Cycles: 12, Instructions: 3, Reads: 4, Writes: 2}
	snap := p.Snapshot()

	assert.Equal(12, snap.Cycles)
	assert.Equal(3, snap.Instructions)
	assert.Equal(4, snap.Reads)
	assert.Equal(2, snap.Writes)
	assert.True(snap.CpiValid)
	assert.Equal(4.0, snap.Cpi)
}
