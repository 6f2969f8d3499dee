package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryReadWrite(t *testing.T) {
	assert := assert.New(t)

	var m Memory

	err := m.Write(0x123, 0xBEEF)
	assert.NoError(err)

	value, err := m.Read(0x123)
	assert.NoError(err)
	assert.Equal(Word(0xBEEF), value)

	// Last valid cell.
	err = m.Write(MEM_SIZE-1, 0x0001)
	assert.NoError(err)
}

func TestMemoryBounds(t *testing.T) {
	assert := assert.New(t)

	var m Memory

	_, err := m.Read(MEM_SIZE)
	assert.ErrorIs(err, ErrAddress(0))

	err = m.Write(MEM_SIZE, 0)
	assert.ErrorIs(err, ErrAddress(0))

	_, err = m.Peek(0xFFFF)
	assert.ErrorIs(err, ErrAddress(0))

	err = m.Poke(0xFFFF, 0)
	assert.ErrorIs(err, ErrAddress(0))
}

func TestMemoryListener(t *testing.T) {
	assert := assert.New(t)

	var m Memory
	var p Profiler
	m.Listener = &p

	_ = m.Write(0x10, 0x1234)
	_, _ = m.Read(0x10)
	_, _ = m.Read(0x10)

	// Peek and Poke never count.
	_ = m.Poke(0x11, 0x5678)
	_, _ = m.Peek(0x11)

	assert.Equal(2, p.Reads)
	assert.Equal(1, p.Writes)
}

func TestMemorySlice(t *testing.T) {
	assert := assert.New(t)

	var m Memory
	_ = m.Poke(0xFFE, 0xAAAA)
	_ = m.Poke(0xFFF, 0xBBBB)

	values, err := m.Slice(0xFFE, 2)
	assert.NoError(err)
	assert.Equal([]Word{0xAAAA, 0xBBBB}, values)

	_, err = m.Slice(0xFFE, 3)
	assert.ErrorIs(err, ErrAddress(0))

	_, err = m.Slice(0, -1)
	assert.ErrorIs(err, ErrAddress(0))

	values, err = m.Slice(0x100, 0)
	assert.NoError(err)
	assert.Empty(values)
}

func TestMemoryReset(t *testing.T) {
	assert := assert.New(t)

	var m Memory
	_ = m.Poke(0x42, 0xFFFF)

	m.Reset()
	value, err := m.Peek(0x42)
	assert.NoError(err)
	assert.Equal(Word(0), value)
}
