package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterMasking(t *testing.T) {
	assert := assert.New(t)

	var r Registers
	r.Reset(0)

	r.SetAC(0xFFFF)
	assert.Equal(Word(0xFFFF), r.AC)

	r.SetAR(0x1FFF)
	assert.Equal(Word(0x0FFF), r.AR)

	r.SetPC(0xABCD)
	assert.Equal(Word(0xBCD), r.PC)

	r.SetOUTR(0x1FF)
	assert.Equal(Word(0xFF), r.OUTR)

	r.SetINPR(0xABC)
	assert.Equal(Word(0xBC), r.INPR)

	r.SetSC(16)
	assert.Equal(Word(0), r.SC)
}

func TestRegisterWrap(t *testing.T) {
	assert := assert.New(t)

	var r Registers
	r.Reset(0xFFF)
	r.IncPC()
	assert.Equal(Word(0), r.PC)

	r.SetSC(15)
	r.IncSC()
	assert.Equal(Word(0), r.SC)
}

func TestRegisterReset(t *testing.T) {
	assert := assert.New(t)

	var r Registers
	r.SetAC(0x1234)
	r.E.Set()
	r.IEN.Set()

	r.Reset(0x100)
	assert.Equal(Word(0), r.AC)
	assert.Equal(Bit(0), r.E)
	assert.Equal(Bit(0), r.IEN)
	assert.Equal(Word(0x100), r.PC)
	assert.Equal(Bit(1), r.S)
}

func TestRegisterGet(t *testing.T) {
	assert := assert.New(t)

	var r Registers
	r.Reset(0x123)
	r.SetAC(0x4567)
	r.FGI.Set()

	table := [](struct {
		name  string
		value Word
	}){
		{"AC", 0x4567},
		{"ac", 0x4567}, // case-insensitive
		{"PC", 0x123},
		{"FGI", 1},
		{"fgo", 0},
		{"S", 1},
	}

	for _, entry := range table {
		value, err := r.Get(entry.name)
		assert.NoError(err, entry.name)
		assert.Equal(entry.value, value, entry.name)
	}

	_, err := r.Get("XYZZY")
	assert.ErrorIs(err, ErrRegisterUnknown(""))
}

func TestRegisterAll(t *testing.T) {
	assert := assert.New(t)

	var r Registers
	r.Reset(0)

	names := []string{}
	for name := range r.All() {
		names = append(names, name)
	}

	assert.Equal([]string{
		"AC", "DR", "IR", "TR", "AR", "PC", "OUTR", "INPR", "SC",
		"E", "S", "IEN", "R", "FGI", "FGO", "I",
	}, names)
}

func TestBit(t *testing.T) {
	assert := assert.New(t)

	var b Bit
	b.Set()
	assert.Equal(Bit(1), b)
	assert.Equal(Word(1), b.Word())

	b.Complement()
	assert.Equal(Bit(0), b)

	b.Complement()
	assert.Equal(Bit(1), b)

	b.Clear()
	assert.Equal(Bit(0), b)
}
