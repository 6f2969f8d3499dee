package emulator

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/manobc/cpu"
)

func TestReadImage(t *testing.T) {
	assert := assert.New(t)

	image := `
# add program
100  2104   # LDA 104
101  1105   ; ADD 105
102: 3106
7001
104  000C
`
	cells, err := ReadImage(strings.NewReader(image))
	assert.NoError(err)
	assert.Len(cells, 5)

	assert.Equal(cpu.Cell{Addr: 0x100, Word: 0x2104, LineNo: 3}, cells[0])
	assert.Equal(cpu.Word(0x101), cells[1].Addr)
	assert.Equal(cpu.Word(0x102), cells[2].Addr)

	// A bare word loads after the previous cell.
	assert.Equal(cpu.Word(0x103), cells[3].Addr)
	assert.Equal(cpu.Word(0x7001), cells[3].Word)

	assert.Equal(cpu.Word(0x104), cells[4].Addr)
	assert.Equal(cpu.Word(0x000C), cells[4].Word)
}

func TestReadImageErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		image  string
		lineno int
	}){
		{"bad_word", "100  XYZ\n", 1},
		{"bad_addr", "XYZ  2104\n", 1},
		{"addr_range", "1000  2104\n", 1},
		{"extra_field", "100 2104 9999\n", 1},
		{"later_line", "100 2104\nnope\n", 2},
	}

	for _, entry := range table {
		_, err := ReadImage(strings.NewReader(entry.image))
		assert.Error(err, entry.name)

		var ierr *ErrImage
		if assert.True(errors.As(err, &ierr), entry.name) {
			assert.Equal(entry.lineno, ierr.LineNo, entry.name)
		}
	}

	_, err := ReadImage(strings.NewReader("1000  2104\n"))
	assert.ErrorIs(err, cpu.ErrAddress(0))
}

func TestImageRoundTrip(t *testing.T) {
	assert := assert.New(t)

	cells := []cpu.Cell{
		{Addr: 0x100, Word: 0x2104, Source: "LDA AL"},
		{Addr: 0x101, Word: 0x7001, Source: "HLT"},
		{Addr: 0x104, Word: 0x000C},
	}

	var out strings.Builder
	err := WriteImage(&out, cells)
	assert.NoError(err)
	assert.Contains(out.String(), "100  2104   # LDA AL")
	assert.Contains(out.String(), "104  000C")

	read, err := ReadImage(strings.NewReader(out.String()))
	assert.NoError(err)
	if assert.Len(read, len(cells)) {
		for n, cell := range cells {
			assert.Equal(cell.Addr, read[n].Addr)
			assert.Equal(cell.Word, read[n].Word)
		}
	}
}

func TestLoadImage(t *testing.T) {
	assert := assert.New(t)

	program := "100  2104\n101  7001\n"
	data := "104  0034\n"

	emu := NewEmulator()
	err := emu.LoadImage(strings.NewReader(program), strings.NewReader(data))
	assert.NoError(err)

	// PC starts at the lowest program address.
	pc, _ := emu.ReadRegister("PC")
	assert.Equal(cpu.Word(0x100), pc)

	count, err := emu.Run(0)
	assert.NoError(err)
	assert.Equal(2, count)

	ac, _ := emu.ReadRegister("AC")
	assert.Equal(cpu.Word(0x34), ac)
}

func TestLoadImageNoData(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	err := emu.LoadImage(strings.NewReader("010  7001\n"), nil)
	assert.NoError(err)

	pc, _ := emu.ReadRegister("PC")
	assert.Equal(cpu.Word(0x010), pc)
}

func TestLoadImageEmpty(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	err := emu.LoadImage(strings.NewReader("# nothing\n"), nil)
	assert.ErrorIs(err, ErrImageEmpty)
}
