package emulator

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ezrec/manobc/cpu"
)

// Machine images are hexadecimal text, one 16-bit word per line in
// 4-hex-digit form, optionally preceded by the word's address:
//
//	100  2104   # LDA 104
//	101  7001   # HLT
//
// Comments start with '#', ';', or '/'. A line without an address loads
// at the address following the previous cell (starting at 0).

func parseImageWord(field string) (value cpu.Word, err error) {
	v64, err := strconv.ParseUint(field, 16, 16)
	if err != nil {
		err = ErrImageSyntax
		return
	}

	value = cpu.Word(v64)
	return
}

// ReadImage parses a machine image into loadable cells.
func ReadImage(r io.Reader) (cells []cpu.Cell, err error) {
	next := cpu.Word(0)
	lineno := 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineno++
		line := scanner.Text()

		fail := func(err error) ([]cpu.Cell, error) {
			return nil, &ErrImage{LineNo: lineno, Line: strings.TrimSpace(line), Err: err}
		}

		clean := line
		for _, sep := range []string{"#", ";", "/"} {
			if n := strings.Index(clean, sep); n >= 0 {
				clean = clean[:n]
			}
		}
		clean = strings.ReplaceAll(clean, ":", " ")

		fields := strings.Fields(clean)
		var cell cpu.Cell
		switch len(fields) {
		case 0:
			continue
		case 1:
			var word cpu.Word
			word, err = parseImageWord(fields[0])
			if err != nil {
				return fail(err)
			}
			cell = cpu.Cell{Addr: next, Word: word, LineNo: lineno}
		case 2:
			var addr, word cpu.Word
			addr, err = parseImageWord(fields[0])
			if err != nil {
				return fail(err)
			}
			if addr >= cpu.MEM_SIZE {
				return fail(cpu.ErrAddress(addr))
			}
			word, err = parseImageWord(fields[1])
			if err != nil {
				return fail(err)
			}
			cell = cpu.Cell{Addr: addr, Word: word, LineNo: lineno}
		default:
			return fail(ErrImageSyntax)
		}

		cells = append(cells, cell)
		next = cell.Addr + 1
	}
	err = scanner.Err()
	if err != nil {
		return
	}

	return
}

// WriteImage writes cells as a machine image, carrying assembler source
// lines along as comments.
func WriteImage(w io.Writer, cells []cpu.Cell) (err error) {
	for _, cell := range cells {
		if cell.Source != "" {
			_, err = fmt.Fprintf(w, "%03X  %04X   # %v\n", cell.Addr, cell.Word, cell.Source)
		} else {
			_, err = fmt.Fprintf(w, "%03X  %04X\n", cell.Addr, cell.Word)
		}
		if err != nil {
			return
		}
	}

	return
}
