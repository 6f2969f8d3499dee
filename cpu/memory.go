package cpu

// Memory is the 4096-word memory bank. Read and Write are the only
// mutating operations the control unit uses and both notify the attached
// Listener; Poke/Peek are the image loader and observer paths and are
// never counted.
type Memory struct {
	Listener Listener // Subscriber for access events; may be nil.

	cells [MEM_SIZE]Word
}

// Reset clears every word.
func (m *Memory) Reset() {
	clear(m.cells[:])
}

// Read returns the word at addr, notifying the listener.
func (m *Memory) Read(addr Word) (value Word, err error) {
	if addr >= MEM_SIZE {
		err = ErrAddress(addr)
		return
	}

	value = m.cells[addr]
	if m.Listener != nil {
		m.Listener.MemoryRead(addr)
	}
	return
}

// Write stores value at addr, notifying the listener.
func (m *Memory) Write(addr Word, value Word) (err error) {
	if addr >= MEM_SIZE {
		return ErrAddress(addr)
	}

	m.cells[addr] = value & WORD_MASK
	if m.Listener != nil {
		m.Listener.MemoryWrite(addr)
	}
	return
}

// Peek returns the word at addr without an access event.
func (m *Memory) Peek(addr Word) (value Word, err error) {
	if addr >= MEM_SIZE {
		err = ErrAddress(addr)
		return
	}

	value = m.cells[addr]
	return
}

// Poke stores value at addr without an access event.
func (m *Memory) Poke(addr Word, value Word) (err error) {
	if addr >= MEM_SIZE {
		return ErrAddress(addr)
	}

	m.cells[addr] = value & WORD_MASK
	return
}

// Slice returns count consecutive words starting at addr.
func (m *Memory) Slice(addr Word, count int) (values []Word, err error) {
	if count < 0 || int(addr)+count > MEM_SIZE {
		err = ErrAddress(Word(int(addr) + count - 1))
		return
	}

	values = make([]Word, count)
	copy(values, m.cells[addr:int(addr)+count])
	return
}
