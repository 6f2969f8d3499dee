package cpu

// Word is a single 16-bit machine word. AC/DR arithmetic is two's
// complement; registers narrower than 16 bits are held in a Word and
// masked on every store.
type Word uint16

// Bit is a single flip-flop, always 0 or 1.
type Bit Word

const (
	MEM_SIZE  = 4096   // Words of addressable memory.
	WORD_MASK = 0xffff // Full machine word.
	ADDR_MASK = 0x0fff // AR/PC and instruction address field.
	BYTE_MASK = 0x00ff // OUTR/INPR.
	SC_MASK   = 0x000f // Sequence counter, T0..T15.
	SIGN_BIT  = 0x8000 // AC sign for SPA/SNA.
)

// Set the flip-flop to 1.
func (b *Bit) Set() {
	*b = 1
}

// Clear the flip-flop to 0.
func (b *Bit) Clear() {
	*b = 0
}

// Complement the flip-flop.
func (b *Bit) Complement() {
	*b ^= 1
}

// Word of the flip-flop, 0 or 1.
func (b Bit) Word() Word {
	return Word(b)
}
