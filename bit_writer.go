package bitpack

// bitWriter writes bits MSB-first into a fixed byte slice.
//
// Every bit at or past cursor is zero. writeBits keeps that true by zeroing
// each byte the first time the cursor reaches it, so reset can rewind the
// cursor without touching the bytes behind it.
type bitWriter struct {
	buffer []byte
	cursor int // Bit offset of the next write.
}

func newBitWriter(size int) *bitWriter {
	return &bitWriter{buffer: make([]byte, size)}
}

// capacity returns the size of the buffer in bits.
func (b *bitWriter) capacity() int {
	return len(b.buffer) * 8
}

// writeBits writes the nbits right-most bits of u32 in left-to-right order.
// The caller has checked that 0 < nbits <= 32 and that the bits fit.
func (b *bitWriter) writeBits(u32 uint32, nbits int) {
	b.initializeAhead(nbits)

	u32 &= ^uint32(0) >> uint(32-nbits)

	// Get to a byte boundary first.
	if b.cursor%8 != 0 {
		nbits = b.completeOctet(u32, nbits)
	}

	for nbits > 8 {
		b.buffer[b.cursor/8] = byte(u32 >> uint(nbits-8))
		nbits -= 8
		b.cursor += 8
	}

	// Trailing bits go to the top of a byte that is already zero below them.
	if nbits > 0 {
		i := b.cursor / 8
		b.buffer[i] = b.buffer[i]&(0xFF>>uint(nbits)) | byte(u32<<uint(8-nbits))
		b.cursor += nbits
	}
}

// completeOctet fills the rest of the current partial byte with the leading
// bits of the nbits-wide value and returns how many bits are left to write.
func (b *bitWriter) completeOctet(u32 uint32, nbits int) int {
	toFill := 8 - b.cursor%8
	toWrite := toFill
	if nbits < toWrite {
		toWrite = nbits
	}

	var positioned byte
	if shift := nbits - toFill; shift > 0 {
		positioned = byte(u32 >> uint(shift))
	} else {
		positioned = byte(u32 << uint(-shift))
	}

	// (e.g.) cursor%8 == 3, nbits == 2
	// toFill == 5, mask == 00011000
	mask := byte(0xFF>>uint(8-toWrite)) << uint(toFill-toWrite)
	i := b.cursor / 8
	b.buffer[i] = b.buffer[i]&^mask | positioned

	b.cursor += toWrite
	return nbits - toWrite
}

// initializeAhead zeroes the bytes a write of nbits will touch for the first
// time. A byte the cursor is already inside of was zeroed when it was entered.
func (b *bitWriter) initializeAhead(nbits int) {
	start := b.cursor / 8
	if b.cursor%8 != 0 {
		start++
	}
	end := (b.cursor + nbits + 7) / 8
	for i := start; i < end; i++ {
		b.buffer[i] = 0
	}
}

// written returns the number of bytes holding written bits, counting a
// trailing partial byte.
func (b *bitWriter) written() int {
	return (b.cursor + 7) / 8
}

func (b *bitWriter) reset() {
	b.cursor = 0
}
