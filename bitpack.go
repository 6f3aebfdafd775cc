package bitpack

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
)

// MaxPackBits is the largest number of bits a single Pack call accepts.
const MaxPackBits = 32

// Buffer is a fixed-capacity, append-only bit buffer. Values are packed
// MSB-first starting at the write cursor, which only moves forward until
// Clear is called.
//
// A Buffer is not safe for concurrent use.
type Buffer struct {
	bw  *bitWriter
	log zerolog.Logger
}

// Option configures a Buffer.
type Option func(*Buffer)

// WithLogger sets the logger that receives debug events. Errors are always
// returned, never logged.
func WithLogger(logger zerolog.Logger) Option {
	return func(b *Buffer) {
		b.log = logger
	}
}

// New returns a zeroed Buffer able to hold capacity bits. capacity is
// anything DataLength accepts.
func New(capacity interface{}, opts ...Option) (*Buffer, error) {
	bits, err := lengthArg(capacity, "bufferSize")
	if err != nil {
		return nil, err
	}
	if bits < 0 {
		return nil, &IllegalArgumentError{
			ArgumentDescription:  "Argument bufferSize",
			PredicateDescription: "non-negative",
			ProvidedValue:        Bits(bits),
		}
	}

	b := &Buffer{
		bw:  newBitWriter((bits + 7) / 8),
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Value is something Pack can write: a Numeric or a BitString.
type Value interface {
	resolve() (value uint32, nbits int, err error)
}

// Numeric is a value with an explicit length. Length is anything DataLength
// accepts and is required. Bits of Value above Length are ignored.
type Numeric struct {
	Value  uint32
	Length interface{}
}

func (n Numeric) resolve() (uint32, int, error) {
	nbits, err := lengthArg(n.Length, "dataLength")
	if err != nil {
		return 0, 0, err
	}
	return n.Value, nbits, nil
}

// BitString is a binary literal such as "1010 0001". Whitespace is ignored
// and the length is the number of remaining digits.
type BitString string

func (s BitString) resolve() (uint32, int, error) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, string(s))

	if strings.Trim(digits, "01") != "" {
		return 0, 0, &IllegalArgumentError{
			ArgumentDescription:  "First argument to Pack",
			PredicateDescription: "a string containing only the bits 0 and 1",
			ProvidedValue:        string(s),
		}
	}
	// Empty strings are a no-op and overlong ones are rejected by Pack.
	if len(digits) == 0 || len(digits) > MaxPackBits {
		return 0, len(digits), nil
	}

	u, err := strconv.ParseUint(digits, 2, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("parse bit string %q: %w", digits, err)
	}
	return uint32(u), len(digits), nil
}

// Pack appends v at the cursor. A zero-length value is a no-op. A rejected
// call leaves the buffer unchanged.
func (b *Buffer) Pack(v Value) error {
	if v == nil {
		return &IllegalArgumentError{
			ArgumentDescription:  "First argument to Pack",
			PredicateDescription: "a Numeric or a BitString",
			ProvidedValue:        nil,
		}
	}

	value, nbits, err := v.resolve()
	if err != nil {
		return err
	}

	if nbits > MaxPackBits {
		return &IllegalArgumentError{
			ArgumentDescription:  "Argument dataLength",
			PredicateDescription: "32 bits or less",
			ProvidedValue:        nbits,
		}
	}
	if nbits < 0 {
		return &IllegalArgumentError{
			ArgumentDescription:  "Argument dataLength",
			PredicateDescription: "non-negative",
			ProvidedValue:        nbits,
		}
	}
	if nbits == 0 {
		return nil
	}

	if b.bw.cursor+nbits > b.bw.capacity() {
		return &BufferTooSmallError{
			BufferDescription: "internal buffer",
			AvailableBits:     b.AvailableFreeBits(),
			OffsetBits:        b.bw.cursor,
			RequiredBits:      nbits,
		}
	}

	b.bw.writeBits(value, nbits)
	b.log.Debug().Int("bits", nbits).Int("cursor", b.bw.cursor).Msg("packed")
	return nil
}

// PackValue packs the low bits of value. length is anything DataLength
// accepts.
func (b *Buffer) PackValue(value uint32, length interface{}) error {
	return b.Pack(Numeric{Value: value, Length: length})
}

// PackString packs a binary literal such as "1010 1".
func (b *Buffer) PackString(bits string) error {
	return b.Pack(BitString(bits))
}

// Copy copies the written bytes to the start of dest.
func (b *Buffer) Copy(dest []byte) error {
	return b.CopyAt(dest, Bits(0))
}

// CopyAt copies the written bytes into dest starting at destOffset, which
// must be a whole number of octets. A nil destOffset means zero. The final
// partial byte is copied in full with its unwritten bits zero. Bytes of dest
// outside the copied range are left untouched.
func (b *Buffer) CopyAt(dest []byte, destOffset interface{}) error {
	if destOffset == nil {
		destOffset = Bits(0)
	}
	offsetBits, err := lengthArg(destOffset, "destOffset")
	if err != nil {
		return err
	}
	if offsetBits%8 != 0 {
		return &IllegalArgumentError{
			ArgumentDescription:  "Argument destOffset",
			PredicateDescription: "an integral number of octets",
			ProvidedValue:        Bits(offsetBits),
		}
	}
	if offsetBits < 0 {
		return &IllegalArgumentError{
			ArgumentDescription:  "Argument destOffset",
			PredicateDescription: "non-negative",
			ProvidedValue:        Bits(offsetBits),
		}
	}

	offset := offsetBits / 8
	n := b.bw.written()
	if offset+n > len(dest) {
		return &BufferTooSmallError{
			BufferDescription: "destination buffer",
			AvailableBits:     len(dest)*8 - offsetBits,
			OffsetBits:        offsetBits,
			RequiredBits:      b.bw.cursor,
		}
	}

	copy(dest[offset:], b.bw.buffer[:n])
	b.log.Debug().Int("bytes", n).Int("offset", offset).Msg("copied")
	return nil
}

// AvailableFreeBits returns how many more bits can be packed.
func (b *Buffer) AvailableFreeBits() int {
	return b.bw.capacity() - b.bw.cursor
}

// Len returns the number of bits packed since creation or the last Clear.
func (b *Buffer) Len() int {
	return b.bw.cursor
}

// Cap returns the capacity in bits, rounded up to whole octets.
func (b *Buffer) Cap() int {
	return b.bw.capacity()
}

// Bytes returns a copy of the written bytes.
func (b *Buffer) Bytes() []byte {
	out := make([]byte, b.bw.written())
	copy(out, b.bw.buffer)
	return out
}

// WriteTo writes the written bytes to w.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.bw.buffer[:b.bw.written()])
	if err != nil {
		return int64(n), fmt.Errorf("failed to write packed bytes: %w", err)
	}
	return int64(n), nil
}

// Clear rewinds the cursor to zero. Bytes behind the old cursor are zeroed
// lazily by later packs.
func (b *Buffer) Clear() {
	b.bw.reset()
	b.log.Debug().Msg("cleared")
}
