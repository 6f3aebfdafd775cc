package bitpack

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Bits_Octets(t *testing.T) {
	assert.Equal(t, 16, Bits(16).Bits())
	assert.Equal(t, 16, Octets(2).Bits())
	assert.Equal(t, -24, Octets(-3).Bits())
	assert.Equal(t, "20 bits", Bits(20).String())
}

func Test_DataLength(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  int
	}{
		{name: "bits", input: "16 bits", want: 16},
		{name: "bit", input: "16 bit", want: 16},
		{name: "octets", input: "2 octets", want: 16},
		{name: "octet", input: "2 octet", want: 16},
		{name: "surrounding whitespace", input: "  3 octets\t", want: 24},
		{name: "inner whitespace", input: "5   bits", want: 5},
		{name: "integral float", input: "2.0 octets", want: 16},
		{name: "negative", input: "-1 octet", want: -8},
		{name: "Length", input: Bits(7), want: 7},
		{name: "pointer to Length", input: &Length{n: 9}, want: 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DataLength(tt.input)
			require.Nil(t, err)
			assert.Equal(t, tt.want, got.Bits())
		})
	}
}

func Test_DataLength_cannotParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		problem  string
		tokens   int
	}{
		{
			name:     "too many tokens",
			input:    "x y z",
			expected: "two tokens: a number and a unit specifier, separated by space",
			problem:  "there were too many tokens",
			tokens:   3,
		},
		{
			name:     "one token",
			input:    "x",
			expected: "two tokens: a number and a unit specifier, separated by space",
			problem:  "not enough tokens",
			tokens:   1,
		},
		{
			name:     "empty",
			input:    "",
			expected: "two tokens: a number and a unit specifier, separated by space",
			problem:  "not enough tokens",
			tokens:   0,
		},
		{
			name:     "blank",
			input:    "   ",
			expected: "two tokens: a number and a unit specifier, separated by space",
			problem:  "not enough tokens",
			tokens:   0,
		},
		{name: "fractional", input: "1.2 octets", expected: "an integral number", problem: "got 1.2"},
		{name: "infinite", input: "Inf bits", expected: "an integral number", problem: "got +Inf"},
		{name: "not a number", input: "xyz octets", expected: "a number", problem: `found "xyz"`},
		{name: "unknown unit", input: "5 bytes", expected: `either "bits" or "octets"`, problem: `found "bytes"`},
		{name: "unit is case sensitive", input: "5 Bits", expected: `either "bits" or "octets"`, problem: `found "Bits"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DataLength(tt.input)
			require.True(t, errors.Is(err, ErrCannotParse), "got %v", err)

			var cp *CannotParseError
			require.True(t, errors.As(err, &cp))
			assert.Equal(t, tt.input, cp.Input)
			assert.Equal(t, "input argument", cp.SourceDescription)
			assert.Equal(t, tt.expected, cp.ExpectedFormat)
			assert.Equal(t, tt.problem, cp.ProblemDescription)
			assert.Equal(t, tt.tokens, cp.TokenCount)
		})
	}
}

func Test_DataLength_illegalArgument(t *testing.T) {
	var nilLength *Length
	tests := []struct {
		name      string
		input     interface{}
		predicate string
	}{
		{name: "nil", input: nil, predicate: "non-null"},
		{name: "nil pointer", input: nilLength, predicate: "non-null"},
		{name: "int", input: 16, predicate: acceptedLengths},
		{name: "struct", input: struct{}{}, predicate: acceptedLengths},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DataLength(tt.input)
			var ia *IllegalArgumentError
			require.True(t, errors.As(err, &ia), "got %v", err)
			assert.Equal(t, "Argument input", ia.ArgumentDescription)
			assert.Equal(t, tt.predicate, ia.PredicateDescription)
			assert.True(t, errors.Is(err, ErrIllegalArgument))
			assert.False(t, errors.Is(err, ErrCannotParse))
		})
	}
}

func Test_withArgument(t *testing.T) {
	base := &CannotParseError{Input: "x", SourceDescription: "input argument", ExpectedFormat: "a number"}
	relabeled := withArgument(base, "destOffset")

	var cp *CannotParseError
	require.True(t, errors.As(relabeled, &cp))
	assert.Equal(t, "destOffset argument", cp.SourceDescription)
	assert.Equal(t, "input argument", base.SourceDescription)

	ia := &IllegalArgumentError{ArgumentDescription: "Argument input", PredicateDescription: "non-null"}
	var got *IllegalArgumentError
	require.True(t, errors.As(withArgument(ia, "dataLength"), &got))
	assert.Equal(t, "Argument dataLength", got.ArgumentDescription)
	assert.Equal(t, "Argument input", ia.ArgumentDescription)

	other := errors.New("boom")
	assert.Equal(t, other, withArgument(other, "bufferSize"))
}

func Test_errors_Error(t *testing.T) {
	assert.Equal(t,
		"insufficient space in internal buffer: available bits: 4 (from offset 28), required bits: 8",
		(&BufferTooSmallError{BufferDescription: "internal buffer", AvailableBits: 4, OffsetBits: 28, RequiredBits: 8}).Error())
	assert.Equal(t,
		`couldn't parse "5 bytes" from input argument, expected either "bits" or "octets", but found "bytes"`,
		(&CannotParseError{Input: "5 bytes", SourceDescription: "input argument", ExpectedFormat: `either "bits" or "octets"`, ProblemDescription: `found "bytes"`}).Error())
	assert.Equal(t,
		"Argument destOffset must be non-negative, but was: -24 bits",
		(&IllegalArgumentError{ArgumentDescription: "Argument destOffset", PredicateDescription: "non-negative", ProvidedValue: Octets(-3)}).Error())
}
