package bitpack

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Length is an immutable count of bits. It is used both for sizes and for
// offsets. Negative values can be constructed; they are rejected where used.
type Length struct {
	n int
}

// Bits returns a Length of n bits.
func Bits(n int) Length {
	return Length{n: n}
}

// Octets returns a Length of n octets.
func Octets(n int) Length {
	return Length{n: n * 8}
}

// Bits returns the number of bits.
func (l Length) Bits() int {
	return l.n
}

func (l Length) String() string {
	return fmt.Sprintf("%d bits", l.n)
}

var unitMultipliers = map[string]int{
	"bit":    1,
	"bits":   1,
	"octet":  8,
	"octets": 8,
}

const acceptedLengths = "a data-length description or a Length derived from Bits(), Octets(), or DataLength()"

// DataLength converts input into a Length. input is either a Length, a
// *Length, or a string such as "16 bits" or "2 octets".
func DataLength(input interface{}) (Length, error) {
	switch v := input.(type) {
	case Length:
		return v, nil
	case *Length:
		if v == nil {
			return Length{}, &IllegalArgumentError{
				ArgumentDescription:  "Argument input",
				PredicateDescription: "non-null",
				ProvidedValue:        v,
			}
		}
		return *v, nil
	case string:
		return parseLength(v)
	case nil:
		return Length{}, &IllegalArgumentError{
			ArgumentDescription:  "Argument input",
			PredicateDescription: "non-null",
			ProvidedValue:        nil,
		}
	default:
		return Length{}, &IllegalArgumentError{
			ArgumentDescription:  "Argument input",
			PredicateDescription: acceptedLengths,
			ProvidedValue:        v,
		}
	}
}

func parseLength(input string) (Length, error) {
	tokens := strings.Fields(input)
	if len(tokens) != 2 {
		problem := "not enough tokens"
		if len(tokens) > 2 {
			problem = "there were too many tokens"
		}
		return Length{}, &CannotParseError{
			Input:              input,
			SourceDescription:  "input argument",
			ExpectedFormat:     "two tokens: a number and a unit specifier, separated by space",
			ProblemDescription: problem,
			TokenCount:         len(tokens),
		}
	}

	numberToken, unitToken := tokens[0], tokens[1]
	number, err := strconv.ParseFloat(numberToken, 64)
	if err != nil {
		return Length{}, &CannotParseError{
			Input:              input,
			SourceDescription:  "input argument",
			ExpectedFormat:     "a number",
			ProblemDescription: fmt.Sprintf("found %q", numberToken),
		}
	}
	// Infinities and counts beyond int range are not integral counts either.
	if math.Trunc(number) != number || math.IsInf(number, 0) || math.Abs(number) > math.MaxInt32 {
		return Length{}, &CannotParseError{
			Input:              input,
			SourceDescription:  "input argument",
			ExpectedFormat:     "an integral number",
			ProblemDescription: fmt.Sprintf("got %v", number),
		}
	}

	multiplier, ok := unitMultipliers[unitToken]
	if !ok {
		return Length{}, &CannotParseError{
			Input:              input,
			SourceDescription:  "input argument",
			ExpectedFormat:     `either "bits" or "octets"`,
			ProblemDescription: fmt.Sprintf("found %q", unitToken),
		}
	}

	return Length{n: int(number) * multiplier}, nil
}

// lengthArg parses input and labels any failure with the argument name.
func lengthArg(input interface{}, name string) (int, error) {
	l, err := DataLength(input)
	if err != nil {
		return 0, withArgument(err, name)
	}
	return l.n, nil
}
