package moneybag

import (
	"errors"
	"fmt"
	"strings"
)

var errInvalidFormat = errors.New("invalid format")

// Parse converts a string to a value.
// The input string must be in one of the following formats:
//
//	[12 CHF]
//	{[12 CHF][7 USD]}
//	{}
//
// The first format results in an [Amount], the others in a [Bag].
// Bags are normalized, so "{[1 CHF][-1 CHF]}" is parsed as an empty bag.
// See also methods [Amount.String] and [Bag.String].
//
// Parse returns an error if the string is not in one of these formats,
// if a currency code is not valid, or if an amount is not an integer.
func Parse(s string) (Value, error) {
	v, err := parse(s)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", s, err)
	}
	return v, nil
}

// MustParse is like [Parse] but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables holding values.
func MustParse(s string) Value {
	v, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("Parse(%q) failed: %v", s, err))
	}
	return v
}

func parse(s string) (Value, error) {
	if strings.HasPrefix(s, "{") {
		return parseBag(s)
	}
	return parseAmount(s)
}

// parseAmount parses the "[12 CHF]" format.
func parseAmount(s string) (Amount, error) {
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return Amount{}, errInvalidFormat
	}
	amount, curr, ok := strings.Cut(s[1:len(s)-1], " ")
	if !ok {
		return Amount{}, fmt.Errorf("%w: missing currency", errInvalidFormat)
	}
	return ParseAmount(curr, amount)
}

// parseBag parses the "{[12 CHF][7 USD]}" format.
func parseBag(s string) (Bag, error) {
	if len(s) < 2 || s[0] != '{' || s[len(s)-1] != '}' {
		return Bag{}, errInvalidFormat
	}
	s = s[1 : len(s)-1]
	var amounts []Amount
	for s != "" {
		end := strings.IndexByte(s, ']')
		if end < 0 {
			return Bag{}, fmt.Errorf("%w: unterminated amount", errInvalidFormat)
		}
		a, err := parseAmount(s[:end+1])
		if err != nil {
			return Bag{}, err
		}
		amounts = append(amounts, a)
		s = s[end+1:]
	}
	return newBag(amounts)
}
