package moneybag

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Currency type represents a currency code, such as "CHF" or "USD".
// Codes are opaque and case-sensitive: "usd" and "USD" are different currencies.
// No lookup against the [ISO 4217] table is performed.
//
// The zero value is an empty code, which is not a valid currency.
// Use [ParseCurr] to obtain a valid one.
//
// [ISO 4217]: https://en.wikipedia.org/wiki/ISO_4217
type Currency string

var errInvalidCurrency = errors.New("invalid currency")

// ParseCurr converts a string to currency.
//
// ParseCurr returns an error if:
//   - the string is empty;
//   - the string contains whitespace or a non-printable character;
//   - the string contains any of the characters "[]{}", '"' or '\\'.
func ParseCurr(curr string) (Currency, error) {
	if curr == "" {
		return "", fmt.Errorf("%w: empty code", errInvalidCurrency)
	}
	if i := strings.IndexFunc(curr, isReservedRune); i >= 0 {
		return "", fmt.Errorf("%w: unexpected character at position %v in %q", errInvalidCurrency, i, curr)
	}
	return Currency(curr), nil
}

func isReservedRune(r rune) bool {
	switch r {
	case '[', ']', '{', '}', '"', '\\':
		return true
	}
	return unicode.IsSpace(r) || !unicode.IsPrint(r)
}

// MustParseCurr is like [ParseCurr] but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables holding currencies.
func MustParseCurr(curr string) Currency {
	c, err := ParseCurr(curr)
	if err != nil {
		panic(fmt.Sprintf("ParseCurr(%q) failed: %v", curr, err))
	}
	return c
}

// Code returns the currency code.
func (c Currency) Code() string {
	return string(c)
}

// String method implements the [fmt.Stringer] interface and returns
// the currency code.
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (c Currency) String() string {
	return c.Code()
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// See also constructor [ParseCurr].
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (c *Currency) UnmarshalJSON(text []byte) error {
	if string(text) == "null" {
		return nil
	}
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		text = text[1 : len(text)-1]
	}
	var err error
	*c, err = ParseCurr(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Currency(""), err)
	}
	return nil
}

// MarshalJSON implements the [json.Marshaler] interface.
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (c Currency) MarshalJSON() ([]byte, error) {
	text := make([]byte, 0, len(c)+2)
	text = append(text, '"')
	text = append(text, c.Code()...)
	text = append(text, '"')
	return text, nil
}

// UnmarshalText implements [encoding.TextUnmarshaler] interface.
// See also constructor [ParseCurr].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (c *Currency) UnmarshalText(text []byte) error {
	var err error
	*c, err = ParseCurr(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Currency(""), err)
	}
	return nil
}

// MarshalText implements [encoding.TextMarshaler] interface.
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (c Currency) MarshalText() ([]byte, error) {
	return []byte(c.Code()), nil
}
