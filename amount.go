package moneybag

import (
	"errors"
	"fmt"

	"github.com/govalues/decimal"
)

var (
	errAmountOverflow = errors.New("amount overflow")
	errNotInteger     = errors.New("amount is not an integer")
)

// Amount type represents an integer amount of money in a single currency.
// Amounts are immutable and designed to be safe for concurrent use by
// multiple goroutines.
//
// The zero value of Amount is zero in no particular currency.
// Like any other zero value, it is equal to every zero [Value] and
// adds nothing to a [Bag].
type Amount struct {
	curr  Currency        // currency code
	value decimal.Decimal // integer amount, always at scale 0
}

// newAmountUnsafe creates a new amount without checking the value.
// Use it only if you are absolutely sure that d is an integer with scale 0.
func newAmountUnsafe(c Currency, d decimal.Decimal) Amount {
	return Amount{curr: c, value: d}
}

// newAmountSafe creates a new amount and rescales d to scale 0.
func newAmountSafe(c Currency, d decimal.Decimal) (Amount, error) {
	if !d.IsInt() {
		return Amount{}, errNotInteger
	}
	return newAmountUnsafe(c, d.Trunc(0)), nil
}

// NewAmount returns an amount of the given currency.
//
// NewAmount returns an error if the currency code is not valid.
// See [ParseCurr] for the rules.
func NewAmount(curr string, amount int64) (Amount, error) {
	// Currency
	c, err := ParseCurr(curr)
	if err != nil {
		return Amount{}, fmt.Errorf("parsing currency: %w", err)
	}
	// Decimal
	d, err := decimal.New(amount, 0)
	if err != nil {
		return Amount{}, fmt.Errorf("converting amount: %w", err)
	}
	return newAmountUnsafe(c, d), nil
}

// MustNewAmount is like [NewAmount] but panics if the amount cannot be constructed.
// It simplifies safe initialization of global variables holding amounts.
func MustNewAmount(curr string, amount int64) Amount {
	a, err := NewAmount(curr, amount)
	if err != nil {
		panic(fmt.Sprintf("NewAmount(%q, %v) failed: %v", curr, amount, err))
	}
	return a
}

// NewAmountFromDecimal returns an amount with the specified currency and value.
// Trailing zeros after the decimal point are removed, so "12.00" becomes "12".
// See also method [Amount.Decimal].
//
// NewAmountFromDecimal returns an error if:
//   - the currency code is not valid;
//   - the value has a non-zero fractional part.
func NewAmountFromDecimal(curr Currency, amount decimal.Decimal) (Amount, error) {
	c, err := ParseCurr(curr.Code())
	if err != nil {
		return Amount{}, fmt.Errorf("parsing currency: %w", err)
	}
	a, err := newAmountSafe(c, amount)
	if err != nil {
		return Amount{}, fmt.Errorf("converting %v: %w", amount, err)
	}
	return a, nil
}

// ParseAmount converts currency and decimal strings to an amount.
// See also constructors [ParseCurr] and [decimal.Parse].
//
// ParseAmount returns an error if:
//   - the currency code is not valid;
//   - the amount is not a valid decimal;
//   - the amount has a non-zero fractional part.
func ParseAmount(curr, amount string) (Amount, error) {
	// Currency
	c, err := ParseCurr(curr)
	if err != nil {
		return Amount{}, fmt.Errorf("parsing currency: %w", err)
	}
	// Decimal
	d, err := decimal.Parse(amount)
	if err != nil {
		return Amount{}, fmt.Errorf("parsing amount: %w", err)
	}
	// Amount
	a, err := newAmountSafe(c, d)
	if err != nil {
		return Amount{}, fmt.Errorf("parsing amount: %w", err)
	}
	return a, nil
}

// MustParseAmount is like [ParseAmount] but panics if any of the strings cannot be parsed.
// This function simplifies safe initialization of global variables holding amounts.
func MustParseAmount(curr, amount string) Amount {
	a, err := ParseAmount(curr, amount)
	if err != nil {
		panic(fmt.Sprintf("ParseAmount(%q, %q) failed: %v", curr, amount, err))
	}
	return a
}

// Curr returns the currency of the amount.
func (a Amount) Curr() Currency {
	return a.curr
}

// Decimal returns the decimal representation of the amount.
// The scale of the result is always 0.
func (a Amount) Decimal() decimal.Decimal {
	return a.value
}

// Int64 returns the amount as an int64.
// If the amount cannot be represented as an int64, then false is returned.
func (a Amount) Int64() (amount int64, ok bool) {
	whole, _, ok := a.Decimal().Int64(0)
	return whole, ok
}

// Sign returns:
//
//	-1 if a < 0
//	 0 if a = 0
//	+1 if a > 0
func (a Amount) Sign() int {
	return a.Decimal().Sign()
}

// IsNeg returns:
//
//	true  if a < 0
//	false otherwise
func (a Amount) IsNeg() bool {
	return a.Decimal().IsNeg()
}

// IsPos returns:
//
//	true  if a > 0
//	false otherwise
func (a Amount) IsPos() bool {
	return a.Decimal().IsPos()
}

// IsZero returns:
//
//	true  if a = 0
//	false otherwise
//
// A zero amount is equal to every other zero [Value], whatever its currency.
func (a Amount) IsZero() bool {
	return a.Decimal().IsZero()
}

// SameCurr returns true if amounts are denominated in the same currency.
func (a Amount) SameCurr(b Amount) bool {
	return a.Curr() == b.Curr()
}

// Add returns the sum of amount a and value v.
// If v is an amount in the same currency, the result is an [Amount];
// otherwise the result is the normalized sum as computed by [Bag.Add].
//
// Add returns an error if the result has more than [decimal.MaxPrec] digits
// in any currency.
func (a Amount) Add(v Value) (Value, error) {
	r, err := a.add(v)
	if err != nil {
		return nil, fmt.Errorf("computing [%v + %v]: %w", a, v, err)
	}
	return r, nil
}

func (a Amount) add(v Value) (Value, error) {
	if b, ok := v.(Amount); ok && a.SameCurr(b) {
		d, err := a.Decimal().AddExact(b.Decimal(), 0)
		if err != nil {
			return nil, errAmountOverflow
		}
		return newAmountUnsafe(a.Curr(), d), nil
	}
	b, err := a.canonical().merge(bagOf(v))
	if err != nil {
		return nil, err
	}
	return b.collapse(), nil
}

// Sub returns the difference between amount a and value v.
// It is equivalent to a.Add(v.Neg()).
//
// Sub returns an error if the result has more than [decimal.MaxPrec] digits
// in any currency.
func (a Amount) Sub(v Value) (Value, error) {
	r, err := a.add(neg(v))
	if err != nil {
		return nil, fmt.Errorf("computing [%v - %v]: %w", a, v, err)
	}
	return r, nil
}

// Mul returns an amount in the same currency multiplied by factor.
// The result of multiplying by 0 is a zero amount in the same currency.
//
// Mul returns an error if the result has more than [decimal.MaxPrec] digits.
func (a Amount) Mul(factor int64) (Value, error) {
	r, err := a.mul(factor)
	if err != nil {
		return nil, fmt.Errorf("computing [%v * %v]: %w", a, factor, err)
	}
	return r, nil
}

func (a Amount) mul(factor int64) (Amount, error) {
	e, err := decimal.New(factor, 0)
	if err != nil {
		return Amount{}, err
	}
	d, err := a.Decimal().MulExact(e, 0)
	if err != nil {
		return Amount{}, errAmountOverflow
	}
	return newAmountUnsafe(a.Curr(), d), nil
}

// Neg returns an amount in the same currency with the opposite sign.
func (a Amount) Neg() Value {
	return a.neg()
}

func (a Amount) neg() Amount {
	return newAmountUnsafe(a.Curr(), a.Decimal().Neg())
}

// Equal returns true if amount a and value v represent the same money.
// See function [Equal] for details.
func (a Amount) Equal(v Value) bool {
	return Equal(a, v)
}

// Hash returns a hash of the amount consistent with [Equal]:
// an amount hashes the same as any bag it is equal to.
func (a Amount) Hash() uint64 {
	return a.canonical().Hash()
}

// Entries returns the amount as a canonical entry list.
// The list is empty if the amount is zero.
func (a Amount) Entries() []Amount {
	return a.canonical().Entries()
}

func (a Amount) canonical() Bag {
	if a.IsZero() {
		return Bag{}
	}
	return newBagUnsafe([]Amount{a})
}

// String implements the [fmt.Stringer] interface and returns a string
// representation of an amount, such as "[12 CHF]".
// See also function [Parse].
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (a Amount) String() string {
	return string(a.appendText(make([]byte, 0, 32)))
}

func (a Amount) appendText(buf []byte) []byte {
	buf = append(buf, '[')
	buf = append(buf, a.Decimal().String()...)
	buf = append(buf, ' ')
	buf = append(buf, a.Curr().Code()...)
	buf = append(buf, ']')
	return buf
}

// MarshalText implements the [encoding.TextMarshaler] interface.
// See also method [Amount.String].
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (a Amount) MarshalText() ([]byte, error) {
	return a.appendText(nil), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
// The text must be in the form produced by [Amount.String].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (a *Amount) UnmarshalText(text []byte) error {
	var err error
	*a, err = parseAmount(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Amount{}, err)
	}
	return nil
}
