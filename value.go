package moneybag

import "fmt"

// Value is the common interface of [Amount] and [Bag].
// Every arithmetic method accepts either of them as an operand and returns
// the simplest value equal to the result: an [Amount] when one currency is
// involved, a [Bag] otherwise.
// Operands are never modified.
//
// Value is sealed: it is implemented by Amount and Bag, and through their
// method sets by *Amount and *Bag.
// A nil pointer is treated like a nil Value.
type Value interface {
	// Add returns the sum of the receiver and v.
	Add(v Value) (Value, error)
	// Sub returns the receiver minus v, that is the receiver plus v.Neg().
	Sub(v Value) (Value, error)
	// Mul returns the receiver with every amount multiplied by factor.
	Mul(factor int64) (Value, error)
	// Neg returns the receiver with every amount negated.
	Neg() Value
	// IsZero reports whether the value holds no money at all.
	IsZero() bool
	// Equal reports whether the receiver and v represent the same money.
	Equal(v Value) bool
	// Hash returns a hash consistent with Equal.
	Hash() uint64
	// Entries returns the non-zero amounts of the value sorted by currency code.
	Entries() []Amount
	// String returns "[12 CHF]" for an amount and "{[12 CHF][7 USD]}" for a bag.
	String() string

	canonical() Bag
}

var (
	_ Value = Amount{}
	_ Value = Bag{}
)

// Equal returns true if values a and b represent the same money,
// that is if they hold the same amount in every currency.
// An [Amount] and a [Bag] with a single entry can be equal, and all zero values
// are equal whatever their type or currency.
//
// Equal never fails: it returns false if either value is nil or a nil pointer.
func Equal(a, b Value) bool {
	x, ok := canonicalOf(a)
	if !ok {
		return false
	}
	y, ok := canonicalOf(b)
	if !ok {
		return false
	}
	return x.equal(y)
}

// canonicalOf returns the canonical form of v.
// It returns false if v is nil or a nil pointer.
func canonicalOf(v Value) (Bag, bool) {
	switch v := v.(type) {
	case Amount:
		return v.canonical(), true
	case Bag:
		return v, true
	case *Amount:
		if v != nil {
			return v.canonical(), true
		}
	case *Bag:
		if v != nil {
			return *v, true
		}
	}
	return Bag{}, false
}

// Sum returns the sum of all values.
// Sum without arguments returns an empty [Bag].
// Nil values and nil pointers are treated as zero.
// The result does not depend on the order of the values.
//
// Sum returns an error if the total has more than [decimal.MaxPrec] digits
// in any currency.
//
// [decimal.MaxPrec]: https://pkg.go.dev/github.com/govalues/decimal#MaxPrec
func Sum(values ...Value) (Value, error) {
	var amounts []Amount
	for _, v := range values {
		amounts = append(amounts, bagOf(v).entries...)
	}
	b, err := newBag(amounts)
	if err != nil {
		return nil, fmt.Errorf("computing sum of %v values: %w", len(values), err)
	}
	return b.collapse(), nil
}

// neg returns the negation of v, or nil if v is nil or a nil pointer.
func neg(v Value) Value {
	if _, ok := canonicalOf(v); !ok {
		return nil
	}
	return v.Neg()
}
