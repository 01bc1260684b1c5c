package moneybag

import (
	"cmp"
	"fmt"
	"hash/fnv"
	"slices"

	"github.com/govalues/decimal"
)

// Bag type represents a sum of money held in several currencies.
// Amounts in different currencies are kept apart and are never converted
// into each other.
//
// A bag is always normalized: it holds at most one entry per currency and
// never an entry with a zero amount.
// A bag with a single entry is equal to the [Amount] of that entry, and
// every bag without entries is equal to every other zero [Value].
//
// The zero value of Bag is an empty bag, which represents zero.
// Bag is designed to be safe for concurrent use by multiple goroutines.
type Bag struct {
	entries []Amount // sorted by currency code, non-zero, one per currency
}

// newBagUnsafe creates a bag without normalizing the entries.
// Use it only if you are absolutely sure that the entries are sorted by currency,
// unique and non-zero.
func newBagUnsafe(entries []Amount) Bag {
	if len(entries) == 0 {
		return Bag{}
	}
	return Bag{entries: entries}
}

// NewBag returns a bag holding the sum of the given amounts.
// Amounts in the same currency are added together and currencies whose
// total is zero are omitted.
// NewBag without arguments returns an empty bag.
// The result does not depend on the order of the amounts.
//
// NewBag returns an error if the total of any currency has more than
// [decimal.MaxPrec] digits.
func NewBag(amounts ...Amount) (Bag, error) {
	b, err := newBag(amounts)
	if err != nil {
		return Bag{}, fmt.Errorf("constructing bag: %w", err)
	}
	return b, nil
}

func newBag(amounts []Amount) (Bag, error) {
	entries := make([]Amount, 0, len(amounts))
	for _, a := range amounts {
		if !a.IsZero() {
			entries = append(entries, a)
		}
	}
	slices.SortFunc(entries, compareCurr)

	// Same currency totals
	res := make([]Amount, 0, len(entries))
	for i := 0; i < len(entries); {
		j := i + 1
		for j < len(entries) && entries[j].SameCurr(entries[i]) {
			j++
		}
		a, err := total(entries[i:j])
		if err != nil {
			return Bag{}, err
		}
		if !a.IsZero() {
			res = append(res, a)
		}
		i = j
	}

	return newBagUnsafe(res), nil
}

// total returns the sum of non-zero amounts in the same currency.
// Positive and negative amounts are taken in turns to keep the running sum
// within range, so an intermediate sum overflows only if the total does.
func total(amounts []Amount) (Amount, error) {
	var pos, neg []decimal.Decimal
	for _, a := range amounts {
		if a.IsPos() {
			pos = append(pos, a.Decimal())
		} else {
			neg = append(neg, a.Decimal())
		}
	}
	var sum, d decimal.Decimal
	for len(pos) > 0 || len(neg) > 0 {
		if len(neg) == 0 || (len(pos) > 0 && !sum.IsPos()) {
			d, pos = pos[0], pos[1:]
		} else {
			d, neg = neg[0], neg[1:]
		}
		var err error
		sum, err = sum.AddExact(d, 0)
		if err != nil {
			return Amount{}, errAmountOverflow
		}
	}
	return newAmountUnsafe(amounts[0].Curr(), sum), nil
}

// MustNewBag is like [NewBag] but panics if the bag cannot be constructed.
// It simplifies safe initialization of global variables holding bags.
func MustNewBag(amounts ...Amount) Bag {
	b, err := NewBag(amounts...)
	if err != nil {
		panic(fmt.Sprintf("NewBag(%v) failed: %v", amounts, err))
	}
	return b
}

// BagOf returns value v as a bag.
// The result is equal to v.
// BagOf(nil) and BagOf of a nil pointer return an empty bag.
func BagOf(v Value) Bag {
	return bagOf(v)
}

func bagOf(v Value) Bag {
	b, _ := canonicalOf(v)
	return b
}

func compareCurr(a, b Amount) int {
	return cmp.Compare(a.Curr(), b.Curr())
}

// Len returns the number of currencies in the bag.
func (b Bag) Len() int {
	return len(b.entries)
}

// Currencies returns the currencies of the bag sorted by code.
func (b Bag) Currencies() []Currency {
	res := make([]Currency, len(b.entries))
	for i, a := range b.entries {
		res[i] = a.Curr()
	}
	return res
}

// AmountOf returns the amount held in the given currency.
// If the bag holds nothing in that currency, the result is a zero amount.
func (b Bag) AmountOf(curr Currency) Amount {
	i, ok := slices.BinarySearchFunc(b.entries, curr, func(a Amount, c Currency) int {
		return cmp.Compare(a.Curr(), c)
	})
	if !ok {
		return newAmountUnsafe(curr, decimal.Decimal{})
	}
	return b.entries[i]
}

// Entries returns the amounts held in the bag, one per currency,
// sorted by currency code.
// The returned slice is a copy and can be modified freely.
func (b Bag) Entries() []Amount {
	return slices.Clone(b.entries)
}

// IsZero returns true if the bag holds no entries.
func (b Bag) IsZero() bool {
	return len(b.entries) == 0
}

// Add returns the sum of bag b and value v.
// The result is normalized and then collapsed:
//   - if no currency is left, the result is an empty [Bag];
//   - if one currency is left, the result is an [Amount];
//   - otherwise the result is a [Bag].
//
// Add returns an error if the result has more than [decimal.MaxPrec] digits
// in any currency.
func (b Bag) Add(v Value) (Value, error) {
	c, err := b.merge(bagOf(v))
	if err != nil {
		return nil, fmt.Errorf("computing [%v + %v]: %w", b, v, err)
	}
	return c.collapse(), nil
}

// Sub returns the difference between bag b and value v.
// It is equivalent to b.Add(v.Neg()), and the result is collapsed
// as described in [Bag.Add].
//
// Sub returns an error if the result has more than [decimal.MaxPrec] digits
// in any currency.
func (b Bag) Sub(v Value) (Value, error) {
	c, err := b.merge(bagOf(v).neg())
	if err != nil {
		return nil, fmt.Errorf("computing [%v - %v]: %w", b, v, err)
	}
	return c.collapse(), nil
}

// merge returns the normalized sum of bags b and c.
func (b Bag) merge(c Bag) (Bag, error) {
	x, y := b.entries, c.entries
	res := make([]Amount, 0, len(x)+len(y))
	for len(x) > 0 && len(y) > 0 {
		switch order := compareCurr(x[0], y[0]); {
		case order < 0:
			res = append(res, x[0])
			x = x[1:]
		case order > 0:
			res = append(res, y[0])
			y = y[1:]
		default:
			d, err := x[0].Decimal().AddExact(y[0].Decimal(), 0)
			if err != nil {
				return Bag{}, errAmountOverflow
			}
			if !d.IsZero() {
				res = append(res, newAmountUnsafe(x[0].Curr(), d))
			}
			x, y = x[1:], y[1:]
		}
	}
	res = append(res, x...)
	res = append(res, y...)
	return newBagUnsafe(res), nil
}

// Mul returns bag b with every amount multiplied by factor.
// The result is collapsed as described in [Bag.Add];
// multiplying by 0 always returns an empty bag.
//
// Mul returns an error if the result has more than [decimal.MaxPrec] digits
// in any currency.
func (b Bag) Mul(factor int64) (Value, error) {
	c, err := b.mul(factor)
	if err != nil {
		return nil, fmt.Errorf("computing [%v * %v]: %w", b, factor, err)
	}
	return c.collapse(), nil
}

func (b Bag) mul(factor int64) (Bag, error) {
	if factor == 0 {
		return Bag{}, nil
	}
	res := make([]Amount, len(b.entries))
	for i, a := range b.entries {
		var err error
		res[i], err = a.mul(factor)
		if err != nil {
			return Bag{}, err
		}
	}
	return newBagUnsafe(res), nil
}

// Neg returns bag b with every amount negated.
// The set of currencies is preserved and the result is collapsed as
// described in [Bag.Add].
func (b Bag) Neg() Value {
	return b.neg().collapse()
}

func (b Bag) neg() Bag {
	res := make([]Amount, len(b.entries))
	for i, a := range b.entries {
		res[i] = a.neg()
	}
	return newBagUnsafe(res)
}

// collapse returns the simplest value equal to the bag.
func (b Bag) collapse() Value {
	switch len(b.entries) {
	case 0:
		return Bag{}
	case 1:
		return b.entries[0]
	default:
		return b
	}
}

// Equal returns true if bag b and value v represent the same money.
// See function [Equal] for details.
func (b Bag) Equal(v Value) bool {
	return Equal(b, v)
}

// equal compares canonical entry lists.
func (b Bag) equal(c Bag) bool {
	return slices.EqualFunc(b.entries, c.entries, func(x, y Amount) bool {
		return x.SameCurr(y) && x.Decimal().Cmp(y.Decimal()) == 0
	})
}

// Hash returns a hash of the bag consistent with [Equal].
// The hash does not depend on the order in which the bag was built,
// and a bag with a single entry hashes the same as the equal [Amount].
// An empty bag hashes to 0.
func (b Bag) Hash() uint64 {
	var h uint64
	for _, a := range b.entries {
		h += hashEntry(a)
	}
	return h
}

// hashEntry returns the FNV-1a hash of a single (currency, amount) pair.
func hashEntry(a Amount) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(a.Curr().Code()))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(a.Decimal().String()))
	return h.Sum64()
}

func (b Bag) canonical() Bag {
	return b
}

// String implements the [fmt.Stringer] interface and returns a string
// representation of a bag, such as "{[12 CHF][7 USD]}".
// Entries are sorted by currency code and an empty bag is represented as "{}".
// See also function [Parse].
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (b Bag) String() string {
	return string(b.appendText(make([]byte, 0, 2+16*len(b.entries))))
}

func (b Bag) appendText(buf []byte) []byte {
	buf = append(buf, '{')
	for _, a := range b.entries {
		buf = a.appendText(buf)
	}
	buf = append(buf, '}')
	return buf
}

// MarshalText implements the [encoding.TextMarshaler] interface.
// See also method [Bag.String].
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (b Bag) MarshalText() ([]byte, error) {
	return b.appendText(nil), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
// The text may be in the form produced by [Bag.String] or by [Amount.String].
// See also function [Parse].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (b *Bag) UnmarshalText(text []byte) error {
	v, err := parse(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Bag{}, err)
	}
	*b = bagOf(v)
	return nil
}
