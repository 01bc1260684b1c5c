/*
Package moneybag implements integer amounts of money that may span several
currencies.
It leverages the [decimal] package for overflow-checked integer arithmetic
and never converts between currencies: amounts in different currencies are
kept apart and are only held together.

# Features

  - Immutable values, ensuring safe usage across multiple goroutines
  - Arithmetic (Add, Sub, Mul, Neg) that consolidates same-currency amounts
  - Interchangeable single-currency and multi-currency values
  - Equality and hashing by value, independent of construction order

# Representation

The package consists of two value types, Amount and Bag, which both implement
the Value interface.
An Amount represents an integer amount in a single currency and consists of a
Currency code and a decimal.Decimal that always has scale 0.
A Bag represents a sum held in several currencies.
It is stored as a list of non-zero amounts sorted by currency code, with at
most one amount per currency.

Every arithmetic operation returns the simplest value equal to its result:
a Bag left with a single currency collapses to an Amount, and a Bag left with
no currencies is an empty Bag.
Values are compared by content, so [12 CHF] is equal to a bag built
from [5 CHF] and [7 CHF], and all zero values are equal to each other.

# Supported Ranges

Amounts are integers with at most [decimal.MaxPrec] digits, that is within
the range ±9,999,999,999,999,999,999.

# Errors

Errors may occur during the parsing of Amount, Bag and Currency values, and
during arithmetic operations when a result does not fit into the supported
range.
Amounts never wrap around silently.
Comparison for equality never fails.
*/
package moneybag
