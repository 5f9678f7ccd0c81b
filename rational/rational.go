/*
Package rational implements the exact-rational arithmetic used everywhere a
quantity appears in vacationdb: accrual rates, work-time fractions,
rollover caps, and taken-day amounts.

PURPOSE:
  Vacation accrual math must be exact, not a floating-point approximation:
  a rate of "10.25 days per year" applied across a multi-year span must
  never drift. This package wraps math/big.Rat with the parser grammar and
  canonical textual form the rest of the system (and its API boundary)
  depends on.

WHY math/big, NOT shopspring/decimal:
  decimal.Decimal (used elsewhere in this codebase's ancestry for money-like
  amounts) stores a fixed/floating base-10 mantissa+exponent. It cannot
  exactly represent "3.1/12.532", whose reduced form 775/3133 is a
  non-terminating decimal. big.Rat stores an exact numerator/denominator
  pair and is the only way to satisfy the no-floating-point-approximation
  requirement for arbitrary fractional input.

GRAMMAR:
  [-]?DIGITS(.DIGITS)?(/[-]?DIGITS(.DIGITS)?)?
  Decimals in either side are normalized by scaling both numerator and
  denominator by 10^k, k = max(decimal places of each side), before
  reduction; for example "3.1/12.532" becomes 3100/12532, reduced to
  775/3133.

SEE ALSO:
  - calendar: the other leaf package the query evaluator depends on.
*/
package rational

import (
	"errors"
	"math/big"
	"regexp"
)

// ErrInvalidNumber is returned when the input text does not match the
// accepted grammar, or describes a zero denominator.
var ErrInvalidNumber = errors.New("invalid number")

// Q is an arbitrary-precision signed rational in lowest terms.
// The zero value is the rational 0, the same value Zero returns.
type Q struct {
	r big.Rat
}

var grammar = regexp.MustCompile(`^(-?)(\d+)(?:\.(\d+))?(?:/(-?)(\d+)(?:\.(\d+))?)?$`)

// Parse accepts integer, fraction (a/b), decimal (d.ddd), and mixed
// (d.dd/d.dd) literals and returns their canonical reduced Q.
// Whitespace is never accepted; any other shape returns ErrInvalidNumber.
func Parse(s string) (Q, error) {
	m := grammar.FindStringSubmatch(s)
	if m == nil {
		return Q{}, ErrInvalidNumber
	}

	numSign, numInt, numFrac := m[1], m[2], m[3]
	denSign, denInt, denFrac := m[4], m[5], m[6]
	if denInt == "" {
		denInt, denFrac = "1", ""
	}

	numDigits, numPlaces := numInt+numFrac, len(numFrac)
	denDigits, denPlaces := denInt+denFrac, len(denFrac)

	k := numPlaces
	if denPlaces > k {
		k = denPlaces
	}

	num := new(big.Int)
	if _, ok := num.SetString(numDigits, 10); !ok {
		return Q{}, ErrInvalidNumber
	}
	num.Mul(num, pow10(k-numPlaces))
	if numSign == "-" {
		num.Neg(num)
	}

	den := new(big.Int)
	if _, ok := den.SetString(denDigits, 10); !ok {
		return Q{}, ErrInvalidNumber
	}
	den.Mul(den, pow10(k-denPlaces))
	if denSign == "-" {
		den.Neg(den)
	}

	if den.Sign() == 0 {
		return Q{}, ErrInvalidNumber
	}

	var q Q
	q.r.SetFrac(num, den)
	return q, nil
}

// MustParse panics on invalid input; for use with literal constants in tests
// and policy defaults, never on externally supplied text.
func MustParse(s string) Q {
	q, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return q
}

func pow10(n int) *big.Int {
	if n <= 0 {
		return big.NewInt(1)
	}
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}

// Zero returns the rational 0.
func Zero() Q {
	var q Q
	return q
}

// FromInt constructs a Q from an integer.
func FromInt(n int64) Q {
	var q Q
	q.r.SetInt64(n)
	return q
}

// String returns the canonical form: "0", an integer, or "num/den" with
// den > 1 and gcd(|num|, den) = 1.
func (q Q) String() string {
	if q.r.IsInt() {
		return q.r.Num().String()
	}
	return q.r.Num().String() + "/" + q.r.Denom().String()
}

func (q Q) Add(o Q) Q {
	var out Q
	out.r.Add(&q.r, &o.r)
	return out
}

func (q Q) Sub(o Q) Q {
	var out Q
	out.r.Sub(&q.r, &o.r)
	return out
}

func (q Q) Mul(o Q) Q {
	var out Q
	out.r.Mul(&q.r, &o.r)
	return out
}

// Div divides q by o. Division by zero panics: the query evaluator only
// ever divides by fixed, non-zero constants (365.24 days/year), never by
// user-supplied input, so this can never occur at the API boundary.
func (q Q) Div(o Q) Q {
	var out Q
	out.r.Quo(&q.r, &o.r)
	return out
}

func (q Q) Neg() Q {
	var out Q
	out.r.Neg(&q.r)
	return out
}

func (q Q) Abs() Q {
	var out Q
	out.r.Abs(&q.r)
	return out
}

// Cmp returns -1, 0, or +1 as q is less than, equal to, or greater than o.
func (q Q) Cmp(o Q) int {
	return q.r.Cmp(&o.r)
}

func (q Q) LessThan(o Q) bool    { return q.Cmp(o) < 0 }
func (q Q) GreaterThan(o Q) bool { return q.Cmp(o) > 0 }
func (q Q) Equal(o Q) bool       { return q.Cmp(o) == 0 }
func (q Q) IsZero() bool         { return q.r.Sign() == 0 }
func (q Q) IsNegative() bool     { return q.r.Sign() < 0 }
func (q Q) IsPositive() bool     { return q.r.Sign() > 0 }

// Min returns the lesser of q and o.
func (q Q) Min(o Q) Q {
	if q.LessThan(o) {
		return q
	}
	return o
}

// Max returns the greater of q and o.
func (q Q) Max(o Q) Q {
	if q.GreaterThan(o) {
		return q
	}
	return o
}

// Within reports whether |q - target| <= tolerance, for fuzzy scenario
// assertions in tests (the spec's `within(x, t, eps)` helper).
func Within(x, target, tolerance Q) bool {
	diff := x.Sub(target).Abs()
	return !diff.GreaterThan(tolerance)
}
