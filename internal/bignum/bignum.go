// Package bignum is the arbitrary-precision numeric backend behind the Grim
// numeric tower.
//
// Every operation takes and returns normalised decimal strings so that callers
// never hold host machine integers:
//
//   - integers ("-12", "0", "340282366920938463463374607431768211456") are
//     handled by math/big.Int;
//   - fractions are pairs of integer strings handled by math/big.Rat and are
//     always returned in lowest terms with a positive denominator;
//   - decimals ("1.5", "-0.25", "100") are handled by cockroachdb/apd with a
//     configurable precision (34 significant digits by default, the IEEE
//     decimal128 precision).
//
// Failures (malformed input, division by zero, oversized exponents) are
// reported as Go errors; the value layer turns them into Error values.
package bignum

import (
	"math/big"
	"strings"

	"github.com/cockroachdb/apd/v2"
	"github.com/pkg/errors"
)

// DefaultPrecision is the number of significant digits used for decimal
// division and exponentiation unless overridden.
const DefaultPrecision = 34

// MaxExponent bounds integer exponents accepted by the Pow operations and
// the decimal exponents a result may carry.
const MaxExponent = 1 << 16

var (
	ErrDivisionByZero   = errors.New("division by zero")
	ErrNegativeExponent = errors.New("negative exponent")
	ErrExponentTooLarge = errors.New("exponent too large")
)

// Fraction is a rational number as a pair of integer strings.
type Fraction struct {
	Num string
	Den string
}

// Backend performs arithmetic for the numeric tower. The zero value is not
// usable; call New.
type Backend struct {
	ctx *apd.Context
}

// New returns a backend whose decimal context carries precision significant
// digits. A zero precision selects DefaultPrecision.
func New(precision uint32) *Backend {
	if precision == 0 {
		precision = DefaultPrecision
	}
	return &Backend{ctx: apd.BaseContext.WithPrecision(precision)}
}

// Precision reports the decimal precision of the backend.
func (b *Backend) Precision() uint32 { return b.ctx.Precision }

func parseInt(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("empty integer literal")
	}
	body := s
	if body[0] == '-' || body[0] == '+' {
		body = body[1:]
	}
	if body == "" || strings.IndexFunc(body, notDigit) >= 0 {
		return nil, errors.Errorf("invalid integer literal %q", s)
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, errors.Errorf("invalid integer literal %q", s)
	}
	return n, nil
}

func notDigit(r rune) bool { return r < '0' || r > '9' }

func parseFrac(f Fraction) (*big.Rat, error) {
	n, err := parseInt(f.Num)
	if err != nil {
		return nil, err
	}
	d, err := parseInt(f.Den)
	if err != nil {
		return nil, err
	}
	if d.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	return new(big.Rat).SetFrac(n, d), nil
}

func fromRat(r *big.Rat) Fraction {
	return Fraction{Num: r.Num().String(), Den: r.Denom().String()}
}

func parseDec(s string) (*apd.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("empty decimal literal")
	}
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid decimal literal %q", s)
	}
	if d.Form != apd.Finite {
		return nil, errors.Errorf("decimal literal %q is not finite", s)
	}
	return d, nil
}

// decText renders d in plain (non-scientific) notation with trailing zeros
// removed. Negative zero collapses to "0". The plain spelling grows with the
// exponent, so exponents beyond MaxExponent either way are rejected.
func decText(d *apd.Decimal) (string, error) {
	if d.Sign() == 0 {
		return "0", nil
	}
	r, _ := new(apd.Decimal).Reduce(d)
	if r.Exponent > MaxExponent || r.Exponent < -MaxExponent {
		return "", ErrExponentTooLarge
	}
	return r.Text('f'), nil
}

func exponent(e *big.Int) (int64, error) {
	if e.Sign() < 0 {
		return 0, ErrNegativeExponent
	}
	if !e.IsInt64() || e.Int64() > MaxExponent {
		return 0, ErrExponentTooLarge
	}
	return e.Int64(), nil
}
