package bignum

import (
	"github.com/cockroachdb/apd/v2"
	"github.com/pkg/errors"
)

// NormDec validates a decimal literal and returns its reduced plain
// spelling ("1.50" -> "1.5", "1E+2" -> "100").
func (b *Backend) NormDec(x string) (string, error) {
	d, err := parseDec(x)
	if err != nil {
		return "", err
	}
	return decText(d)
}

func (b *Backend) DecAdd(x, y string) (string, error) {
	return b.decOp(x, y, b.ctx.Add)
}

func (b *Backend) DecSub(x, y string) (string, error) {
	return b.decOp(x, y, b.ctx.Sub)
}

func (b *Backend) DecMul(x, y string) (string, error) {
	return b.decOp(x, y, b.ctx.Mul)
}

func (b *Backend) DecQuo(x, y string) (string, error) {
	return b.decOp(x, y, func(z, a, c *apd.Decimal) (apd.Condition, error) {
		if c.Sign() == 0 {
			return 0, ErrDivisionByZero
		}
		return b.ctx.Quo(z, a, c)
	})
}

func (b *Backend) DecPow(x, y string) (string, error) {
	return b.decOp(x, y, b.ctx.Pow)
}

func (b *Backend) DecNeg(x string) (string, error) {
	d, err := parseDec(x)
	if err != nil {
		return "", err
	}
	z := new(apd.Decimal)
	if _, err := b.ctx.Neg(z, d); err != nil {
		return "", errors.Wrap(err, "decimal negation")
	}
	return decText(z)
}

func (b *Backend) DecCmp(x, y string) (int, error) {
	a, err := parseDec(x)
	if err != nil {
		return 0, err
	}
	c, err := parseDec(y)
	if err != nil {
		return 0, err
	}
	return a.Cmp(c), nil
}

func (b *Backend) decOp(x, y string, f func(z, a, c *apd.Decimal) (apd.Condition, error)) (string, error) {
	a, err := parseDec(x)
	if err != nil {
		return "", err
	}
	c, err := parseDec(y)
	if err != nil {
		return "", err
	}
	z := new(apd.Decimal)
	if _, err := f(z, a, c); err != nil {
		if errors.Cause(err) == ErrDivisionByZero {
			return "", err
		}
		return "", errors.Wrap(err, "decimal arithmetic")
	}
	if z.Form != apd.Finite {
		return "", errors.New("decimal result is not finite")
	}
	return decText(z)
}
