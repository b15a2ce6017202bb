package bignum

import "math/big"

// NormRat validates f and reduces it to lowest terms with a positive
// denominator.
func (b *Backend) NormRat(f Fraction) (Fraction, error) {
	r, err := parseFrac(f)
	if err != nil {
		return Fraction{}, err
	}
	return fromRat(r), nil
}

func (b *Backend) RatAdd(x, y Fraction) (Fraction, error) {
	return ratOp(x, y, func(z, a, c *big.Rat) error { z.Add(a, c); return nil })
}

func (b *Backend) RatSub(x, y Fraction) (Fraction, error) {
	return ratOp(x, y, func(z, a, c *big.Rat) error { z.Sub(a, c); return nil })
}

func (b *Backend) RatMul(x, y Fraction) (Fraction, error) {
	return ratOp(x, y, func(z, a, c *big.Rat) error { z.Mul(a, c); return nil })
}

func (b *Backend) RatQuo(x, y Fraction) (Fraction, error) {
	return ratOp(x, y, func(z, a, c *big.Rat) error {
		if c.Sign() == 0 {
			return ErrDivisionByZero
		}
		z.Quo(a, c)
		return nil
	})
}

// RatPow raises x to the integer power e. Negative exponents invert x.
func (b *Backend) RatPow(x Fraction, e string) (Fraction, error) {
	r, err := parseFrac(x)
	if err != nil {
		return Fraction{}, err
	}
	n, err := parseInt(e)
	if err != nil {
		return Fraction{}, err
	}
	neg := n.Sign() < 0
	k, err := exponent(new(big.Int).Abs(n))
	if err != nil {
		return Fraction{}, err
	}
	if neg {
		if r.Sign() == 0 {
			return Fraction{}, ErrDivisionByZero
		}
		r.Inv(r)
	}
	kk := big.NewInt(k)
	num := new(big.Int).Exp(r.Num(), kk, nil)
	den := new(big.Int).Exp(r.Denom(), kk, nil)
	return fromRat(new(big.Rat).SetFrac(num, den)), nil
}

func (b *Backend) RatCmp(x, y Fraction) (int, error) {
	a, err := parseFrac(x)
	if err != nil {
		return 0, err
	}
	c, err := parseFrac(y)
	if err != nil {
		return 0, err
	}
	return a.Cmp(c), nil
}

// RatToDec divides numerator by denominator in the backend's decimal
// context.
func (b *Backend) RatToDec(x Fraction) (string, error) {
	return b.DecQuo(x.Num, x.Den)
}

func ratOp(x, y Fraction, f func(z, a, c *big.Rat) error) (Fraction, error) {
	a, err := parseFrac(x)
	if err != nil {
		return Fraction{}, err
	}
	c, err := parseFrac(y)
	if err != nil {
		return Fraction{}, err
	}
	z := new(big.Rat)
	if err := f(z, a, c); err != nil {
		return Fraction{}, err
	}
	return fromRat(z), nil
}
