package bignum

import "math/big"

// NormInt validates an integer literal and returns its canonical spelling
// (no leading zeros, no "+", "-0" folded to "0").
func (b *Backend) NormInt(x string) (string, error) {
	n, err := parseInt(x)
	if err != nil {
		return "", err
	}
	return n.String(), nil
}

// IntSign returns -1, 0 or +1.
func (b *Backend) IntSign(x string) (int, error) {
	n, err := parseInt(x)
	if err != nil {
		return 0, err
	}
	return n.Sign(), nil
}

func (b *Backend) IntAdd(x, y string) (string, error) {
	return intOp(x, y, func(z, a, c *big.Int) error { z.Add(a, c); return nil })
}

func (b *Backend) IntSub(x, y string) (string, error) {
	return intOp(x, y, func(z, a, c *big.Int) error { z.Sub(a, c); return nil })
}

func (b *Backend) IntMul(x, y string) (string, error) {
	return intOp(x, y, func(z, a, c *big.Int) error { z.Mul(a, c); return nil })
}

// IntPow raises x to the non-negative integer power y.
func (b *Backend) IntPow(x, y string) (string, error) {
	return intOp(x, y, func(z, a, c *big.Int) error {
		e, err := exponent(c)
		if err != nil {
			return err
		}
		z.Exp(a, big.NewInt(e), nil)
		return nil
	})
}

// IntMod is the floor modulus: x - floor(x/y)*y. The result takes the sign
// of y.
func (b *Backend) IntMod(x, y string) (string, error) {
	return intOp(x, y, func(z, a, c *big.Int) error {
		if c.Sign() == 0 {
			return ErrDivisionByZero
		}
		z.Rem(a, c)
		if z.Sign() != 0 && z.Sign() != c.Sign() {
			z.Add(z, c)
		}
		return nil
	})
}

// IntFloorDiv returns floor(x/y).
func (b *Backend) IntFloorDiv(x, y string) (string, error) {
	return intOp(x, y, func(z, a, c *big.Int) error {
		if c.Sign() == 0 {
			return ErrDivisionByZero
		}
		m := new(big.Int)
		z.QuoRem(a, c, m)
		if m.Sign() != 0 && m.Sign() != c.Sign() {
			z.Sub(z, big.NewInt(1))
		}
		return nil
	})
}

func (b *Backend) IntCmp(x, y string) (int, error) {
	a, err := parseInt(x)
	if err != nil {
		return 0, err
	}
	c, err := parseInt(y)
	if err != nil {
		return 0, err
	}
	return a.Cmp(c), nil
}

func intOp(x, y string, f func(z, a, c *big.Int) error) (string, error) {
	a, err := parseInt(x)
	if err != nil {
		return "", err
	}
	c, err := parseInt(y)
	if err != nil {
		return "", err
	}
	z := new(big.Int)
	if err := f(z, a, c); err != nil {
		return "", err
	}
	return z.String(), nil
}
