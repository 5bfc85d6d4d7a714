package tree

import (
	"math"
	"math/big"

	"github.com/Iron-Ham/prodpath/internal/errors"
)

// arithmetic abstracts the number type products are computed in.
type arithmetic[T any] interface {
	fromInt(v int64) T
	mul(a, b T) (T, error)
	// prod multiplies nonzero factors.
	prod(factors []T) (T, error)
	cmp(a, b T) int
	isZero(v T) bool
}

// checkedInt64 multiplies int64 values and reports overflow instead of wrapping.
type checkedInt64 struct{}

func (checkedInt64) fromInt(v int64) int64 { return v }

func (checkedInt64) mul(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	// MinInt64 / -1 does not trap in Go, so the division check below misses it.
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, errors.ErrOverflow
	}
	c := a * b
	if c/b != a {
		return 0, errors.ErrOverflow
	}
	return c, nil
}

// prod saturates a product below math.MinInt64 to math.MinInt64 and reports
// ErrOverflow only for a product above math.MaxInt64. A saturated value
// multiplied by any factor other than 1 overflows exactly like a true
// math.MinInt64 would, so it can lower a minimum but never yield a maximum.
func (c checkedInt64) prod(factors []int64) (int64, error) {
	negative := false
	for _, x := range factors {
		if x < 0 {
			negative = !negative
		}
	}
	acc := factors[0]
	for _, x := range factors[1:] {
		p, err := c.mul(acc, x)
		if err != nil {
			if negative {
				return math.MinInt64, nil
			}
			return 0, err
		}
		acc = p
	}
	return acc, nil
}

func (checkedInt64) cmp(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (checkedInt64) isZero(v int64) bool { return v == 0 }

// bigInt multiplies exactly. Results are always freshly allocated so values
// handed out in PathStats are never aliased.
type bigInt struct{}

func (bigInt) fromInt(v int64) *big.Int { return big.NewInt(v) }

func (bigInt) mul(a, b *big.Int) (*big.Int, error) {
	return new(big.Int).Mul(a, b), nil
}

func (bigInt) prod(factors []*big.Int) (*big.Int, error) {
	acc := new(big.Int).Set(factors[0])
	for _, x := range factors[1:] {
		acc.Mul(acc, x)
	}
	return acc, nil
}

func (bigInt) cmp(a, b *big.Int) int { return a.Cmp(b) }

func (bigInt) isZero(v *big.Int) bool { return v.Sign() == 0 }
