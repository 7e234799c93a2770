package domain

import (
	"fmt"
	"math/big"
)

// Amount is a non-negative integer number of minor currency units (wei for
// on-chain contributions), carried as a decimal string everywhere outside
// this type. Arithmetic goes through math/big so totals never lose precision
// to floating point.
type Amount struct {
	n big.Int
}

// ParseAmount validates s as a base-10 non-negative integer string.
// Fractional, signed, empty and non-numeric inputs are rejected rather than
// truncated.
func ParseAmount(s string) (*Amount, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty string", ErrInvalidAmount)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("%w: %q is not a non-negative integer", ErrInvalidAmount, s)
		}
	}
	a := &Amount{}
	if _, ok := a.n.SetString(s, 10); !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return a, nil
}

// Add returns a new Amount holding a+b.
func (a *Amount) Add(b *Amount) *Amount {
	sum := &Amount{}
	sum.n.Add(&a.n, &b.n)
	return sum
}

func (a *Amount) String() string {
	return a.n.String()
}

// AddAmounts is the decimal-string form of Add used by the ledger update:
// both operands are validated and the arbitrary-precision sum is returned as
// a decimal string.
func AddAmounts(a, b string) (string, error) {
	x, err := ParseAmount(a)
	if err != nil {
		return "", err
	}
	y, err := ParseAmount(b)
	if err != nil {
		return "", err
	}
	return x.Add(y).String(), nil
}
