package textrsa

import (
	"fmt"
	"math/bits"
)

// mulMod returns a*b mod m for 0 <= a, b and m > 0 without overflowing.
func mulMod(a, b, m int64) int64 {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	_, rem := bits.Div64(hi%uint64(m), lo, uint64(m))
	return int64(rem)
}

// PowMod computes base^exp mod mod by exp-1 repeated multiplications.
func PowMod(base, exp, mod int64) (int64, error) {
	if mod < 1 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidModulus, mod)
	}
	if exp == 0 {
		return 0, ErrZeroExponent
	}
	if base < 0 || exp < 0 {
		return 0, fmt.Errorf("%w: negative operand %d^%d", ErrInvalidModulus, base, exp)
	}

	original := base % mod
	result := original
	for i := int64(0); i < exp-1; i++ {
		result = mulMod(result, original, mod)
	}
	return result, nil
}
