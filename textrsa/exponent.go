package textrsa

import "fmt"

// ChooseExponent returns the second integer coprime to phi.
func ChooseExponent(phi int64) (int64, error) {
	if phi < 3 {
		return 0, fmt.Errorf("%w: phi = %d", ErrInvalidTotient, phi)
	}
	coprimes := CoprimesUpTo(phi, 2)
	if len(coprimes) < 2 {
		return 0, fmt.Errorf("%w: phi = %d", ErrInvalidTotient, phi)
	}
	return coprimes[1], nil
}

func InverseSearch(e, phi int64) (int64, error) {
	if phi < 2 || e < 1 {
		return 0, fmt.Errorf("%w: e = %d, phi = %d", ErrInvalidTotient, e, phi)
	}
	// без взаимной простоты обратного элемента нет и поиск не закончится
	if GCD(e, phi) != 1 {
		return 0, fmt.Errorf("%w: e = %d, phi = %d", ErrNotCoprime, e, phi)
	}
	for d := int64(1); d <= phi; d++ {
		if mulMod(e, d, phi) == 1 {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: no inverse of %d below %d", ErrSearchExhausted, e, phi)
}

func SolveExponents(phi int64) (d, e int64, err error) {
	e, err = ChooseExponent(phi)
	if err != nil {
		return 0, 0, err
	}
	d, err = InverseSearch(e, phi)
	if err != nil {
		return 0, 0, err
	}
	return d, e, nil
}
