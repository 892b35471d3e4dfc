package textrsa

import "sort"

func Sieve(bound int64) []int64 {
	if bound <= 2 {
		return []int64{}
	}

	// marker[k] corresponds to the number k+2
	marker := make([]bool, bound-2)
	primes := []int64{}
	for index := range marker {
		if marker[index] {
			continue
		}
		number := int64(index) + 2
		primes = append(primes, number)
		for j := int64(index) + number; j < int64(len(marker)); j += number {
			marker[j] = true
		}
	}
	return primes
}

// IsPrime reports whether no trial prime divides i; true for an empty trial.
func IsPrime(i int64, trial []int64) bool {
	for _, p := range trial {
		if i%p == 0 {
			return false
		}
	}
	return true
}

func isqrt(n int64) int64 {
	if n < 2 {
		return n
	}
	x := n
	y := (x + 1) / 2
	for y < x {
		x = y
		y = (x + n/x) / 2
	}
	return x
}

// trialFor cuts the trial primes down to those whose square does not exceed i,
// so a small prime candidate is not rejected for dividing itself.
func trialFor(i int64, trial []int64) []int64 {
	k := sort.Search(len(trial), func(j int) bool {
		return trial[j]*trial[j] > i
	})
	return trial[:k]
}

func isPrimeNumber(i int64) bool {
	if i < 2 {
		return false
	}
	return IsPrime(i, Sieve(isqrt(i)+1))
}
