package textrsa

func GCD(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}

// φ(n) перебором
func Totient(n int64) int64 {
	var count int64
	for i := int64(1); i <= n; i++ {
		if GCD(i, n) == 1 {
			count++
		}
	}
	return count
}

func Coprimes(n int64) []int64 {
	coprimes := []int64{}
	for i := int64(1); i <= n; i++ {
		if GCD(i, n) == 1 {
			coprimes = append(coprimes, i)
		}
	}
	return coprimes
}

// CoprimesUpTo stops after limit values; limit <= 0 means no limit.
func CoprimesUpTo(n int64, limit int) []int64 {
	if limit <= 0 {
		return Coprimes(n)
	}
	coprimes := make([]int64, 0, limit)
	for i := int64(1); i <= n && len(coprimes) < limit; i++ {
		if GCD(i, n) == 1 {
			coprimes = append(coprimes, i)
		}
	}
	return coprimes
}
