// Package textrsa is a toy RSA that encrypts text one character at a time
// using small primes, a brute-force totient and a character-to-coprime map.
package textrsa

import (
	"fmt"
	"io"
)

const (
	DefaultMaxAttempts = 1000000
	// Totient и таблица символов перебирают все числа до n.
	DefaultMaxModulus = 100000000
)

// maxFactor keeps p*q inside int64.
const maxFactor = 3037000499

type Config struct {
	Rand        Source    // TimeSource() when nil
	Log         io.Writer // progress lines; discarded when nil
	MaxAttempts int       // DefaultMaxAttempts when <= 0
	MaxModulus  int64     // upper bound on n = p*q; DefaultMaxModulus when <= 0
	Alphabet    string    // DefaultAlphabet when empty
}

type Generator struct {
	rnd         Source
	log         io.Writer
	maxAttempts int
	maxModulus  int64
	alphabet    string
}

func NewGenerator(cfg Config) *Generator {
	gen := &Generator{
		rnd:         cfg.Rand,
		log:         cfg.Log,
		maxAttempts: cfg.MaxAttempts,
		maxModulus:  cfg.MaxModulus,
		alphabet:    cfg.Alphabet,
	}
	if gen.rnd == nil {
		gen.rnd = TimeSource()
	}
	if gen.log == nil {
		gen.log = io.Discard
	}
	if gen.maxAttempts <= 0 {
		gen.maxAttempts = DefaultMaxAttempts
	}
	if gen.maxModulus <= 0 {
		gen.maxModulus = DefaultMaxModulus
	}
	if gen.maxModulus > maxFactor*maxFactor {
		gen.maxModulus = maxFactor * maxFactor
	}
	if gen.alphabet == "" {
		gen.alphabet = DefaultAlphabet
	}
	return gen
}

func (gen *Generator) printf(format string, args ...any) {
	fmt.Fprintf(gen.log, format+"\n", args...)
}

// FindPrimes draws random integers in [lower, upper] until two distinct primes
// are found and returns them in discovery order. upper*upper must not exceed
// the configured MaxModulus.
func (gen *Generator) FindPrimes(lower, upper int64) (int64, int64, error) {
	if lower < 2 || lower > upper {
		return 0, 0, fmt.Errorf("%w: [%d, %d]", ErrInvalidRange, lower, upper)
	}
	if upper > isqrt(gen.maxModulus) {
		return 0, 0, fmt.Errorf("%w: [%d, %d], n may exceed %d", ErrInvalidRange, lower, upper, gen.maxModulus)
	}

	trial := Sieve(isqrt(upper) + 1)
	gen.printf("Найдено %d простых чисел до квадратного корня из %d", len(trial), upper)

	// Без двух простых в диапазоне случайный поиск не закончится.
	found := 0
	for i := lower; i <= upper && found < 2; i++ {
		if IsPrime(i, trialFor(i, trial)) {
			found++
		}
	}
	if found < 2 {
		return 0, 0, fmt.Errorf("%w: [%d, %d]", ErrInvalidRange, lower, upper)
	}

	span := upper - lower + 1
	tried := make(map[int64]struct{})
	primes := make([]int64, 0, 2)
	for attempt := 1; attempt <= gen.maxAttempts; attempt++ {
		candidate := gen.rnd.Int63n(span) + lower
		if _, ok := tried[candidate]; !ok {
			tried[candidate] = struct{}{}
			if IsPrime(candidate, trialFor(candidate, trial)) {
				primes = append(primes, candidate)
				gen.printf("Найдено простое число между %d и %d: %d", lower, upper, candidate)
				if len(primes) == 2 {
					gen.printf("Пара простых чисел найдена за %d попыток", attempt)
					return primes[0], primes[1], nil
				}
			}
		}
		if attempt%1000 == 0 {
			gen.printf("Проверено %d случайных чисел между %d и %d", attempt, lower, upper)
		}
	}
	return 0, 0, fmt.Errorf("%w: %d draws in [%d, %d]", ErrSearchExhausted, gen.maxAttempts, lower, upper)
}

func (gen *Generator) Generate(lower, upper int64) (*Keys, error) {
	p, q, err := gen.FindPrimes(lower, upper)
	if err != nil {
		return nil, err
	}
	return gen.FromPrimes(p, q)
}

func (gen *Generator) FromPrimes(p, q int64) (*Keys, error) {
	if p > maxFactor || q > maxFactor || !isPrimeNumber(p) || !isPrimeNumber(q) {
		return nil, fmt.Errorf("%w: p = %d, q = %d", ErrInvalidPrime, p, q)
	}
	if p == q {
		return nil, fmt.Errorf("%w: p and q are both %d", ErrInvalidPrime, p)
	}
	if p*q > gen.maxModulus {
		return nil, fmt.Errorf("%w: n = %d*%d exceeds %d", ErrInvalidRange, p, q, gen.maxModulus)
	}
	gen.printf("--- Простые числа: p = %d, q = %d ---", p, q)

	// n = p * q
	n := p * q
	gen.printf("Произведение простых n = %d", n)

	phi := Totient(n)
	gen.printf("Функция Эйлера от n: %d", phi)

	d, e, err := SolveExponents(phi)
	if err != nil {
		return nil, err
	}
	gen.printf("Закрытый ключ d = %d, экспонента e = %d", d, e)

	coprimes := CoprimesUpTo(n, len([]rune(gen.alphabet)))
	cm, err := NewCharmap(coprimes, gen.alphabet)
	if err != nil {
		return nil, err
	}
	gen.printf("Таблица символов: %d символов", cm.Len())

	return &Keys{
		P:       p,
		Q:       q,
		Public:  PublicKey{N: n, E: e},
		Private: PrivateKey{D: d},
		Charmap: cm,
	}, nil
}
