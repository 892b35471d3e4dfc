package textrsa

import "errors"

var (
	ErrInvalidRange        = errors.New("textrsa: range holds fewer than two primes")
	ErrInvalidPrime        = errors.New("textrsa: invalid prime")
	ErrAlphabetTooLarge    = errors.New("textrsa: not enough coprimes to map the alphabet")
	ErrUnmappedCharacter   = errors.New("textrsa: character is not in the charmap")
	ErrUnmappedCode        = errors.New("textrsa: code is not in the charmap")
	ErrMalformedCiphertext = errors.New("textrsa: malformed ciphertext")
	ErrZeroExponent        = errors.New("textrsa: zero exponent")
	ErrInvalidModulus      = errors.New("textrsa: invalid modulus")
	ErrInvalidTotient      = errors.New("textrsa: totient has no usable public exponent")
	ErrNotCoprime          = errors.New("textrsa: exponent is not coprime to the totient")
	ErrSearchExhausted     = errors.New("textrsa: search exhausted")
)
