package textrsa

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

type PublicKey struct {
	N int64 // модуль n = p*q
	E int64 // открытая экспонента
}

type PrivateKey struct {
	D int64
}

type Keys struct {
	P       int64 // простое p
	Q       int64 // простое q
	Public  PublicKey
	Private PrivateKey
	Charmap *Charmap
}

// Fingerprint identifies a public key: hex BLAKE2b-256 of "n:e".
func (pub PublicKey) Fingerprint() string {
	sum := blake2b.Sum256([]byte(fmt.Sprintf("%d:%d", pub.N, pub.E)))
	return hex.EncodeToString(sum[:])
}

// 1 < e < phi, gcd(e, phi) = 1, e*d = 1 (mod phi)
func (k *Keys) Validate() error {
	if k.Public.N != k.P*k.Q {
		return fmt.Errorf("%w: n = %d is not %d*%d", ErrInvalidModulus, k.Public.N, k.P, k.Q)
	}
	// phi(n) = (p-1)(q-1)
	phi := (k.P - 1) * (k.Q - 1)
	if k.Public.E <= 1 || k.Public.E >= phi {
		return fmt.Errorf("%w: e = %d, phi = %d", ErrInvalidTotient, k.Public.E, phi)
	}
	if GCD(k.Public.E, phi) != 1 {
		return fmt.Errorf("%w: e = %d, phi = %d", ErrNotCoprime, k.Public.E, phi)
	}
	if mulMod(k.Public.E, k.Private.D, phi) != 1 {
		return fmt.Errorf("%w: d = %d is not the inverse of e = %d", ErrInvalidTotient, k.Private.D, k.Public.E)
	}
	return nil
}
