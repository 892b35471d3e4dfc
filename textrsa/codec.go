package textrsa

import (
	"fmt"
	"strconv"
	"strings"
)

const Delimiter = ":"

func Encode(pub PublicKey, cm *Charmap, msg string) (string, error) {
	parts := make([]string, 0, len(msg))
	for pos, char := range msg {
		code, ok := cm.Code(char)
		if !ok {
			return "", fmt.Errorf("%w: %q at byte %d", ErrUnmappedCharacter, char, pos)
		}
		// c = m^e mod n
		c, err := PowMod(code, pub.E, pub.N)
		if err != nil {
			return "", err
		}
		parts = append(parts, strconv.FormatInt(c, 10))
	}
	return strings.Join(parts, Delimiter), nil
}

func Decode(pub PublicKey, priv PrivateKey, cm *Charmap, ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", nil
	}

	var sb strings.Builder
	for i, token := range strings.Split(ciphertext, Delimiter) {
		c, err := strconv.ParseInt(token, 10, 64)
		if err != nil || c < 0 {
			return "", fmt.Errorf("%w: token %d is %q", ErrMalformedCiphertext, i, token)
		}
		// m = c^d mod n
		m, err := PowMod(c, priv.D, pub.N)
		if err != nil {
			return "", err
		}
		char, ok := cm.Char(m)
		if !ok {
			return "", fmt.Errorf("%w: %d (token %d)", ErrUnmappedCode, m, i)
		}
		sb.WriteRune(char)
	}
	return sb.String(), nil
}
