package textrsa

import (
	"errors"
	"testing"
)

func mustKeys(t *testing.T, p, q int64, alphabet string) *Keys {
	t.Helper()
	keys, err := NewGenerator(Config{Alphabet: alphabet}).FromPrimes(p, q)
	if err != nil {
		t.Fatalf("FromPrimes(%d, %d): %v", p, q, err)
	}
	return keys
}

func TestCodecSmallModulus(t *testing.T) {
	// p=3, q=5: n=15, phi=8, e=3, d=3, H->2, i->4
	keys := mustKeys(t, 3, 5, "_Hi")
	if keys.Public != (PublicKey{N: 15, E: 3}) || keys.Private.D != 3 {
		t.Fatalf("keys = %+v %+v", keys.Public, keys.Private)
	}

	ct, err := Encode(keys.Public, keys.Charmap, "Hi")
	if err != nil {
		t.Fatal(err)
	}
	if ct != "8:4" {
		t.Errorf("Encode(Hi) = %q, want %q", ct, "8:4")
	}
	got, err := Decode(keys.Public, keys.Private, keys.Charmap, ct)
	if err != nil {
		t.Fatal(err)
	}
	if got != "Hi" {
		t.Errorf("Decode(%q) = %q, want %q", ct, got, "Hi")
	}
}

func TestCodecRoundTrip(t *testing.T) {
	keys := mustKeys(t, 61, 53, "")
	messages := []string{
		"Hello World!",
		"abcdefghijklmnopqrstuvwxyz",
		"The quick brown fox jumps over the lazy dog.",
		`!'#$%&"()*+,-./:;<=>?@[\]^_` + "`{|}~ ",
		"123456789",
		"",
	}
	for _, msg := range messages {
		ct, err := Encode(keys.Public, keys.Charmap, msg)
		if err != nil {
			t.Fatalf("Encode(%q): %v", msg, err)
		}
		got, err := Decode(keys.Public, keys.Private, keys.Charmap, ct)
		if err != nil {
			t.Fatalf("Decode(%q): %v", ct, err)
		}
		if got != msg {
			t.Errorf("Decode(Encode(%q)) = %q", msg, got)
		}
	}
}

func TestEncodeUnmappedCharacter(t *testing.T) {
	keys := mustKeys(t, 61, 53, "")
	for _, msg := range []string{"0", "zero 0", "tab\t", "é"} {
		if _, err := Encode(keys.Public, keys.Charmap, msg); !errors.Is(err, ErrUnmappedCharacter) {
			t.Errorf("Encode(%q) error = %v, want ErrUnmappedCharacter", msg, err)
		}
	}
}

func TestDecodeUnmappedCode(t *testing.T) {
	keys := mustKeys(t, 61, 53, "")
	// 1^d = 1, and code 1 is never mapped
	if _, err := Decode(keys.Public, keys.Private, keys.Charmap, "1"); !errors.Is(err, ErrUnmappedCode) {
		t.Errorf("Decode(1) error = %v, want ErrUnmappedCode", err)
	}
}

func TestDecodeMalformed(t *testing.T) {
	keys := mustKeys(t, 61, 53, "")
	for _, ct := range []string{"abc", "12::13", "12:", "-4", "1.5"} {
		if _, err := Decode(keys.Public, keys.Private, keys.Charmap, ct); !errors.Is(err, ErrMalformedCiphertext) {
			t.Errorf("Decode(%q) error = %v, want ErrMalformedCiphertext", ct, err)
		}
	}
}
