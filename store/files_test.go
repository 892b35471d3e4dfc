package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/txm073/rsa/textrsa"
)

func testKeys(t *testing.T) *textrsa.Keys {
	t.Helper()
	keys, err := textrsa.NewGenerator(textrsa.Config{}).FromPrimes(61, 53)
	if err != nil {
		t.Fatal(err)
	}
	return keys
}

func testPaths(t *testing.T) Paths {
	dir := t.TempDir()
	return Paths{
		Public:  filepath.Join(dir, DefaultPublicFile),
		Private: filepath.Join(dir, DefaultPrivateFile),
		Charmap: filepath.Join(dir, DefaultCharmapFile),
	}
}

func TestFileLayout(t *testing.T) {
	keys := testKeys(t)
	paths := testPaths(t)
	if err := SaveKeys(paths, keys); err != nil {
		t.Fatal(err)
	}

	pub, _ := os.ReadFile(paths.Public)
	if got, want := string(pub), "3233\n7"; got != want {
		t.Errorf("public store = %q, want %q", got, want)
	}
	priv, _ := os.ReadFile(paths.Private)
	if got, want := string(priv), "1783"; got != want {
		t.Errorf("private store = %q, want %q", got, want)
	}

	cm, _ := os.ReadFile(paths.Charmap)
	lines := strings.Split(string(cm), "\n")
	if lines[0] != CharmapHeader {
		t.Errorf("first line = %q, want %q", lines[0], CharmapHeader)
	}
	if lines[1] != "2 : 1" {
		t.Errorf("second line = %q, want %q", lines[1], "2 : 1")
	}
	if got, want := len(lines), keys.Charmap.Len()+2; got != want {
		t.Errorf("%d lines, want %d", got, want)
	}
}

func TestFileRoundTrip(t *testing.T) {
	keys := testKeys(t)
	paths := testPaths(t)
	if err := SaveKeys(paths, keys); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadKeys(paths)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Public != keys.Public || loaded.Private != keys.Private {
		t.Errorf("loaded %+v %+v, want %+v %+v", loaded.Public, loaded.Private, keys.Public, keys.Private)
	}

	msg := "Hello World! :) ~"
	ct, err := textrsa.Encode(keys.Public, keys.Charmap, msg)
	if err != nil {
		t.Fatal(err)
	}
	got, err := textrsa.Decode(loaded.Public, loaded.Private, loaded.Charmap, ct)
	if err != nil {
		t.Fatal(err)
	}
	if got != msg {
		t.Errorf("got %q, want %q", got, msg)
	}
}

func TestLegacyNumbers(t *testing.T) {
	pub, err := ParsePublicKey("3233.000000\n7.000000\n")
	if err != nil {
		t.Fatal(err)
	}
	if pub != (textrsa.PublicKey{N: 3233, E: 7}) {
		t.Errorf("ParsePublicKey = %+v", pub)
	}
	priv, err := ParsePrivateKey("1783.000000")
	if err != nil {
		t.Fatal(err)
	}
	if priv.D != 1783 {
		t.Errorf("ParsePrivateKey = %+v", priv)
	}
}

func TestMalformedKeys(t *testing.T) {
	for _, s := range []string{"", "3233", "3233\n7\n9", "abc\n7", "3233\n7.5"} {
		if _, err := ParsePublicKey(s); !errors.Is(err, ErrMalformedStore) {
			t.Errorf("ParsePublicKey(%q) error = %v, want ErrMalformedStore", s, err)
		}
	}
	for _, s := range []string{"", "1\n2", "d"} {
		if _, err := ParsePrivateKey(s); !errors.Is(err, ErrMalformedStore) {
			t.Errorf("ParsePrivateKey(%q) error = %v, want ErrMalformedStore", s, err)
		}
	}
}

func TestParseCharmapSpecialCharacters(t *testing.T) {
	cm, err := ParseCharmap("Character map:\n2 :  \n4 : :\n7 : ~\n")
	if err != nil {
		t.Fatal(err)
	}
	want := map[int64]rune{2: ' ', 4: ':', 7: '~'}
	for code, r := range want {
		if got, ok := cm.Char(code); !ok || got != r {
			t.Errorf("Char(%d) = %q, want %q", code, got, r)
		}
	}
}

func TestLoadCharmapCRLF(t *testing.T) {
	keys, err := textrsa.NewGenerator(textrsa.Config{}).FromPrimes(61, 53)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), DefaultCharmapFile)
	crlf := strings.ReplaceAll(FormatCharmap(keys.Charmap), "\n", "\r\n")
	if err := os.WriteFile(path, []byte(crlf), 0o644); err != nil {
		t.Fatal(err)
	}

	cm, err := LoadCharmap(path)
	if err != nil {
		t.Fatal(err)
	}
	if cm.Len() != keys.Charmap.Len() {
		t.Fatalf("Len() = %d, want %d", cm.Len(), keys.Charmap.Len())
	}
	for _, e := range keys.Charmap.Entries() {
		if got, ok := cm.Char(e.Code); !ok || got != e.Char {
			t.Errorf("Char(%d) = %q, want %q", e.Code, got, e.Char)
		}
	}
}

func TestMalformedCharmap(t *testing.T) {
	bad := []string{
		"",
		"Charmap:\n2 : a\n",
		"Character map:\n2 - a\n",
		"Character map:\nx : a\n",
		"Character map:\n2 : ab\n",
		"Character map:\n2 : a\n\n4 : b\n",
		"Character map:\n2 : a\n2 : b\n",
	}
	for _, s := range bad {
		if _, err := ParseCharmap(s); !errors.Is(err, ErrMalformedStore) {
			t.Errorf("ParseCharmap(%q) error = %v, want ErrMalformedStore", s, err)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadPublicKey(filepath.Join(t.TempDir(), "nope.rsa"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want os.ErrNotExist", err)
	}
}
