package textrsa

import (
	"errors"
	"testing"
)

func TestDefaultAlphabet(t *testing.T) {
	if got := len(DefaultAlphabet); got != 95 {
		t.Errorf("len(DefaultAlphabet) = %d, want 95", got)
	}
	seen := make(map[rune]bool)
	for _, r := range DefaultAlphabet {
		if seen[r] {
			t.Errorf("DefaultAlphabet repeats %q", r)
		}
		seen[r] = true
	}
}

func TestCharmapBijection(t *testing.T) {
	cm, err := NewCharmap(Coprimes(3233), DefaultAlphabet)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := cm.Len(), len(DefaultAlphabet)-1; got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}

	codes := make(map[int64]rune)
	for _, r := range DefaultAlphabet[1:] {
		code, ok := cm.Code(r)
		if !ok {
			t.Fatalf("Code(%q) missing", r)
		}
		if other, dup := codes[code]; dup {
			t.Fatalf("%q and %q share code %d", r, other, code)
		}
		codes[code] = r
		back, ok := cm.Char(code)
		if !ok || back != r {
			t.Errorf("Char(Code(%q)) = %q, %v", r, back, ok)
		}
		if GCD(code, 3233) != 1 {
			t.Errorf("code %d of %q is not coprime to n", code, r)
		}
	}
}

func TestCharmapSkipsFirstPosition(t *testing.T) {
	cm, err := NewCharmap(Coprimes(3233), DefaultAlphabet)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := cm.Code('0'); ok {
		t.Error("'0' is mapped, want it left out")
	}
	if _, ok := cm.Char(1); ok {
		t.Error("code 1 is mapped, want it left out")
	}
	// coprimes of 3233 are 1..52 for the first positions
	if code, _ := cm.Code('1'); code != 2 {
		t.Errorf("Code('1') = %d, want 2", code)
	}
	if code, _ := cm.Code('a'); code != 11 {
		t.Errorf("Code('a') = %d, want 11", code)
	}
}

func TestCharmapAlphabetTooLarge(t *testing.T) {
	_, err := NewCharmap(Coprimes(15), DefaultAlphabet)
	if !errors.Is(err, ErrAlphabetTooLarge) {
		t.Errorf("NewCharmap(Coprimes(15)) error = %v, want ErrAlphabetTooLarge", err)
	}
}

func TestCharmapFromEntries(t *testing.T) {
	orig, err := NewCharmap(Coprimes(15), "_Hi")
	if err != nil {
		t.Fatal(err)
	}
	cm, err := CharmapFromEntries(orig.Entries())
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range orig.Entries() {
		if code, _ := cm.Code(e.Char); code != e.Code {
			t.Errorf("Code(%q) = %d, want %d", e.Char, code, e.Code)
		}
		if char, _ := cm.Char(e.Code); char != e.Char {
			t.Errorf("Char(%d) = %q, want %q", e.Code, char, e.Char)
		}
	}
}

func TestCharmapFromEntriesDuplicates(t *testing.T) {
	dupChar := []CharmapEntry{{2, 'a'}, {4, 'a'}}
	if _, err := CharmapFromEntries(dupChar); err == nil {
		t.Error("duplicate character accepted")
	}
	dupCode := []CharmapEntry{{2, 'a'}, {2, 'b'}}
	if _, err := CharmapFromEntries(dupCode); err == nil {
		t.Error("duplicate code accepted")
	}
}

func TestCharmapEntriesCopy(t *testing.T) {
	cm, err := NewCharmap(Coprimes(15), "_Hi")
	if err != nil {
		t.Fatal(err)
	}
	entries := cm.Entries()
	entries[0].Char = 'X'
	if cm.Entries()[0].Char != 'H' {
		t.Error("Entries() exposes internal state")
	}
}
