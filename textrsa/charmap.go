package textrsa

import "fmt"

const DefaultAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ!'#$%&\"()*+,-./:;<=>?@[\\]^_`{|}~ "

type CharmapEntry struct {
	Code int64
	Char rune
}

type Charmap struct {
	entries []CharmapEntry
	toCode  map[rune]int64
	toChar  map[int64]rune
}

// NewCharmap pairs alphabet[i] with coprimes[i] for i >= 1. Position 0 of both
// is skipped, so the first alphabet character is never mapped.
func NewCharmap(coprimes []int64, alphabet string) (*Charmap, error) {
	chars := []rune(alphabet)
	if len(coprimes) < len(chars) {
		return nil, fmt.Errorf("%w: %d coprimes for %d characters",
			ErrAlphabetTooLarge, len(coprimes), len(chars))
	}

	entries := make([]CharmapEntry, 0, len(chars))
	for i := 1; i < len(chars); i++ {
		entries = append(entries, CharmapEntry{Code: coprimes[i], Char: chars[i]})
	}
	return CharmapFromEntries(entries)
}

func CharmapFromEntries(entries []CharmapEntry) (*Charmap, error) {
	cm := &Charmap{
		entries: make([]CharmapEntry, 0, len(entries)),
		toCode:  make(map[rune]int64, len(entries)),
		toChar:  make(map[int64]rune, len(entries)),
	}
	for _, entry := range entries {
		if _, ok := cm.toCode[entry.Char]; ok {
			return nil, fmt.Errorf("charmap: duplicate character %q", entry.Char)
		}
		if _, ok := cm.toChar[entry.Code]; ok {
			return nil, fmt.Errorf("charmap: duplicate code %d", entry.Code)
		}
		cm.toCode[entry.Char] = entry.Code
		cm.toChar[entry.Code] = entry.Char
		cm.entries = append(cm.entries, entry)
	}
	return cm, nil
}

func (cm *Charmap) Code(r rune) (int64, bool) {
	code, ok := cm.toCode[r]
	return code, ok
}

func (cm *Charmap) Char(code int64) (rune, bool) {
	r, ok := cm.toChar[code]
	return r, ok
}

func (cm *Charmap) Entries() []CharmapEntry {
	out := make([]CharmapEntry, len(cm.entries))
	copy(out, cm.entries)
	return out
}

func (cm *Charmap) Len() int {
	return len(cm.entries)
}
