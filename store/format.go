// Package store persists keys and charmaps: plain text files compatible with
// the original tool and an sqlite keyring.
package store

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/txm073/rsa/textrsa"
)

var ErrMalformedStore = errors.New("store: malformed store")

const CharmapHeader = "Character map:"

const charmapSeparator = " : "

func FormatPublicKey(pub textrsa.PublicKey) string {
	return strconv.FormatInt(pub.N, 10) + "\n" + strconv.FormatInt(pub.E, 10)
}

func ParsePublicKey(s string) (textrsa.PublicKey, error) {
	lines := splitLines(s)
	if len(lines) != 2 {
		return textrsa.PublicKey{}, fmt.Errorf("%w: public key has %d lines, want 2", ErrMalformedStore, len(lines))
	}
	n, err := parseNumber(lines[0])
	if err != nil {
		return textrsa.PublicKey{}, err
	}
	e, err := parseNumber(lines[1])
	if err != nil {
		return textrsa.PublicKey{}, err
	}
	return textrsa.PublicKey{N: n, E: e}, nil
}

func FormatPrivateKey(priv textrsa.PrivateKey) string {
	return strconv.FormatInt(priv.D, 10)
}

func ParsePrivateKey(s string) (textrsa.PrivateKey, error) {
	lines := splitLines(s)
	if len(lines) != 1 {
		return textrsa.PrivateKey{}, fmt.Errorf("%w: private key has %d lines, want 1", ErrMalformedStore, len(lines))
	}
	d, err := parseNumber(lines[0])
	if err != nil {
		return textrsa.PrivateKey{}, err
	}
	return textrsa.PrivateKey{D: d}, nil
}

func FormatCharmap(cm *textrsa.Charmap) string {
	entries := cm.Entries()
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Code < entries[j].Code
	})

	var sb strings.Builder
	sb.WriteString(CharmapHeader + "\n")
	for _, e := range entries {
		sb.WriteString(strconv.FormatInt(e.Code, 10))
		sb.WriteString(charmapSeparator)
		sb.WriteRune(e.Char)
		sb.WriteString("\n")
	}
	return sb.String()
}

func ParseCharmap(s string) (*textrsa.Charmap, error) {
	lines := strings.Split(s, "\n")
	// the last line is closed by a newline
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 || strings.TrimSuffix(lines[0], "\r") != CharmapHeader {
		return nil, fmt.Errorf("%w: missing %q header", ErrMalformedStore, CharmapHeader)
	}

	entries := make([]textrsa.CharmapEntry, 0, len(lines)-1)
	for i, line := range lines[1:] {
		line = strings.TrimSuffix(line, "\r")
		code, char, ok := strings.Cut(line, charmapSeparator)
		if !ok || utf8.RuneCountInString(char) != 1 {
			return nil, fmt.Errorf("%w: charmap line %d is %q", ErrMalformedStore, i+2, line)
		}
		n, err := strconv.ParseInt(code, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: charmap line %d: %v", ErrMalformedStore, i+2, err)
		}
		r, _ := utf8.DecodeRuneInString(char)
		entries = append(entries, textrsa.CharmapEntry{Code: n, Char: r})
	}

	cm, err := textrsa.CharmapFromEntries(entries)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedStore, err)
	}
	return cm, nil
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}
	return lines
}

// parseNumber reads a decimal integer. Older key files hold values such as
// "3233.000000", which are accepted when integral.
func parseNumber(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrMalformedStore, s)
	}
	return int64(f), nil
}
