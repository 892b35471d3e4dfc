package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2/widget"

	"github.com/txm073/rsa/store"
	"github.com/txm073/rsa/textrsa"
)

// logWriter appends every written line to the entry with a timestamp.
type logWriter struct {
	mu    sync.Mutex
	entry *widget.Entry
}

func newLogWriter(entry *widget.Entry) *logWriter {
	return &logWriter{entry: entry}
}

func (lw *logWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	timestamp := time.Now().Format("15:04:05")
	var sb strings.Builder
	sb.WriteString(lw.entry.Text)
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		fmt.Fprintf(&sb, "[%s] %s\n", timestamp, line)
	}
	lw.entry.SetText(sb.String())
	return len(p), nil
}

func generateKeys(logw io.Writer, paths store.Paths, lowerText, upperText, passphrase string) (*textrsa.Keys, error) {
	lower, err := strconv.ParseInt(strings.TrimSpace(lowerText), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("нижняя граница: %w", err)
	}
	upper, err := strconv.ParseInt(strings.TrimSpace(upperText), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("верхняя граница: %w", err)
	}

	cfg := textrsa.Config{Log: logw}
	if passphrase != "" {
		src, err := textrsa.PassphraseSource(passphrase, "textrsa")
		if err != nil {
			return nil, err
		}
		cfg.Rand = src
	}

	keys, err := textrsa.NewGenerator(cfg).Generate(lower, upper)
	if err != nil {
		return nil, err
	}
	if err := store.SaveKeys(paths, keys); err != nil {
		return nil, err
	}
	return keys, nil
}

func encodeText(paths store.Paths, msg string) (string, error) {
	pub, err := store.LoadPublicKey(paths.Public)
	if err != nil {
		return "", err
	}
	cm, err := store.LoadCharmap(paths.Charmap)
	if err != nil {
		return "", err
	}
	return textrsa.Encode(pub, cm, msg)
}

func decodeText(paths store.Paths, ct string) (string, error) {
	keys, err := store.LoadKeys(paths)
	if err != nil {
		return "", err
	}
	return textrsa.Decode(keys.Public, keys.Private, keys.Charmap, ct)
}
