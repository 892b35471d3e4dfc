package store

import (
	"fmt"
	"os"

	"github.com/txm073/rsa/textrsa"
)

// Default file names used by the original tool.
const (
	DefaultPublicFile  = "public.rsa"
	DefaultPrivateFile = "private.rsa"
	DefaultCharmapFile = "charmaps.rsa"
)

func SavePublicKey(path string, pub textrsa.PublicKey) error {
	return os.WriteFile(path, []byte(FormatPublicKey(pub)), 0o644)
}

func LoadPublicKey(path string) (textrsa.PublicKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return textrsa.PublicKey{}, err
	}
	pub, err := ParsePublicKey(string(data))
	if err != nil {
		return textrsa.PublicKey{}, fmt.Errorf("%s: %w", path, err)
	}
	return pub, nil
}

func SavePrivateKey(path string, priv textrsa.PrivateKey) error {
	return os.WriteFile(path, []byte(FormatPrivateKey(priv)), 0o600)
}

func LoadPrivateKey(path string) (textrsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return textrsa.PrivateKey{}, err
	}
	priv, err := ParsePrivateKey(string(data))
	if err != nil {
		return textrsa.PrivateKey{}, fmt.Errorf("%s: %w", path, err)
	}
	return priv, nil
}

func SaveCharmap(path string, cm *textrsa.Charmap) error {
	return os.WriteFile(path, []byte(FormatCharmap(cm)), 0o644)
}

func LoadCharmap(path string) (*textrsa.Charmap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cm, err := ParseCharmap(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cm, nil
}

type Paths struct {
	Public  string
	Private string
	Charmap string
}

func DefaultPaths() Paths {
	return Paths{
		Public:  DefaultPublicFile,
		Private: DefaultPrivateFile,
		Charmap: DefaultCharmapFile,
	}
}

func SaveKeys(paths Paths, keys *textrsa.Keys) error {
	if err := SaveCharmap(paths.Charmap, keys.Charmap); err != nil {
		return err
	}
	if err := SavePublicKey(paths.Public, keys.Public); err != nil {
		return err
	}
	return SavePrivateKey(paths.Private, keys.Private)
}

// LoadKeys leaves P and Q zero.
func LoadKeys(paths Paths) (*textrsa.Keys, error) {
	pub, err := LoadPublicKey(paths.Public)
	if err != nil {
		return nil, err
	}
	priv, err := LoadPrivateKey(paths.Private)
	if err != nil {
		return nil, err
	}
	cm, err := LoadCharmap(paths.Charmap)
	if err != nil {
		return nil, err
	}
	return &textrsa.Keys{Public: pub, Private: priv, Charmap: cm}, nil
}
