// Package server exposes key generation, encoding and decoding over JSON/HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/txm073/rsa/store"
	"github.com/txm073/rsa/textrsa"
)

// KeyStore is the persistence the server needs; *store.Keyring implements it.
type KeyStore interface {
	Save(ctx context.Context, keys *textrsa.Keys) (string, error)
	Get(ctx context.Context, fingerprint string) (store.Record, error)
	List(ctx context.Context) ([]store.Record, error)
	RecordMessage(ctx context.Context, fingerprint, ciphertext string) error
}

// Server reads keys from its KeyStore on every request, so keys deleted by
// another process stop working at once.
type Server struct {
	store KeyStore
	out   io.Writer

	genMu sync.Mutex
	gen   *textrsa.Generator
}

// New returns a server backed by ks. gen is used for every generation request
// and is not shared with other goroutines. Console lines go to out (may be nil).
func New(ks KeyStore, gen *textrsa.Generator, out io.Writer) *Server {
	if out == nil {
		out = io.Discard
	}
	return &Server{
		store: ks,
		out:   out,
		gen:   gen,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /keys/generate", s.generateHandler)
	mux.HandleFunc("GET /keys", s.listHandler)
	mux.HandleFunc("POST /encode", s.encodeHandler)
	mux.HandleFunc("POST /decode", s.decodeHandler)
	return mux
}

func (s *Server) banner(title string) {
	fmt.Fprintln(s.out, "\n========================================")
	fmt.Fprintln(s.out, title)
	fmt.Fprintln(s.out, "========================================")
}

func (s *Server) keys(ctx context.Context, fingerprint string) (*textrsa.Keys, error) {
	rec, err := s.store.Get(ctx, fingerprint)
	if err != nil {
		return nil, err
	}
	return rec.Keys, nil
}

func (s *Server) generateHandler(w http.ResponseWriter, r *http.Request) {
	s.banner("Запрос на генерацию ключей")

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	fmt.Fprintln(s.out, "Диапазон:", req.Lower, "-", req.Upper)

	s.genMu.Lock()
	keys, err := s.gen.Generate(req.Lower, req.Upper)
	s.genMu.Unlock()
	if err != nil {
		fmt.Fprintln(s.out, "Ошибка:", err)
		writeError(w, statusFor(err), err)
		return
	}

	fp, err := s.store.Save(r.Context(), keys)
	if err != nil {
		fmt.Fprintln(s.out, "Ошибка:", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	fmt.Fprintln(s.out, "n =", keys.Public.N)
	fmt.Fprintln(s.out, "e =", keys.Public.E)
	fmt.Fprintln(s.out, "Отпечаток:", fp)

	writeJSON(w, http.StatusOK, KeyInfo{Fingerprint: fp, N: keys.Public.N, E: keys.Public.E})
}

func (s *Server) listHandler(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	infos := make([]KeyInfo, 0, len(records))
	for _, rec := range records {
		infos = append(infos, KeyInfo{
			Fingerprint: rec.Fingerprint,
			N:           rec.Keys.Public.N,
			E:           rec.Keys.Public.E,
			CreatedAt:   &rec.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, infos)
}

func (s *Server) encodeHandler(w http.ResponseWriter, r *http.Request) {
	s.banner("Запрос на шифрование")

	var req EncodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	keys, err := s.keys(r.Context(), req.Fingerprint)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	ct, err := textrsa.Encode(keys.Public, keys.Charmap, req.Message)
	if err != nil {
		fmt.Fprintln(s.out, "Ошибка:", err)
		writeError(w, statusFor(err), err)
		return
	}
	fmt.Fprintln(s.out, "Зашифрованное:", ct)

	if err := s.store.RecordMessage(r.Context(), req.Fingerprint, ct); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, EncodeResponse{Ciphertext: ct})
}

func (s *Server) decodeHandler(w http.ResponseWriter, r *http.Request) {
	s.banner("Запрос на расшифрование")

	var req DecodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	keys, err := s.keys(r.Context(), req.Fingerprint)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	msg, err := textrsa.Decode(keys.Public, keys.Private, keys.Charmap, req.Ciphertext)
	if err != nil {
		fmt.Fprintln(s.out, "Ошибка:", err)
		writeError(w, statusFor(err), err)
		return
	}
	fmt.Fprintln(s.out, "Расшифрованное:", msg)

	writeJSON(w, http.StatusOK, DecodeResponse{Message: msg})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrKeyNotFound):
		return http.StatusNotFound
	case errors.Is(err, textrsa.ErrInvalidRange),
		errors.Is(err, textrsa.ErrInvalidPrime),
		errors.Is(err, textrsa.ErrAlphabetTooLarge),
		errors.Is(err, textrsa.ErrUnmappedCharacter),
		errors.Is(err, textrsa.ErrUnmappedCode),
		errors.Is(err, textrsa.ErrMalformedCiphertext):
		return http.StatusBadRequest
	case errors.Is(err, textrsa.ErrSearchExhausted):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}
