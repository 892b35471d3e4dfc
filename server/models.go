package server

import "time"

type GenerateRequest struct {
	Lower int64 `json:"lower"`
	Upper int64 `json:"upper"`
}

type KeyInfo struct {
	Fingerprint string     `json:"fingerprint"`
	N           int64      `json:"n"`
	E           int64      `json:"e"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

type EncodeRequest struct {
	Fingerprint string `json:"fingerprint"`
	Message     string `json:"message"`
}

type EncodeResponse struct {
	Ciphertext string `json:"ciphertext"`
}

type DecodeRequest struct {
	Fingerprint string `json:"fingerprint"`
	Ciphertext  string `json:"ciphertext"`
}

type DecodeResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
