package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Client talks to a Server.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTP:    http.DefaultClient,
	}
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body bytes.Buffer
	if in != nil {
		if err := json.NewEncoder(&body).Encode(in); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e ErrorResponse
		json.NewDecoder(resp.Body).Decode(&e)
		return fmt.Errorf("%s %s: %s: %s", method, path, resp.Status, e.Error)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) Generate(ctx context.Context, lower, upper int64) (KeyInfo, error) {
	var info KeyInfo
	err := c.do(ctx, http.MethodPost, "/keys/generate", GenerateRequest{Lower: lower, Upper: upper}, &info)
	return info, err
}

func (c *Client) Keys(ctx context.Context) ([]KeyInfo, error) {
	var infos []KeyInfo
	err := c.do(ctx, http.MethodGet, "/keys", nil, &infos)
	return infos, err
}

func (c *Client) Encode(ctx context.Context, fingerprint, message string) (string, error) {
	var resp EncodeResponse
	err := c.do(ctx, http.MethodPost, "/encode", EncodeRequest{Fingerprint: fingerprint, Message: message}, &resp)
	return resp.Ciphertext, err
}

func (c *Client) Decode(ctx context.Context, fingerprint, ciphertext string) (string, error) {
	var resp DecodeResponse
	err := c.do(ctx, http.MethodPost, "/decode", DecodeRequest{Fingerprint: fingerprint, Ciphertext: ciphertext}, &resp)
	return resp.Message, err
}
