package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Remote is a client for the REST key-value mirror. The read endpoint
// returns a JSON envelope whose result field holds the stored value as a
// string; the write endpoint takes the raw JSON value as the body. Both
// require a bearer token.
type Remote struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewRemote creates a mirror client for the given endpoint and token.
func NewRemote(baseURL, token string) *Remote {
	return &Remote{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type getEnvelope struct {
	Result string `json:"result"`
}

// get fetches the value stored under key. found=false means the mirror
// answered successfully but holds no value for the key.
func (r *Remote) get(ctx context.Context, key string) ([]byte, bool, error) {
	url := fmt.Sprintf("%s/get/%s", r.baseURL, key)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Authorization", "Bearer "+r.token)
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("remote get %s: unexpected status %d", key, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, err
	}

	var envelope getEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, false, fmt.Errorf("remote get %s: malformed envelope: %w", key, err)
	}
	if envelope.Result == "" {
		return nil, false, nil
	}
	return []byte(envelope.Result), true, nil
}

// set stores the JSON payload under key.
func (r *Remote) set(ctx context.Context, key string, value []byte) error {
	url := fmt.Sprintf("%s/set/%s", r.baseURL, key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(value))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+r.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("remote set %s: unexpected status %d", key, resp.StatusCode)
	}
	return nil
}
