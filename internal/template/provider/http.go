package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/tacogips/tpy/internal/debug"
)

// maxResponseSize bounds a single API response.
const maxResponseSize = 32 << 20

// getJSON fetches url and decodes its JSON body into out. header is applied
// to the request when its value is non-empty.
func getJSON(ctx context.Context, client *http.Client, provider, url string, header http.Header, out any) error {
	debug.Debug("[provider] GET %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return NewFetchError(provider, url, err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range header {
		if len(v) > 0 && v[0] != "" {
			req.Header[k] = v
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return NewFetchError(provider, url, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return NewNotFoundError(provider, url)
	case http.StatusUnauthorized, http.StatusForbidden:
		return NewAuthError(provider, url)
	default:
		return NewFetchError(provider, url, fmt.Errorf("unexpected status code: %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return NewFetchError(provider, url, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return NewDecodeError(provider, url, "invalid JSON response", err)
	}
	return nil
}
