// Package netcheck probes whether remote templates can be reached.
package netcheck

import (
	"context"
	"net/http"

	"github.com/tacogips/tpy/internal/debug"
)

// Available reports whether a GET of url succeeds with any status below 500.
// A nil client uses http.DefaultClient.
func Available(ctx context.Context, client *http.Client, url string) bool {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		debug.Debug("[netcheck] Invalid check URL %q: %v", url, err)
		return false
	}

	resp, err := client.Do(req)
	if err != nil {
		debug.Debug("[netcheck] %s unreachable: %v", url, err)
		return false
	}
	defer resp.Body.Close()

	debug.Debug("[netcheck] %s responded %d", url, resp.StatusCode)
	return resp.StatusCode < http.StatusInternalServerError
}
