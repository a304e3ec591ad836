package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tacogips/tpy/internal/app"
	"github.com/tacogips/tpy/internal/config"
	"github.com/tacogips/tpy/internal/template/placeholder"
)

// treeRoot is the path prefix under which fixture repositories are served.
const treeRoot = "/acme/templates/tree/main"

// copyFixtureToTemp copies the fixture templates directory to a temp
// directory and returns the copy, so tests can modify the served tree.
func copyFixtureToTemp(t *testing.T) string {
	t.Helper()

	fixtureDir, err := filepath.Abs(filepath.Join("..", "fixtures", "templates"))
	require.NoError(t, err)
	destDir := filepath.Join(t.TempDir(), "templates")

	err = filepath.Walk(fixtureDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(fixtureDir, path)
		if err != nil {
			return err
		}
		destPath := filepath.Join(destDir, relPath)
		if info.IsDir() {
			return os.MkdirAll(destPath, 0755)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(destPath, data, 0644)
	})
	require.NoError(t, err)
	return destDir
}

// serveDir serves dir in the JSON shape of github.com tree pages below
// treeRoot.
func serveDir(t *testing.T, dir string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rel, ok := strings.CutPrefix(r.URL.Path, treeRoot)
		if !ok {
			http.NotFound(w, r)
			return
		}
		path := filepath.Join(dir, filepath.FromSlash(strings.Trim(rel, "/")))
		info, err := os.Stat(path)
		if err != nil {
			http.NotFound(w, r)
			return
		}

		if !info.IsDir() {
			data, err := os.ReadFile(path)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"payload": map[string]any{"blob": map[string]any{"rawLines": lines}},
			})
			return
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
		items := make([]map[string]string, 0, len(entries))
		for _, e := range entries {
			kind := "file"
			if e.IsDir() {
				kind = "directory"
			}
			items = append(items, map[string]string{"name": e.Name(), "contentType": kind})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"payload": map[string]any{"tree": map[string]any{"items": items}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

// rewriteTransport sends every request to target, keeping path and query.
type rewriteTransport struct {
	target *url.URL
}

func (rt rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.URL.Scheme = rt.target.Scheme
	r.URL.Host = rt.target.Host
	r.Host = rt.target.Host
	return http.DefaultTransport.RoundTrip(r)
}

// newWorkspace returns a workspace in a fresh project directory whose HTTP
// traffic goes to srv.
func newWorkspace(t *testing.T, srv *httptest.Server) *app.Workspace {
	t.Helper()
	target, err := url.Parse(srv.URL)
	require.NoError(t, err)

	cfg := config.DefaultConfig()
	cfg.Init.ExampleURL = "https://github.com" + treeRoot
	w := app.NewWorkspace(t.TempDir(), cfg)
	w.HTTPClient = &http.Client{Transport: rewriteTransport{target: target}}
	w.Online = func(context.Context) bool { return true }
	w.Engine = &placeholder.Engine{
		Now:     func() time.Time { return time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC) },
		GitName: func() string { return "Ada" },
	}
	return w
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
