package provider

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// GitHubProvider reads repository trees through github.com's JSON tree
// pages. Directory listings and file contents are both requested by path.
type GitHubProvider struct {
	// HTTPClient is the HTTP client for API requests.
	HTTPClient *http.Client
	// Token is the optional GitHub personal access token for private repos.
	Token string
}

// NewGitHubProvider creates a new GitHub provider.
func NewGitHubProvider() *GitHubProvider {
	return &GitHubProvider{
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewGitHubProviderWithToken creates a new GitHub provider with authentication.
func NewGitHubProviderWithToken(token string) *GitHubProvider {
	p := NewGitHubProvider()
	p.Token = token
	return p
}

// Name returns the provider name.
func (p *GitHubProvider) Name() string {
	return KindGitHub.String()
}

type gitHubTreeResponse struct {
	Payload struct {
		Tree *struct {
			Items []struct {
				Name        string `json:"name"`
				ContentType string `json:"contentType"`
			} `json:"items"`
		} `json:"tree"`
	} `json:"payload"`
}

type gitHubBlobResponse struct {
	Payload struct {
		Blob *struct {
			RawLines []string `json:"rawLines"`
		} `json:"blob"`
	} `json:"payload"`
}

func (p *GitHubProvider) header() http.Header {
	h := http.Header{}
	if p.Token != "" {
		h.Set("Authorization", "token "+p.Token)
	}
	return h
}

// ListChildren lists the directory at url.
func (p *GitHubProvider) ListChildren(ctx context.Context, url string) ([]RemoteNode, error) {
	var resp gitHubTreeResponse
	if err := getJSON(ctx, p.HTTPClient, p.Name(), url, p.header(), &resp); err != nil {
		return nil, err
	}
	if resp.Payload.Tree == nil {
		return nil, NewDecodeError(p.Name(), url, "response has no payload.tree", nil)
	}

	nodes := make([]RemoteNode, 0, len(resp.Payload.Tree.Items))
	for _, item := range resp.Payload.Tree.Items {
		if item.Name == "" {
			continue
		}
		child, err := childURL(url, item.Name)
		if err != nil {
			return nil, NewDecodeError(p.Name(), url, "invalid entry URL", err)
		}
		kind := NodeFile
		if item.ContentType == "directory" {
			kind = NodeDirectory
		}
		nodes = append(nodes, RemoteNode{Name: item.Name, Kind: kind, URL: child})
	}
	return nodes, nil
}

// ReadFile fetches the raw lines of a file and joins them.
func (p *GitHubProvider) ReadFile(ctx context.Context, node RemoteNode) ([]byte, error) {
	var resp gitHubBlobResponse
	if err := getJSON(ctx, p.HTTPClient, p.Name(), node.URL, p.header(), &resp); err != nil {
		return nil, err
	}
	if resp.Payload.Blob == nil {
		return nil, NewDecodeError(p.Name(), node.URL, "response has no payload.blob", nil)
	}

	lines := resp.Payload.Blob.RawLines
	if len(lines) == 0 {
		return []byte{}, nil
	}
	return []byte(strings.Join(lines, "\n") + "\n"), nil
}
