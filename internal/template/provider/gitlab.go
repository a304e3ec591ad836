package provider

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// GitLabProvider reads repository trees through the GitLab REST API. File
// content is fetched separately per blob, base64-encoded.
type GitLabProvider struct {
	// HTTPClient is the HTTP client for API requests.
	HTTPClient *http.Client
	// Token is the optional GitLab personal access token.
	Token string
}

// NewGitLabProvider creates a new GitLab provider.
func NewGitLabProvider() *GitLabProvider {
	return &GitLabProvider{
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewGitLabProviderWithToken creates a new GitLab provider with authentication.
func NewGitLabProviderWithToken(token string) *GitLabProvider {
	p := NewGitLabProvider()
	p.Token = token
	return p
}

// Name returns the provider name.
func (p *GitLabProvider) Name() string {
	return KindGitLab.String()
}

type gitLabTreeItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type gitLabBlobResponse struct {
	Content  *string `json:"content"`
	Encoding string  `json:"encoding"`
}

func (p *GitLabProvider) header() http.Header {
	h := http.Header{}
	if p.Token != "" {
		h.Set("PRIVATE-TOKEN", p.Token)
	}
	return h
}

// ListChildren lists the tree at url. Blob nodes point to
// <url before "/tree">/blobs/<id>.
func (p *GitLabProvider) ListChildren(ctx context.Context, url string) ([]RemoteNode, error) {
	var items []gitLabTreeItem
	if err := getJSON(ctx, p.HTTPClient, p.Name(), url, p.header(), &items); err != nil {
		return nil, err
	}

	base := blobBaseURL(url)
	nodes := make([]RemoteNode, 0, len(items))
	for _, item := range items {
		if item.Name == "" {
			continue
		}
		if item.Type == "tree" {
			child, err := queryChildURL(url, item.Name)
			if err != nil {
				return nil, NewDecodeError(p.Name(), url, "invalid entry URL", err)
			}
			nodes = append(nodes, RemoteNode{Name: item.Name, Kind: NodeDirectory, URL: child})
			continue
		}

		if base == "" {
			return nil, NewDecodeError(p.Name(), url, "URL has no /tree segment to derive blob URLs from", nil)
		}
		nodes = append(nodes, RemoteNode{
			Name:   item.Name,
			Kind:   NodeFile,
			URL:    fmt.Sprintf("%s/blobs/%s", base, item.ID),
			BlobID: item.ID,
		})
	}
	return nodes, nil
}

// ReadFile fetches and decodes a blob.
func (p *GitLabProvider) ReadFile(ctx context.Context, node RemoteNode) ([]byte, error) {
	var resp gitLabBlobResponse
	if err := getJSON(ctx, p.HTTPClient, p.Name(), node.URL, p.header(), &resp); err != nil {
		return nil, err
	}
	if resp.Content == nil || resp.Encoding != "base64" {
		return nil, NewDecodeError(p.Name(), node.URL,
			fmt.Sprintf("unsupported blob encoding %q", resp.Encoding), nil)
	}

	// The API wraps long base64 payloads.
	encoded := strings.NewReplacer("\n", "", "\r", "").Replace(*resp.Content)
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, NewDecodeError(p.Name(), node.URL, "invalid base64 content", err)
	}
	return data, nil
}
