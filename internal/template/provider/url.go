package provider

import (
	"net/url"
	"path"
	"strings"
)

// Kind identifies a supported hosting provider.
type Kind int

const (
	KindGitHub Kind = iota
	KindGitLab
)

// String returns the provider name.
func (k Kind) String() string {
	switch k {
	case KindGitHub:
		return "github"
	case KindGitLab:
		return "gitlab"
	default:
		return "unknown"
	}
}

const (
	gitHubPrefix = "https://github.com"
	gitLabPrefix = "https://gitlab.com"
)

// Classify selects the provider for a URL. Anything but a GitHub or GitLab
// https URL fails with ProviderUnsupported.
func Classify(rawURL string) (Kind, error) {
	rawURL = strings.TrimSpace(rawURL)
	switch {
	case strings.HasPrefix(rawURL, gitHubPrefix):
		return KindGitHub, nil
	case strings.HasPrefix(rawURL, gitLabPrefix):
		return KindGitLab, nil
	default:
		return 0, NewUnsupportedError(rawURL)
	}
}

// TemplateNameFromURL returns the last path element of a remote directory
// URL. GitLab API URLs carry the directory in their "path" query parameter.
func TemplateNameFromURL(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	if p := u.Query().Get("path"); p != "" {
		return path.Base(strings.TrimSuffix(p, "/"))
	}
	trimmed := strings.TrimSuffix(u.Path, "/")
	if trimmed == "" {
		return ""
	}
	return path.Base(trimmed)
}

// childURL returns the URL of entry name inside the directory at rawURL.
func childURL(rawURL, name string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	return u.JoinPath(name).String(), nil
}

// queryChildURL is childURL for APIs addressing directories through a
// "path" query parameter.
func queryChildURL(rawURL, name string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	if p := strings.TrimSuffix(q.Get("path"), "/"); p != "" {
		q.Set("path", p+"/"+name)
	} else {
		q.Set("path", name)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// blobBaseURL returns the part of a GitLab tree URL before "/tree".
func blobBaseURL(rawURL string) string {
	base, _, found := strings.Cut(rawURL, "/tree")
	if !found {
		return ""
	}
	return base
}
