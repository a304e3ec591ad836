package provider

import (
	"net/http"
	"os"
	"os/exec"
	"strings"
)

// ProviderConfig holds provider credentials and transport.
type ProviderConfig struct {
	// GitHubToken is the optional GitHub personal access token.
	GitHubToken string
	// GitLabToken is the optional GitLab personal access token.
	GitLabToken string
	// HTTPClient replaces the default client when set.
	HTTPClient *http.Client
}

// NewProvider classifies url and creates the matching provider. Unsupported
// URLs fail before any request is made.
func NewProvider(url string, config ProviderConfig) (Provider, error) {
	kind, err := Classify(url)
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindGitLab:
		p := NewGitLabProviderWithToken(config.GitLabToken)
		if config.HTTPClient != nil {
			p.HTTPClient = config.HTTPClient
		}
		return p, nil
	default:
		p := NewGitHubProviderWithToken(config.GitHubToken)
		if config.HTTPClient != nil {
			p.HTTPClient = config.HTTPClient
		}
		return p, nil
	}
}

// Factory returns a provider constructor bound to config.
func (config ProviderConfig) Factory() func(url string) (Provider, error) {
	return func(url string) (Provider, error) {
		return NewProvider(url, config)
	}
}

// GetGitHubTokenFromEnv retrieves the GitHub token from environment variables.
// Checks GITHUB_TOKEN first, then falls back to GH_TOKEN.
func GetGitHubTokenFromEnv() string {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token
	}
	if token := os.Getenv("GH_TOKEN"); token != "" {
		return token
	}
	return ""
}

// GetGitHubToken retrieves the GitHub token from the environment, then from
// the gh CLI credential store.
func GetGitHubToken() string {
	if token := GetGitHubTokenFromEnv(); token != "" {
		return token
	}
	return ghAuthToken()
}

// ghAuthToken asks "gh auth token" when gh is installed; replaced in tests.
var ghAuthToken = func() string {
	if _, err := exec.LookPath("gh"); err != nil {
		return ""
	}
	output, err := exec.Command("gh", "auth", "token").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(output))
}

// GetGitLabTokenFromEnv retrieves the GitLab token from GITLAB_TOKEN.
func GetGitLabTokenFromEnv() string {
	return os.Getenv("GITLAB_TOKEN")
}
