package app

import (
	"context"
	"net/http"
	"path/filepath"
	"time"

	"github.com/tacogips/tpy/internal/config"
	"github.com/tacogips/tpy/internal/netcheck"
	"github.com/tacogips/tpy/internal/template/placeholder"
	"github.com/tacogips/tpy/internal/template/provider"
	"github.com/tacogips/tpy/internal/template/store"
)

// Workspace is a project directory together with the collaborators every
// workflow needs.
type Workspace struct {
	// Dir is the project root. Templates generate relative to it.
	Dir string
	// Config is the loaded configuration.
	Config *config.Config
	// HTTPClient is used for provider requests and the network check.
	HTTPClient *http.Client
	// Engine resolves placeholders.
	Engine *placeholder.Engine
	// Online reports network availability. nil probes Config.Network.CheckURL.
	Online func(ctx context.Context) bool
	// NewProvider builds providers. nil uses the configured tokens.
	NewProvider func(url string) (provider.Provider, error)
}

// NewWorkspace creates a workspace rooted at dir. A nil cfg uses defaults.
func NewWorkspace(dir string, cfg *config.Config) *Workspace {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Workspace{
		Dir:    dir,
		Config: cfg,
		HTTPClient: &http.Client{
			Timeout: time.Duration(cfg.Network.TimeoutSeconds) * time.Second,
		},
		Engine: placeholder.NewEngine(),
	}
}

// TemplatesRoot returns the templates directory of the project.
func (w *Workspace) TemplatesRoot() string {
	if filepath.IsAbs(w.Config.TemplatesDir) {
		return w.Config.TemplatesDir
	}
	return filepath.Join(w.Dir, w.Config.TemplatesDir)
}

// Store returns the template store of the project.
func (w *Workspace) Store() *store.Store {
	return store.New(w.TemplatesRoot())
}

// Loader returns a remote loader writing into the project's store.
func (w *Workspace) Loader() *provider.Loader {
	newProvider := w.NewProvider
	if newProvider == nil {
		newProvider = w.providerConfig().Factory()
	}
	return &provider.Loader{Store: w.Store(), NewProvider: newProvider}
}

func (w *Workspace) providerConfig() provider.ProviderConfig {
	cfg := provider.ProviderConfig{
		GitHubToken: w.Config.GitHub.Token,
		GitLabToken: w.Config.GitLab.Token,
		HTTPClient:  w.HTTPClient,
	}
	if cfg.GitHubToken == "" {
		cfg.GitHubToken = provider.GetGitHubToken()
	}
	if cfg.GitLabToken == "" {
		cfg.GitLabToken = provider.GetGitLabTokenFromEnv()
	}
	return cfg
}

func (w *Workspace) networkAvailable(ctx context.Context) bool {
	if w.Online != nil {
		return w.Online(ctx)
	}
	return netcheck.Available(ctx, w.HTTPClient, w.Config.Network.CheckURL)
}

// requireNetwork fails with NetworkFailure when the network is unavailable.
func (w *Workspace) requireNetwork(ctx context.Context) error {
	if !w.networkAvailable(ctx) {
		return NewAppError(NetworkFailure, "you need an internet connection for this command", nil)
	}
	return nil
}
