package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacogips/tpy/internal/app"
	"github.com/tacogips/tpy/internal/template/model"
)

// testProject is a project directory with a config that never reaches the network.
type testProject struct {
	dir    string
	config string
}

func newTestProject(t *testing.T) *testProject {
	t.Helper()
	cfgDir := t.TempDir()
	cfg := filepath.Join(cfgDir, "config.toml")
	content := "[network]\ncheck_url = \"http://127.0.0.1:1\"\ntimeout_seconds = 1\n\n[output]\ncolor = false\n"
	require.NoError(t, os.WriteFile(cfg, []byte(content), 0644))
	return &testProject{dir: t.TempDir(), config: cfg}
}

// resetFlags restores every flag of cmd and its subcommands to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// run executes tpy in the project with stdin, returning stdout and stderr.
func (p *testProject) run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() {
		outWriter = os.Stdout
		errWriter = os.Stderr
		inReader = os.Stdin
		resetFlags(rootCmd)
	})

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--config", p.config, "-C", p.dir}, args...))
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func (p *testProject) writeTemplate(t *testing.T, name string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(p.dir, model.DefaultTemplatesDir, name, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func requireKind(t *testing.T, err error, want app.AppErrorType) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, want, app.KindOf(err), "error: %v", err)
}

func TestInitCommand(t *testing.T) {
	t.Run("offline", func(t *testing.T) {
		p := newTestProject(t)
		out, _, err := p.run(t, "", "init", "--offline")
		require.NoError(t, err)

		assert.FileExists(t, filepath.Join(p.dir, model.DefaultTemplatesDir, app.ReadmeFile))
		assert.Contains(t, out, "Skipped example templates: offline mode")
		assert.Contains(t, out, "tpy initialized")

		_, _, err = p.run(t, "", "init", "--offline")
		requireKind(t, err, app.AlreadyExists)
	})

	t.Run("blank", func(t *testing.T) {
		p := newTestProject(t)
		_, _, err := p.run(t, "", "i", "-b")
		require.NoError(t, err)
		assert.DirExists(t, filepath.Join(p.dir, model.DefaultTemplatesDir))
		assert.NoFileExists(t, filepath.Join(p.dir, model.DefaultTemplatesDir, app.ReadmeFile))
	})

	t.Run("no connection skips examples", func(t *testing.T) {
		p := newTestProject(t)
		out, _, err := p.run(t, "", "init")
		require.NoError(t, err)
		assert.Contains(t, out, "no internet connection")
	})

	t.Run("quiet", func(t *testing.T) {
		p := newTestProject(t)
		out, _, err := p.run(t, "", "-q", "init", "--offline")
		require.NoError(t, err)
		assert.Empty(t, out)
	})
}

func TestNewAndListCommands(t *testing.T) {
	p := newTestProject(t)
	_, _, err := p.run(t, "", "init", "--blank")
	require.NoError(t, err)

	_, _, err = p.run(t, "", "new", "component", "-d", "React component", "-p", "src/components")
	require.NoError(t, err)
	_, _, err = p.run(t, "", "new", "page")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(p.dir, model.DefaultTemplatesDir, "component", model.DescriptorYAMLFile))

	_, _, err = p.run(t, "", "new", "page")
	requireKind(t, err, app.AlreadyExists)

	out, _, err := p.run(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Available templates:")
	assert.Contains(t, out, "  component - React component\n")
	assert.Contains(t, out, "  page\n")

	out, _, err = p.run(t, "", "ls", "--name", "--path")
	require.NoError(t, err)
	assert.Contains(t, out, "  component [src/components]\n")
	assert.Contains(t, out, "  page [.]\n")
}

func TestListCommand_NotInitialized(t *testing.T) {
	p := newTestProject(t)
	_, _, err := p.run(t, "", "list")
	requireKind(t, err, app.NotInitialized)
}

func TestPlaceholderCommand(t *testing.T) {
	p := newTestProject(t)
	out, _, err := p.run(t, "", "placeholder")
	require.NoError(t, err)

	assert.Contains(t, out, "$$name$$")
	assert.Contains(t, out, "$$year$$")
	assert.Contains(t, out, ".kebab (.k)")
	assert.Contains(t, out, "my-new-name")
	assert.Contains(t, out, "MyNewName")
}

func TestGenerateCommand(t *testing.T) {
	p := newTestProject(t)
	_, _, err := p.run(t, "", "init", "--blank")
	require.NoError(t, err)
	p.writeTemplate(t, "doc", map[string]string{
		".templify":   "path:docs\nvar:author\nvar:kind[guide,reference]\n",
		"$$name$$.md": "# $$name.train$$ by $$author$$ ($$kind$$)\n",
	})
	target := filepath.Join(p.dir, "docs", "getting-started.md")

	t.Run("dry run writes nothing", func(t *testing.T) {
		out, _, err := p.run(t, "", "generate", "doc", "getting-started", "--var", "author=Jane,kind=guide", "--dry-run")
		require.NoError(t, err)
		assert.Contains(t, out, "would create")
		assert.Contains(t, out, "No files were written.")
		assert.NoFileExists(t, target)
	})

	t.Run("prompted values", func(t *testing.T) {
		out, _, err := p.run(t, "Jane\n2\n", "g", "do", "getting-started")
		require.NoError(t, err)
		assert.Contains(t, out, "Enter value for author:")
		assert.Contains(t, out, "  2) reference")
		data, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, "# Getting-Started by Jane (reference)\n", string(data))
	})

	t.Run("conflict without force", func(t *testing.T) {
		_, _, err := p.run(t, "", "generate", "doc", "getting-started", "-D")
		requireKind(t, err, app.AlreadyExists)
	})

	t.Run("force overwrites", func(t *testing.T) {
		out, _, err := p.run(t, "", "generate", "doc", "getting-started", "-D", "-f")
		require.NoError(t, err)
		assert.Contains(t, out, "1 file overwritten")
	})

	t.Run("closed input leaves values missing", func(t *testing.T) {
		_, _, err := p.run(t, "", "generate", "doc", "other")
		requireKind(t, err, app.MissingValue)
	})

	t.Run("strict", func(t *testing.T) {
		_, _, err := p.run(t, "", "generate", "do", "other", "-D", "--strict")
		requireKind(t, err, app.NotFound)
	})

	t.Run("argument count", func(t *testing.T) {
		_, _, err := p.run(t, "", "generate", "doc")
		require.Error(t, err)
	})
}

func TestLoadCommands(t *testing.T) {
	p := newTestProject(t)
	_, _, err := p.run(t, "", "init", "--blank")
	require.NoError(t, err)

	_, _, err = p.run(t, "", "load", "https://example.com/o/r")
	requireKind(t, err, app.UnsupportedProvider)

	_, _, err = p.run(t, "", "load", "https://github.com/o/r/tree/main/templates")
	requireKind(t, err, app.NetworkFailure)

	_, _, err = p.run(t, "", "reload")
	requireKind(t, err, app.NetworkFailure)
}

func TestPrintError(t *testing.T) {
	var stderr bytes.Buffer
	errWriter = &stderr
	globalNoColor = true
	t.Cleanup(func() {
		errWriter = os.Stderr
		globalNoColor = false
	})

	printError(app.NewAppError(app.NotFound, "template x not found", nil))
	printError(errors.New("boom"))

	assert.Equal(t, "✗ template x not found (NotFound)\n✗ boom\n", stderr.String())
}

// TestVersionCommand tests version command output
func TestVersionCommand(t *testing.T) {
	Version = "1.0.0-test"
	GitCommit = "abc123"
	BuildDate = "2026-10-18"
	p := newTestProject(t)

	t.Run("normal output", func(t *testing.T) {
		out, _, err := p.run(t, "", "version")
		require.NoError(t, err)
		assert.Contains(t, out, "tpy version 1.0.0-test\n")
		assert.Contains(t, out, "Commit: abc123\n")
	})

	t.Run("short output", func(t *testing.T) {
		out, _, err := p.run(t, "", "version", "--short")
		require.NoError(t, err)
		assert.Equal(t, "1.0.0-test\n", out)
	})

	t.Run("JSON output", func(t *testing.T) {
		out, _, err := p.run(t, "", "version", "--json")
		require.NoError(t, err)
		var info VersionInfo
		require.NoError(t, json.Unmarshal([]byte(out), &info))
		assert.Equal(t, "2026-10-18", info.BuildDate)
	})
}

func TestPluralize(t *testing.T) {
	tests := []struct {
		n    int
		word string
		want string
	}{
		{0, "file", "0 files"},
		{1, "file", "1 file"},
		{3, "template", "3 templates"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, pluralize(tt.n, tt.word))
		})
	}
}
