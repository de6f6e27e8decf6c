package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kannan/lingora/internal/app"
	"github.com/kannan/lingora/internal/config"
	"github.com/kannan/lingora/internal/workspace"
)

// newProject creates a workspace with the given translation files.
func newProject(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "i18n"), 0755))
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("hello = Hello\n"), 0644))
	}
	return root
}

// countingExecutor records the configurations it is called with.
type countingExecutor struct {
	calls []*config.Config
	res   *workspace.Result
	err   error
}

func (e *countingExecutor) Execute(_ context.Context, cfg *config.Config) (*workspace.Result, error) {
	e.calls = append(e.calls, cfg)
	return e.res, e.err
}

type runResult struct {
	code   app.ExitCode
	stdout string
	stderr string
}

func run(t *testing.T, root string, exec workspace.Executor, args ...string) runResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Run(context.Background(), args, root, exec, &stdout, &stderr)
	return runResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestRunSuccess(t *testing.T) {
	root := newProject(t, "i18n/en-GB/main.ftl", "i18n/fr-FR/main.ftl")

	got := run(t, root, workspace.NewScanner(), "--canonical", "en-GB", "--primaries", "fr-FR")

	assert.Equal(t, app.ExitSuccess, got.code)
	assert.Contains(t, got.stdout, "Canonical:")
	assert.Contains(t, got.stdout, "No issues found.")
	assert.Empty(t, got.stderr)
}

func TestRunIssuesFound(t *testing.T) {
	root := newProject(t, "i18n/en-GB/main.ftl")

	got := run(t, root, workspace.NewScanner(), "--canonical", "en-GB", "--primaries", "fr-FR")

	assert.Equal(t, app.ExitIssuesFound, got.code)
	assert.Contains(t, got.stdout, "missing_base")
	assert.Contains(t, got.stderr, app.ErrIssuesFound.Error())
}

func TestRunExitCodes(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		want       app.ExitCode
		wantStderr string
	}{
		{
			name:       "no arguments and no config file",
			args:       nil,
			want:       app.ExitValidationError,
			wantStderr: "canonical: a canonical locale is required",
		},
		{
			name:       "unknown flag",
			args:       []string{"--canonical", "en", "--bogus"},
			want:       app.ExitUsageError,
			wantStderr: "unknown flag: --bogus",
		},
		{
			name:       "missing flag value",
			args:       []string{"--canonical"},
			want:       app.ExitUsageError,
			wantStderr: "Usage:",
		},
		{
			name:       "malformed number",
			args:       []string{"--canonical", "en", "--jobs", "many"},
			want:       app.ExitUsageError,
			wantStderr: "--jobs",
		},
		{
			name:       "positional argument",
			args:       []string{"--canonical", "en", "extra"},
			want:       app.ExitUsageError,
			wantStderr: `unknown command or argument "extra"`,
		},
		{
			name:       "unknown output format",
			args:       []string{"--canonical", "en", "--output", "xml"},
			want:       app.ExitUsageError,
			wantStderr: "must be one of",
		},
		{
			name:       "every violation listed",
			args:       []string{"--canonical", "!!", "--primaries", "??", "--jobs", "0", "--fluent-sources", "nope"},
			want:       app.ExitValidationError,
			wantStderr: "fluent-sources: path does not exist",
		},
		{
			name:       "explicit zero jobs",
			args:       []string{"--canonical", "en", "--jobs", "0"},
			want:       app.ExitValidationError,
			wantStderr: "jobs: jobs must be between 1 and 64, got 0",
		},
		{
			name:       "zero jobs in config show",
			args:       []string{"config", "show", "--canonical", "en-GB", "--jobs", "0"},
			want:       app.ExitValidationError,
			wantStderr: "jobs must be between 1 and 64",
		},
		{
			name:       "mutually exclusive locales",
			args:       []string{"--canonical", "en-GB", "--primaries", "en-GB"},
			want:       app.ExitValidationError,
			wantStderr: "canonical, primaries:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newProject(t)
			exec := &countingExecutor{res: &workspace.Result{}}

			got := run(t, root, exec, tt.args...)

			assert.Equal(t, tt.want, got.code)
			assert.Contains(t, got.stderr, tt.wantStderr)
			assert.Empty(t, got.stdout)
			assert.Empty(t, exec.calls, "executor must not run for invalid input")
		})
	}
}

func TestRunExecutionError(t *testing.T) {
	root := newProject(t)
	exec := &countingExecutor{err: errors.New("disk on fire")}

	got := run(t, root, exec, "--canonical", "en")

	assert.Equal(t, app.ExitExecutionError, got.code)
	assert.Contains(t, got.stderr, "execution failed: disk on fire")
	assert.Empty(t, got.stdout)
}

func TestRunCallsExecutorOnceWithResolvedConfig(t *testing.T) {
	root := newProject(t)
	exec := &countingExecutor{res: &workspace.Result{}}

	got := run(t, root, exec, "--canonical", "en-gb", "--primaries", "fr-FR,it-IT", "--jobs", "2")

	require.Equal(t, app.ExitSuccess, got.code, got.stderr)
	require.Len(t, exec.calls, 1)
	cfg := exec.calls[0]
	assert.Equal(t, config.Locale("en-GB"), cfg.Canonical())
	assert.Equal(t, []config.Locale{"fr-FR", "it-IT"}, cfg.Primaries())
	assert.Equal(t, 2, cfg.Jobs())
}

func TestRunOutputFormats(t *testing.T) {
	root := newProject(t, "i18n/en/main.ftl")

	t.Run("json", func(t *testing.T) {
		got := run(t, root, workspace.NewScanner(), "--canonical", "en", "-o", "json")
		require.Equal(t, app.ExitSuccess, got.code, got.stderr)

		var res workspace.Result
		require.NoError(t, json.Unmarshal([]byte(got.stdout), &res))
		assert.Equal(t, config.Locale("en"), res.Canonical)
		require.Len(t, res.Documents, 1)
		assert.Equal(t, []string{"i18n/en/main.ftl"}, res.Documents[0].Files)
	})

	t.Run("yaml", func(t *testing.T) {
		got := run(t, root, workspace.NewScanner(), "--canonical", "en", "--output", "yaml")
		require.Equal(t, app.ExitSuccess, got.code, got.stderr)
		assert.Contains(t, got.stdout, "canonical: en\n")
	})

	t.Run("silent", func(t *testing.T) {
		got := run(t, root, workspace.NewScanner(), "--canonical", "en", "--output", "silent")
		assert.Equal(t, app.ExitSuccess, got.code)
		assert.Empty(t, got.stdout)
	})
}

func TestRunWithConfigFile(t *testing.T) {
	root := newProject(t, "translations/en-GB.ftl", "translations/fr-FR.ftl")
	require.NoError(t, os.WriteFile(filepath.Join(root, "Lingora.toml"), []byte(`
[lingora]
fluent_sources = ["translations"]
canonical = "en-GB"
primaries = ["fr-FR"]
`), 0644))

	got := run(t, root, workspace.NewScanner())

	assert.Equal(t, app.ExitSuccess, got.code, got.stderr)
	assert.Contains(t, got.stdout, "translations/fr-FR.ftl")
}

func TestVersionCommand(t *testing.T) {
	root := newProject(t)

	got := run(t, root, workspace.NewScanner(), "version")
	assert.Equal(t, app.ExitSuccess, got.code)
	assert.Equal(t, "Lingora v"+app.Version+"\n", got.stdout)

	got = run(t, root, workspace.NewScanner(), "version", "--verbose")
	assert.Equal(t, app.ExitSuccess, got.code)
	assert.Contains(t, got.stdout, "Commit:")
}

func TestConfigShow(t *testing.T) {
	root := newProject(t)

	got := run(t, root, workspace.NewScanner(), "config", "show", "--canonical", "en-GB", "--primaries", "fr-FR", "--format", "yaml")

	require.Equal(t, app.ExitSuccess, got.code, got.stderr)
	assert.Contains(t, got.stdout, "canonical: en-GB")
	assert.Contains(t, got.stdout, "- fr-FR")

	got = run(t, root, workspace.NewScanner(), "config", "show", "--canonical", "en-GB", "--format", "xml")
	assert.Equal(t, app.ExitUsageError, got.code)
	assert.Empty(t, got.stdout)
}

func TestConfigValidate(t *testing.T) {
	root := newProject(t)

	got := run(t, root, workspace.NewScanner(), "config", "validate", "--canonical", "en-GB")
	assert.Equal(t, app.ExitSuccess, got.code)
	assert.Contains(t, got.stdout, "Configuration is valid")

	got = run(t, root, workspace.NewScanner(), "config", "validate")
	assert.Equal(t, app.ExitValidationError, got.code)
	assert.Empty(t, got.stdout)
	assert.Contains(t, got.stderr, "Configuration has errors:")
}

func TestRunWarningsOnlyWhenVerbose(t *testing.T) {
	root := newProject(t, "i18n/en/main.ftl")

	got := run(t, root, workspace.NewScanner(), "--canonical", "en")
	require.Equal(t, app.ExitSuccess, got.code, got.stderr)
	assert.Empty(t, got.stderr)

	got = run(t, root, workspace.NewScanner(), "--canonical", "en", "--verbose")
	require.Equal(t, app.ExitSuccess, got.code, got.stderr)
	assert.Contains(t, got.stderr, "no primary locales configured")
}
