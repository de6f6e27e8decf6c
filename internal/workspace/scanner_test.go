package workspace

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kannan/lingora/internal/app"
	"github.com/kannan/lingora/internal/config"
)

// newProject lays out files (relative to a new temp dir) and returns the dir.
func newProject(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("# test\n"), 0644))
	}
	return root
}

func resolve(t *testing.T, root string, args config.Args) *config.Config {
	t.Helper()
	cfg, err := config.Resolve(root, args)
	require.NoError(t, err)
	return cfg
}

func TestScannerClassifiesDocuments(t *testing.T) {
	root := newProject(t,
		"i18n/en-GB/main.ftl",
		"i18n/en-GB/errors.ftl",
		"i18n/fr-FR/main.ftl",
		"i18n/fr-CA.ftl",
		"i18n/de/main.ftl",
		"i18n/misc.ftl",
		"i18n/README.md",
		"src/main.rs",
		"src/ui/lib.rs",
		"src/notes.txt",
	)
	cfg := resolve(t, root, config.Args{
		Canonical:   "en-GB",
		Primaries:   []string{"fr-FR", "it-IT"},
		RustSources: []string{"src"},
	})

	res, err := NewScanner().Execute(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, config.Locale("en-GB"), res.Canonical)
	assert.Equal(t, []config.Locale{"fr-FR", "it-IT"}, res.Primaries)
	assert.Equal(t, []Document{
		{Locale: "en-GB", Role: RoleCanonical, Files: []string{"i18n/en-GB/errors.ftl", "i18n/en-GB/main.ftl"}},
		{Locale: "fr-FR", Role: RolePrimary, Files: []string{"i18n/fr-FR/main.ftl"}},
		{Locale: "fr-CA", Role: RoleVariant, Files: []string{"i18n/fr-CA.ftl"}},
		{Locale: "de", Role: RoleOrphan, Files: []string{"i18n/de/main.ftl"}},
	}, res.Documents)
	assert.Equal(t, []string{"src/main.rs", "src/ui/lib.rs"}, res.RustFiles)

	kinds := make([]IssueKind, 0, len(res.Issues))
	for _, is := range res.Issues {
		kinds = append(kinds, is.Kind)
	}
	assert.Equal(t, []IssueKind{IssueUnknownLocale, IssueMissingBase, IssueUndefinedBase}, kinds)
	assert.Equal(t, "i18n/misc.ftl", res.Issues[0].Subject)
	assert.Equal(t, "it-IT", res.Issues[1].Subject)
	assert.Equal(t, "de", res.Issues[2].Subject)

	assert.False(t, res.OK())
	assert.Equal(t, 5, res.FileCount())
	assert.Len(t, res.DocumentsWithRole(RoleVariant), 1)
}

func TestScannerCleanWorkspace(t *testing.T) {
	root := newProject(t,
		"i18n/en/main.ftl",
		"i18n/fr/main.ftl",
	)
	cfg := resolve(t, root, config.Args{Canonical: "en", Primaries: []string{"fr"}})

	res, err := NewScanner().Execute(context.Background(), cfg)
	require.NoError(t, err)

	assert.True(t, res.OK())
	assert.Len(t, res.Documents, 2)
	assert.Empty(t, res.RustFiles)
}

func TestScannerSourcesOverlap(t *testing.T) {
	root := newProject(t,
		"i18n/en-GB/main.ftl",
		"i18n/it-IT.ftl",
	)
	one := 1
	cfg := resolve(t, root, config.Args{
		Canonical:     "en-GB",
		FluentSources: []string{"i18n", "i18n/en-GB", "i18n/it-IT.ftl"},
		Jobs:          &one,
	})

	res, err := NewScanner().Execute(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, []Document{
		{Locale: "en-GB", Role: RoleCanonical, Files: []string{"i18n/en-GB/main.ftl"}},
		{Locale: "it-IT", Role: RoleOrphan, Files: []string{"i18n/it-IT.ftl"}},
	}, res.Documents)
}

func TestScannerStopsWhenCancelled(t *testing.T) {
	root := newProject(t, "i18n/en/main.ftl")
	cfg := resolve(t, root, config.Args{Canonical: "en"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := NewScanner().Execute(ctx, cfg)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunWrapsFailures(t *testing.T) {
	root := newProject(t, "i18n/en/main.ftl")
	cfg := resolve(t, root, config.Args{Canonical: "en"})
	boom := errors.New("boom")

	tests := []struct {
		name string
		cfg  *config.Config
		exec Executor
	}{
		{
			name: "executor error",
			cfg:  cfg,
			exec: ExecutorFunc(func(context.Context, *config.Config) (*Result, error) { return nil, boom }),
		},
		{
			name: "no result",
			cfg:  cfg,
			exec: ExecutorFunc(func(context.Context, *config.Config) (*Result, error) { return nil, nil }),
		},
		{
			name: "no configuration",
			exec: NewScanner(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Run(context.Background(), tt.exec, tt.cfg)
			assert.Nil(t, res)

			var execErr *app.ExecutionError
			require.ErrorAs(t, err, &execErr)
			assert.Equal(t, app.ExitExecutionError, app.ExitCodeFor(err))
		})
	}
}

func TestRunPassesResultThrough(t *testing.T) {
	root := newProject(t, "i18n/en/main.ftl")
	cfg := resolve(t, root, config.Args{Canonical: "en"})

	res, err := Run(context.Background(), NewScanner(), cfg)
	require.NoError(t, err)
	assert.True(t, res.OK())
}

func TestRunKeepsCancellation(t *testing.T) {
	root := newProject(t, "i18n/en/main.ftl")
	cfg := resolve(t, root, config.Args{Canonical: "en"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, NewScanner(), cfg)
	assert.ErrorIs(t, err, context.Canceled)
}
