package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"tasktree/internal/config"
)

// writeConfig seeds a config file, creating parents as needed.
func writeConfig(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// isolatedEnv points XDG_CONFIG_HOME at an empty directory so the developer's
// real global config never leaks into a test.
func isolatedEnv(t *testing.T) []string {
	t.Helper()

	return []string{"XDG_CONFIG_HOME=" + t.TempDir()}
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	workDir := t.TempDir()

	cfg, sources, err := config.Load(workDir, "", config.Config{}, isolatedEnv(t))
	require.NoError(t, err)

	require.Equal(t, workDir, cfg.Root)
	require.Equal(t, []string{"#task"}, cfg.Tags)
	require.Empty(t, cfg.Tag)
	require.Equal(t, "*.md", cfg.Include)
	require.Contains(t, cfg.Exclude, "node_modules")
	require.Empty(t, sources.Global)
	require.Empty(t, sources.Project)
}

func TestLoadProjectConfigWithComments(t *testing.T) {
	t.Parallel()

	workDir := t.TempDir()
	writeConfig(t, filepath.Join(workDir, config.FileName), `{
		// track both kinds of documents
		"tags": ["#task", "#reminder"],
		"tag": "#reminder",
		"include": "*.markdown", // trailing comma next
	}`)

	cfg, sources, err := config.Load(workDir, "", config.Config{}, isolatedEnv(t))
	require.NoError(t, err)

	require.Equal(t, []string{"#task", "#reminder"}, cfg.Tags)
	require.Equal(t, "#reminder", cfg.Tag)
	require.Equal(t, "*.markdown", cfg.Include)
	require.Equal(t, filepath.Join(workDir, config.FileName), sources.Project)
}

func TestLoadPrecedence(t *testing.T) {
	t.Parallel()

	xdg := t.TempDir()
	writeConfig(t, filepath.Join(xdg, "tasktree", "config.json"), `{
		"tags": ["#global"],
		"include": "*.txt"
	}`)

	workDir := t.TempDir()
	writeConfig(t, filepath.Join(workDir, config.FileName), `{"tags": ["#project"]}`)

	overrides := config.Config{Tags: []string{"#cli"}}

	cfg, sources, err := config.Load(workDir, "", overrides, []string{"XDG_CONFIG_HOME=" + xdg})
	require.NoError(t, err)

	// CLI overrides beat the project file, which beats the global file;
	// untouched fields fall through to the lower layers.
	require.Equal(t, []string{"#cli"}, cfg.Tags)
	require.Equal(t, "*.txt", cfg.Include)
	require.NotEmpty(t, sources.Global)
	require.NotEmpty(t, sources.Project)
}

func TestLoadExplicitConfigPath(t *testing.T) {
	t.Parallel()

	workDir := t.TempDir()
	explicit := filepath.Join(t.TempDir(), "custom.json")
	writeConfig(t, explicit, `{"tags": ["#explicit"]}`)

	cfg, sources, err := config.Load(workDir, explicit, config.Config{}, isolatedEnv(t))
	require.NoError(t, err)

	require.Equal(t, []string{"#explicit"}, cfg.Tags)
	require.Equal(t, explicit, sources.Project)
}

func TestLoadValidation(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name    string
		content string
		wantErr error
	}{
		{"empty tags", `{"tags": [" ", ""]}`, config.ErrNoTags},
		{"active tag not in list", `{"tags": ["#task"], "tag": "#missing"}`, config.ErrUnknownTag},
		{"blank include", `{"include": " "}`, config.ErrNoInclude},
		{"broken json", `{"tags": [`, config.ErrConfigInvalid},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			workDir := t.TempDir()
			writeConfig(t, filepath.Join(workDir, config.FileName), tt.content)

			_, _, err := config.Load(workDir, "", config.Config{}, isolatedEnv(t))
			require.Error(t, err)
			require.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
		})
	}
}

func TestTagConfig(t *testing.T) {
	t.Parallel()

	cfg := config.Config{Tags: []string{" #task ", "", "#note"}, Tag: " #task "}

	tc := cfg.TagConfig()
	require.Equal(t, []string{"#task", "#note"}, tc.Tags)
	require.Equal(t, "#task", tc.Active)
	require.False(t, tc.Wildcard())

	cfg.Tag = ""
	require.True(t, cfg.TagConfig().Wildcard())
}
