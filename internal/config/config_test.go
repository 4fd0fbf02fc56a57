package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/treerec/slimids/internal/config"
	"github.com/treerec/slimids/pkg/nodemap"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func Test_Load_ReturnsDefaults_When_NoFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cfg, err := config.Load(config.LoadInput{WorkDirOverride: dir, Env: map[string]string{}})
	require.NoError(t, err)

	want := config.Default()
	want.EffectiveCwd = dir

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}

	require.Equal(t, nodemap.LastWins, cfg.Policy())
}

func Test_Load_LayersSources_When_AllPresent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	xdg := t.TempDir()

	writeFile(t, filepath.Join(xdg, "slimids", "config.json"), `{
		// global picks text encoding and yaml
		"encoding": "text",
		"format": "yaml",
	}`)
	writeFile(t, filepath.Join(dir, config.FileName), `{"duplicates": "reject", "format": "json"}`)

	cfg, err := config.Load(config.LoadInput{
		WorkDirOverride: dir,
		Env:             map[string]string{"XDG_CONFIG_HOME": xdg},
	})
	require.NoError(t, err)

	want := config.Config{Encoding: "text", Duplicates: "reject", Format: "json"}
	if diff := cmp.Diff(want, cfg, cmpopts.IgnoreFields(config.Config{}, "EffectiveCwd", "Sources")); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}

	require.Equal(t, filepath.Join(xdg, "slimids", "config.json"), cfg.Sources.Global)
	require.Equal(t, filepath.Join(dir, config.FileName), cfg.Sources.Project)
	require.Equal(t, nodemap.Reject, cfg.Policy())
}

func Test_Load_AppliesOverrides_Last(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, config.FileName), `{"format": "json"}`)

	cfg, err := config.Load(config.LoadInput{
		WorkDirOverride: dir,
		Overrides:       config.Config{Format: "yaml"},
	})
	require.NoError(t, err)
	require.Equal(t, "yaml", cfg.Format)
}

func Test_Load_UsesHomeFallback_When_NoXDG(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	home := t.TempDir()
	writeFile(t, filepath.Join(home, ".config", "slimids", "config.json"), `{"encoding": "text"}`)

	cfg, err := config.Load(config.LoadInput{WorkDirOverride: dir, Env: map[string]string{"HOME": home}})
	require.NoError(t, err)
	require.Equal(t, "text", cfg.Encoding)
}

func Test_Load_ReturnsError_When_ConfigBad(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		project    string
		configFlag string
		overrides  config.Config
		wantErr    error
	}{
		{name: "invalid jsonc", project: `{"format": `, wantErr: config.ErrConfigInvalid},
		{name: "bad encoding in file", project: `{"encoding": "hex"}`, wantErr: config.ErrInvalidValue},
		{name: "bad policy override", overrides: config.Config{Duplicates: "first-wins"}, wantErr: config.ErrInvalidValue},
		{name: "bad format override", overrides: config.Config{Format: "csv"}, wantErr: config.ErrInvalidValue},
		{name: "explicit file missing", configFlag: "missing.json", wantErr: config.ErrConfigFileNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			if tc.project != "" {
				writeFile(t, filepath.Join(dir, config.FileName), tc.project)
			}

			_, err := config.Load(config.LoadInput{
				WorkDirOverride: dir,
				ConfigPath:      tc.configFlag,
				Overrides:       tc.overrides,
			})
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func Test_Load_ExplicitConfig_Replaces_ProjectFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, config.FileName), `{"format": "json"}`)
	writeFile(t, filepath.Join(dir, "alt.json"), `{"duplicates": "reject"}`)

	cfg, err := config.Load(config.LoadInput{WorkDirOverride: dir, ConfigPath: "alt.json"})
	require.NoError(t, err)
	require.Equal(t, "text", cfg.Format)
	require.Equal(t, "reject", cfg.Duplicates)
	require.Equal(t, filepath.Join(dir, "alt.json"), cfg.Sources.Project)
}

func Test_Format_Omits_Resolved_Fields(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.EffectiveCwd = "/somewhere"

	out, err := config.Format(cfg)
	require.NoError(t, err)
	require.Contains(t, out, `"encoding": "base64"`)
	require.NotContains(t, out, "somewhere")
}
