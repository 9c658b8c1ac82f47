package main

import (
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/profile-gallery/internal/config"
)

func TestResolveSettings_Defaults(t *testing.T) {
	t.Setenv(config.EnvAPIURL, "")
	t.Setenv(config.EnvPort, "")
	a := test.NewApp()
	defer a.Quit()

	s := resolveSettings(a.Preferences())

	assert.Equal(t, config.DefaultAPIURL, s.APIURL)
	assert.Equal(t, config.DefaultPort, s.Port)
}

func TestResolveSettings_PreferenceThenEnvironment(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	a.Preferences().SetString(config.PrefServerPort, "19001")

	t.Setenv(config.EnvAPIURL, "")
	t.Setenv(config.EnvPort, "")
	assert.Equal(t, "19001", resolveSettings(a.Preferences()).Port)

	t.Setenv(config.EnvAPIURL, "http://127.0.0.1:9999/api/")
	t.Setenv(config.EnvPort, "19002")
	s := resolveSettings(a.Preferences())
	assert.Equal(t, "http://127.0.0.1:9999/api/", s.APIURL)
	assert.Equal(t, "19002", s.Port)
}

func TestLoadEnvFile(t *testing.T) {
	t.Setenv(config.EnvPort, "")
	require.NoError(t, os.Unsetenv(config.EnvPort))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(config.EnvPort+"=19003\n"), config.FilePermUserRW))

	loadEnvFile(path)
	assert.Equal(t, "19003", os.Getenv(config.EnvPort))

	// Missing file is silently ignored.
	loadEnvFile(filepath.Join(t.TempDir(), "missing.env"))
}
