package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ModeProduction, cfg.API.Mode)
	assert.Equal(t, "https://student-pro-1wgo.onrender.com", cfg.API.ResolveBaseURL())
	assert.Equal(t, IdentityBackendLocal, cfg.Identity.Backend)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("api:\n  mode: development\n  dev_url: http://localhost:9000/\nidentity:\n  backend: memory\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000", cfg.API.ResolveBaseURL())
	assert.Equal(t, IdentityBackendMemory, cfg.Identity.Backend)

	t.Setenv("STUDENTPRO_API_MODE", "production")
	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ModeProduction, cfg.API.Mode)
}

func TestLoadConfig_RejectsUnknownMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  mode: staging\n"), 0o600))

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "api.mode")
}

func TestResolveBaseURL_ExplicitOverride(t *testing.T) {
	c := APIConfig{Mode: ModeDevelopment, DevURL: "http://a", ProdURL: "http://b", BaseURL: "http://c/"}
	assert.Equal(t, "http://c", c.ResolveBaseURL())
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultAppConfig()
	cfg.API.Mode = ModeDevelopment
	cfg.Identity.Backend = IdentityBackendKeyring

	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ModeDevelopment, loaded.API.Mode)
	assert.Equal(t, IdentityBackendKeyring, loaded.Identity.Backend)
	assert.Equal(t, cfg.API.DevURL, loaded.API.DevURL)
}
