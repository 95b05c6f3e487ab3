package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{"ITEMS_API_URL", "ITEMS_API_TOKEN", "ITEMS_LOG_LEVEL", "ITEMS_THEME", "ITEMS_SERVE_ADDR"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	return home
}

func TestDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "classic", cfg.Theme)
	assert.Equal(t, "127.0.0.1:8787", cfg.Serve.Addr)
	assert.Equal(t, 100, cfg.Serve.RateLimitRPS)

	err = cfg.RequireAPI()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ITEMS_API_URL")
	assert.Contains(t, err.Error(), "ITEMS_API_TOKEN")
}

func TestEnv(t *testing.T) {
	isolate(t)
	t.Setenv("ITEMS_API_URL", " https://example.test/functions/v1/items-api ")
	t.Setenv("ITEMS_API_TOKEN", "Bearer abc")
	t.Setenv("ITEMS_SERVE_ADDR", ":9999")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "https://example.test/functions/v1/items-api", cfg.APIURL)
	assert.Equal(t, "abc", cfg.Token)
	assert.Equal(t, ":9999", cfg.Serve.Addr)
	assert.NoError(t, cfg.RequireAPI())
}

func TestDefaultConfigFile(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".items")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(
		"api_url: http://file.test\napi_token: from-file\ntheme: neon\n"), 0o600))

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "http://file.test", cfg.APIURL)
	assert.Equal(t, "from-file", cfg.Token)
	assert.Equal(t, "neon", cfg.Theme)

	t.Setenv("ITEMS_API_TOKEN", "from-env")
	cfg, err = Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Token)
}

func TestExplicitConfigFileAndFlags(t *testing.T) {
	isolate(t)
	p := filepath.Join(t.TempDir(), "items.toml")
	require.NoError(t, os.WriteFile(p, []byte("api_url = \"http://toml.test\"\napi_token = \"t\"\n\n[serve]\naddr = \":1\"\n"), 0o600))

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("api-url", "", "")
	fs.String("token", "", "")
	require.NoError(t, fs.Parse([]string{"--token", "flag-token"}))

	cfg, err := Load(p, fs)
	require.NoError(t, err)
	assert.Equal(t, "http://toml.test", cfg.APIURL)
	assert.Equal(t, "flag-token", cfg.Token)
	assert.Equal(t, ":1", cfg.Serve.Addr)
}

func TestMissingExplicitConfigFile(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestStripBearer(t *testing.T) {
	assert.Equal(t, "abc", stripBearer("Bearer abc"))
	assert.Equal(t, "abc", stripBearer("bearer   abc"))
	assert.Equal(t, "abc", stripBearer("abc"))
}

func TestCredentialsFileIsLastResort(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".items")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "credentials.json"), []byte(`{"token":"Bearer saved"}`), 0o600))

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "saved", cfg.Token)

	t.Setenv("ITEMS_API_TOKEN", "env")
	cfg, err = Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "env", cfg.Token)
}

func TestCorruptCredentialsFile(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".items")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "credentials.json"), []byte(`{`), 0o600))

	_, err := Load("", nil)
	assert.ErrorContains(t, err, "parse credentials")
}
