package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DREVLEGRAD_IDENTITY_PATH", "/tmp/drevlegrad-id")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.Server.URL)
	assert.Equal(t, 3*time.Second, cfg.Chat.PollInterval)
	assert.Equal(t, 500*time.Millisecond, cfg.Chat.LongPress)
	assert.Equal(t, 10*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, "/tmp/drevlegrad-id", cfg.Identity.Path)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "client.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  url: http://chat.example:9000
chat:
  poll_interval: 1s
identity:
  path: /var/lib/drevlegrad/id
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://chat.example:9000", cfg.Server.URL)
	assert.Equal(t, time.Second, cfg.Chat.PollInterval)
	assert.Equal(t, 500*time.Millisecond, cfg.Chat.LongPress)
	assert.Equal(t, "/var/lib/drevlegrad/id", cfg.Identity.Path)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "client.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  url: http://file\n"), 0o600))
	t.Setenv("DREVLEGRAD_SERVER_URL", "http://env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://env", cfg.Server.URL)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Config{
		Server: ServerConfig{URL: "http://x"},
		Chat:   ChatConfig{PollInterval: time.Second, LongPress: time.Millisecond},
	}
	assert.NoError(t, cfg.Validate())

	cfg.Chat.PollInterval = 0
	assert.Error(t, cfg.Validate())
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
