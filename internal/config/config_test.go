package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("PORT", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultHost, cfg.Server.Host)
	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, DefaultDataDir, cfg.Storage.DataDir)
	assert.Equal(t, DefaultUploadsDir, cfg.Storage.UploadsDir)
	assert.Equal(t, DefaultProvider, cfg.AI.Provider)
	assert.Equal(t, "0.0.0.0:3000", cfg.Addr())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
host = "127.0.0.1"
port = 8080

[storage]
data_dir = "/var/lib/docchat"
uploads_dir = "/srv/uploads"

[ai]
provider = "ollama"
ollama_base_url = "http://ollama:11434"
ollama_model = "llama3.2"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Addr())
	assert.Equal(t, "/var/lib/docchat", cfg.Storage.DataDir)
	assert.Equal(t, "/srv/uploads", cfg.Storage.UploadsDir)
	assert.Equal(t, "ollama", cfg.AI.Provider)
	assert.Equal(t, "http://ollama:11434", cfg.AI.OllamaBaseURL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[ai]\nprovider = \"ollama\"\n"), 0600))

	t.Setenv("GEMINI_API_KEY", "key-123")
	t.Setenv("ADMIN_PASSWORD", "hunter2")
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("OLLAMA_BASE_URL", "http://localhost:9999")
	t.Setenv("PORT", "4000")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "key-123", cfg.AI.GeminiAPIKey)
	assert.Equal(t, "hunter2", cfg.Admin.Password)
	// Environment wins over the file.
	assert.Equal(t, "gemini", cfg.AI.Provider)
	assert.Equal(t, "http://localhost:9999", cfg.AI.OllamaBaseURL)
	assert.Equal(t, 4000, cfg.Server.Port)
}

func TestLoad_InvalidProvider(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "watson")

	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid ai provider")
}

func TestLoad_BadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not [valid toml"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}
