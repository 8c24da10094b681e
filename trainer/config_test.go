package trainer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "trainer.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
gas_limit = 5000
seed = 42
families = ["arithmetic", "storage"]
max_push_bytes = 2
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, uint64(5000), cfg.GasLimit)
	require.Equal(t, int64(42), cfg.Seed)
	require.Equal(t, []string{"arithmetic", "storage"}, cfg.Families)
	require.Equal(t, 2, cfg.MaxPushBytes)
	// absent keys keep defaults
	require.Equal(t, DefaultConfig().Slots, cfg.Slots)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Parallel()
	write := func(body string) string {
		path := filepath.Join(t.TempDir(), "trainer.toml")
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		return path
	}

	_, err := LoadConfig(write("gas_limit = 0"))
	require.Error(t, err)

	_, err = LoadConfig(write("max_push_bytes = 40"))
	require.Error(t, err)

	_, err = LoadConfig(write(`families = ["nope"]`))
	require.Error(t, err)

	_, err = LoadConfig(write("gas_limit = {"))
	require.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Parallel()
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}
