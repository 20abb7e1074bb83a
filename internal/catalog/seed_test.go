package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kylasweb/IOC-Spinwheel/internal/domain"
	"github.com/kylasweb/IOC-Spinwheel/internal/validation"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile_YAML(t *testing.T) {
	path := writeFile(t, "catalog.yaml", `
config:
  max_retries: 5
  enable_game: true
  daily_limit: 2
  odds:
    grand: 20
    try_again: 60
    droplets: 20
prizes:
  - id: cashback
    label: 10% Cashback
    category: GRAND
    text_color: "#ffffff"
  - label: Try Again
    category: TRY_AGAIN
`)

	seed, err := LoadFile(path, validation.NewSchemaValidator())
	require.NoError(t, err)

	assert.Equal(t, 5, seed.Config.MaxRetries)
	assert.Equal(t, 2, seed.Config.DailyLimit)
	assert.Equal(t, domain.Odds{Grand: 20, TryAgain: 60, Droplets: 20}, seed.Config.Odds)
	require.Len(t, seed.Prizes, 2)
	assert.Equal(t, "#ffffff", seed.Prizes[0].TextColor)
	assert.Equal(t, DefaultRewards(), seed.Rewards, "rewards default when omitted")
}

func TestLoadFile_JSONWithoutConfigUsesDefaults(t *testing.T) {
	path := writeFile(t, "catalog.json", `{"prizes":[{"label":"Try Again","category":"TRY_AGAIN"}]}`)

	seed, err := LoadFile(path, validation.NewSchemaValidator())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultGameConfig(), seed.Config)
}

func TestLoadFile_SchemaViolation(t *testing.T) {
	path := writeFile(t, "catalog.yaml", "prizes:\n  - label: x\n    category: JACKPOT\n")

	_, err := LoadFile(path, validation.NewSchemaValidator())
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "/prizes/0/category")
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}
