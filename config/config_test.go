package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadVariants(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	data := `variants:
  standard: {}
  cautious:
    single_roll: true
  massive:
    max_attacker_dice: 5
    max_defender_dice: 3
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	f, err := Load(path)
	require.NoError(t, err)

	t.Run("empty variant keeps defaults", func(t *testing.T) {
		rules, err := f.Rules("standard")
		require.NoError(t, err)
		require.Equal(t, 3, rules.MaxAttackDice)
		require.Equal(t, 2, rules.MaxDefendDice)
		require.False(t, rules.SingleRoll)
	})

	t.Run("single roll toggle", func(t *testing.T) {
		rules, err := f.Rules("cautious")
		require.NoError(t, err)
		require.True(t, rules.SingleRoll)
		require.Equal(t, 3, rules.MaxAttackDice)
	})

	t.Run("custom dice limits", func(t *testing.T) {
		rules, err := f.Rules("massive")
		require.NoError(t, err)
		require.Equal(t, 5, rules.MaxAttackDice)
		require.Equal(t, 3, rules.MaxDefendDice)
	})

	t.Run("unknown variant", func(t *testing.T) {
		_, err := f.Rules("nonexistent")
		require.ErrorContains(t, err, "nonexistent")
	})
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
