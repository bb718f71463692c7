package battle

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundDistributions(t *testing.T) {
	resolver := NewResolver(NewStandardRules())

	t.Run("one die each side", func(t *testing.T) {
		dist, err := resolver.Round(1, 1)

		require.NoError(t, err)
		require.Len(t, dist, 2)
		require.InDelta(t, 15.0/36, dist[Outcome{AttackerLosses: 0, DefenderLosses: 1}], 1e-12,
			"attacker needs a strictly higher die")
		require.InDelta(t, 21.0/36, dist[Outcome{AttackerLosses: 1, DefenderLosses: 0}], 1e-12,
			"ties go to the defender")
	})

	t.Run("three dice against two", func(t *testing.T) {
		dist, err := resolver.Round(3, 2)

		require.NoError(t, err)
		require.Len(t, dist, 3)
		require.InDelta(t, 2890.0/7776, dist[Outcome{AttackerLosses: 0, DefenderLosses: 2}], 1e-12)
		require.InDelta(t, 2275.0/7776, dist[Outcome{AttackerLosses: 2, DefenderLosses: 0}], 1e-12)
		require.InDelta(t, 2611.0/7776, dist[Outcome{AttackerLosses: 1, DefenderLosses: 1}], 1e-12)
	})

	t.Run("two dice against one", func(t *testing.T) {
		dist, err := resolver.Round(2, 1)

		require.NoError(t, err)
		require.InDelta(t, 125.0/216, dist[Outcome{AttackerLosses: 0, DefenderLosses: 1}], 1e-12)
		require.InDelta(t, 91.0/216, dist[Outcome{AttackerLosses: 1, DefenderLosses: 0}], 1e-12)
	})
}

func TestRoundInvariants(t *testing.T) {
	rules := NewStandardRules()
	resolver := NewResolver(rules)

	for a := 1; a <= rules.MaxAttackDice; a++ {
		for d := 1; d <= rules.MaxDefendDice; d++ {
			dist, err := resolver.Round(a, d)
			require.NoError(t, err)

			comparisons := min(a, d)
			sum := 0.0
			for outcome, p := range dist {
				require.Equal(t, comparisons, outcome.AttackerLosses+outcome.DefenderLosses,
					"losses must account for every comparison in a %dv%d round", a, d)
				require.GreaterOrEqual(t, p, 0.0)
				sum += p
			}
			require.InDelta(t, 1.0, sum, 1e-9, "%dv%d probabilities must sum to 1", a, d)
		}
	}
}

func TestRoundValidation(t *testing.T) {
	resolver := NewResolver(NewStandardRules())

	for name, dice := range map[string][2]int{
		"zero attacker dice":          {0, 1},
		"zero defender dice":          {1, 0},
		"attacker dice above maximum": {4, 2},
		"defender dice above maximum": {1, 3},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := resolver.Round(dice[0], dice[1])
			require.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestRoundCacheSharing(t *testing.T) {
	resolver := NewResolver(NewStandardRules())
	require.NoError(t, resolver.Precompute())

	// Concurrent reads against the warm cache must all see the same result
	var wg sync.WaitGroup
	results := make([]Distribution, 8)
	errs := make([]error, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = resolver.Round(3, 2)
		}(i)
	}
	wg.Wait()

	for i, dist := range results {
		require.NoError(t, errs[i])
		require.InDelta(t, 2890.0/7776, dist[Outcome{AttackerLosses: 0, DefenderLosses: 2}], 1e-12)
	}
}
