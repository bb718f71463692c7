package battle

import (
	"fmt"
	"sort"
	"sync"
)

const diceFaces = 6

// Outcome is the loss pair produced by a single round of combat.
type Outcome struct {
	AttackerLosses int
	DefenderLosses int
}

// Distribution maps round outcomes to their exact probability. Treat as
// read-only: Resolver hands out shared cached maps.
type Distribution map[Outcome]float64

// Resolver computes exact single-round loss distributions by enumerating
// every joint dice roll. Results depend only on the dice counts, so they are
// cached per (attacker dice, defender dice) pair. Safe for concurrent use.
type Resolver struct {
	mu    sync.RWMutex
	rules Rules
	cache map[[2]int]Distribution
}

func NewResolver(rules Rules) *Resolver {
	return &Resolver{
		rules: rules,
		cache: make(map[[2]int]Distribution),
	}
}

// Round returns the loss distribution for one round where the attacker rolls
// attackerDice and the defender rolls defenderDice.
func (r *Resolver) Round(attackerDice, defenderDice int) (Distribution, error) {
	if limit := r.rules.AttackerDiceLimit(); attackerDice < 1 || attackerDice > limit {
		return nil, fmt.Errorf("%w: attackerDice must be between 1 and %d, got %d",
			ErrInvalidArgument, limit, attackerDice)
	}
	if limit := r.rules.DefenderDiceLimit(); defenderDice < 1 || defenderDice > limit {
		return nil, fmt.Errorf("%w: defenderDice must be between 1 and %d, got %d",
			ErrInvalidArgument, limit, defenderDice)
	}

	key := [2]int{attackerDice, defenderDice}
	r.mu.RLock()
	dist, ok := r.cache[key]
	r.mu.RUnlock()
	if ok {
		return dist, nil
	}

	// Races recompute the same pure result; last write wins harmlessly.
	dist = r.enumerate(attackerDice, defenderDice)
	r.mu.Lock()
	r.cache[key] = dist
	r.mu.Unlock()
	return dist, nil
}

// Precompute fills the cache for every legal dice-count pair.
func (r *Resolver) Precompute() error {
	for a := 1; a <= r.rules.AttackerDiceLimit(); a++ {
		for d := 1; d <= r.rules.DefenderDiceLimit(); d++ {
			if _, err := r.Round(a, d); err != nil {
				return err
			}
		}
	}
	return nil
}

// enumerate walks all diceFaces^(attackerDice+defenderDice) equally likely
// joint rolls and aggregates the loss pair of each.
func (r *Resolver) enumerate(attackerDice, defenderDice int) Distribution {
	total := attackerDice + defenderDice
	weight := 1.0 / float64(intPow(diceFaces, total))

	rolls := make([]int, total)
	for i := range rolls {
		rolls[i] = 1
	}
	attacker := make([]int, attackerDice)
	defender := make([]int, defenderDice)

	dist := make(Distribution)
	for {
		copy(attacker, rolls[:attackerDice])
		copy(defender, rolls[attackerDice:])
		sort.Sort(sort.Reverse(sort.IntSlice(attacker)))
		sort.Sort(sort.Reverse(sort.IntSlice(defender)))

		aLosses, dLosses := r.rules.ResolveDice(attacker, defender)
		dist[Outcome{AttackerLosses: aLosses, DefenderLosses: dLosses}] += weight

		// Advance the odometer of dice values
		i := 0
		for ; i < total; i++ {
			if rolls[i] < diceFaces {
				rolls[i]++
				break
			}
			rolls[i] = 1
		}
		if i == total {
			return dist
		}
	}
}

func intPow(base, exp int) int {
	result := 1
	for i := 0; i < exp; i++ {
		result *= base
	}
	return result
}
