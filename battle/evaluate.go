package battle

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
)

// massTolerance is the allowed drift of the summed outcome probabilities
// from 1 before a diagnostic is logged.
const massTolerance = 1e-6

// State is the number of troops remaining on each side mid-battle.
type State struct {
	Attackers int
	Defenders int
}

// Terminal reports whether combat can continue from this state.
func (s State) Terminal() bool {
	return s.Attackers == 0 || s.Defenders == 0
}

// Result is the exact outcome distribution of a whole battle. Draw carries
// any mass on the (0,0) state; it is zero under the standard rule set but is
// never folded into either side's win probability.
type Result struct {
	Outcomes    map[State]float64
	AttackerWin float64
	DefenderWin float64
	Draw        float64
}

// Evaluator computes whole-battle outcome distributions under a fixed rule
// set. It is pure and safe for concurrent use; round distributions are
// cached across calls.
type Evaluator struct {
	rules    Rules
	resolver *Resolver
}

func NewEvaluator(rules Rules) *Evaluator {
	return &Evaluator{
		rules:    rules,
		resolver: NewResolver(rules),
	}
}

// Evaluate resolves the full elimination tree from the given starting troop
// counts and returns the probability of every terminal state.
//
// Each round removes at least one unit from the battlefield, so states are
// swept by descending total remaining troops: every state is expanded at
// most once after all mass flowing into it has accumulated, which keeps the
// whole computation iterative and O(attackers * defenders) state expansions.
func (e *Evaluator) Evaluate(attackers, defenders int) (*Result, error) {
	if attackers < 1 {
		return nil, fmt.Errorf("%w: attackers must be at least 1, got %d", ErrInvalidArgument, attackers)
	}
	if defenders < 1 {
		return nil, fmt.Errorf("%w: defenders must be at least 1, got %d", ErrInvalidArgument, defenders)
	}
	if limit := e.rules.AttackerDiceLimit(); limit < 1 {
		return nil, fmt.Errorf("%w: maxAttackerDice must be at least 1, got %d", ErrInvalidArgument, limit)
	}
	if limit := e.rules.DefenderDiceLimit(); limit < 1 {
		return nil, fmt.Errorf("%w: maxDefenderDice must be at least 1, got %d", ErrInvalidArgument, limit)
	}

	initial := attackers + defenders
	byTotal := make([]map[State]float64, initial+1)
	accumulate := func(s State, mass float64) {
		total := s.Attackers + s.Defenders
		if byTotal[total] == nil {
			byTotal[total] = make(map[State]float64)
		}
		byTotal[total][s] += mass
	}
	accumulate(State{Attackers: attackers, Defenders: defenders}, 1)

	outcomes := make(map[State]float64)
	for total := initial; total >= 0; total-- {
		for state, mass := range byTotal[total] {
			if state.Terminal() {
				outcomes[state] += mass
				continue
			}
			dist, err := e.resolver.Round(
				e.rules.AttackerDiceFor(state.Attackers),
				e.rules.DefenderDiceFor(state.Defenders),
			)
			if err != nil {
				return nil, err
			}
			for outcome, p := range dist {
				accumulate(State{
					Attackers: state.Attackers - outcome.AttackerLosses,
					Defenders: state.Defenders - outcome.DefenderLosses,
				}, mass*p)
			}
		}
		byTotal[total] = nil
	}

	result := &Result{Outcomes: outcomes}
	sum := 0.0
	for state, p := range outcomes {
		sum += p
		switch {
		case state.Defenders == 0 && state.Attackers > 0:
			result.AttackerWin += p
		case state.Attackers == 0 && state.Defenders > 0:
			result.DefenderWin += p
		default:
			result.Draw += p
		}
	}
	if math.Abs(sum-1) > massTolerance {
		log.Warn().
			Float64("mass", sum).
			Int("attackers", attackers).
			Int("defenders", defenders).
			Msg("outcome probabilities drifted from 1")
	}
	return result, nil
}
