package battle

// Rules decide how many dice each side rolls in a combat round and how
// opposing rolls are scored against each other.
type Rules interface {
	AttackerDiceLimit() int
	DefenderDiceLimit() int
	// AttackerDiceFor and DefenderDiceFor give the dice count actually rolled
	// with the given number of troops remaining.
	AttackerDiceFor(remaining int) int
	DefenderDiceFor(remaining int) int
	// ResolveDice scores one exchange. Both slices must be sorted descending.
	ResolveDice(attackerRolls, defenderRolls []int) (attackerLosses, defenderLosses int)
}

// StandardRules implements the classic tabletop rule set: up to three attacker
// dice against up to two defender dice, ties lost by the attacker. SingleRoll
// is the house-rule variant that caps the attacker at one die per round.
type StandardRules struct {
	MaxAttackDice int
	MaxDefendDice int
	SingleRoll    bool
}

func NewStandardRules() StandardRules {
	return StandardRules{
		MaxAttackDice: 3,
		MaxDefendDice: 2,
	}
}

func (sr StandardRules) AttackerDiceLimit() int {
	return sr.MaxAttackDice
}

func (sr StandardRules) DefenderDiceLimit() int {
	return sr.MaxDefendDice
}

func (sr StandardRules) AttackerDiceFor(remaining int) int {
	if sr.SingleRoll {
		return 1
	}
	return min(remaining, sr.MaxAttackDice)
}

func (sr StandardRules) DefenderDiceFor(remaining int) int {
	return min(remaining, sr.MaxDefendDice)
}

func (sr StandardRules) ResolveDice(attackerRolls, defenderRolls []int) (attackerLosses, defenderLosses int) {
	// Standard Risk attack outcome: ties go to the defender
	battles := min(len(attackerRolls), len(defenderRolls))
	for i := 0; i < battles; i++ {
		if attackerRolls[i] > defenderRolls[i] {
			defenderLosses++
		} else {
			attackerLosses++
		}
	}
	return
}
