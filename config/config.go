package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"riskodds/battle"
)

// Variant is a named rule preset. Zero dice limits fall back to the
// standard tabletop values.
type Variant struct {
	MaxAttackerDice int  `yaml:"max_attacker_dice"`
	MaxDefenderDice int  `yaml:"max_defender_dice"`
	SingleRoll      bool `yaml:"single_roll"`
}

// File is a YAML collection of rule variants keyed by name.
type File struct {
	Variants map[string]Variant `yaml:"variants"`
}

func Load(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("cannot parse rules file %s: %w", path, err)
	}
	return &f, nil
}

// Rules resolves a named variant into a rule set.
func (f *File) Rules(variant string) (battle.StandardRules, error) {
	v, ok := f.Variants[variant]
	if !ok {
		return battle.StandardRules{}, fmt.Errorf("unknown rules variant %q", variant)
	}
	return v.Rules(), nil
}

func (v Variant) Rules() battle.StandardRules {
	rules := battle.NewStandardRules()
	if v.MaxAttackerDice > 0 {
		rules.MaxAttackDice = v.MaxAttackerDice
	}
	if v.MaxDefenderDice > 0 {
		rules.MaxDefendDice = v.MaxDefenderDice
	}
	rules.SingleRoll = v.SingleRoll
	return rules
}
