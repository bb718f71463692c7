package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"riskodds/battle"
	"riskodds/config"
	"riskodds/regions"
	"riskodds/server"
)

func main() {
	attackers := flag.Int("a", 3, "number of attacking armies")
	defenders := flag.Int("d", 2, "number of defending armies")
	verbose := flag.Bool("verbose", false, "show all possible final states")
	singleRoll := flag.Bool("single-roll", false, "limit the attacker to one die per round")
	rulesFile := flag.String("rules", "", "YAML file of rule variants")
	variant := flag.String("variant", "", "variant name to use from the rules file")
	regionsIn := flag.String("regions", "", "regions CSV to rank by reinforcement efficiency")
	reportOut := flag.String("out", "q2_reinforcement_efficiency.csv", "output path for the regions report")
	serve := flag.Bool("serve", false, "run the HTTP query service")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rules := battle.NewStandardRules()
	if *rulesFile != "" {
		f, err := config.Load(*rulesFile)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot load rules file")
		}
		rules, err = f.Rules(*variant)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot resolve rules variant")
		}
	}
	if *singleRoll {
		rules.SingleRoll = true
	}

	switch {
	case *serve:
		svc := server.New()
		if err := svc.ListenAndServe(server.LoadConfigFromEnv()); err != nil {
			log.Fatal().Err(err).Msg("service stopped")
		}
	case *regionsIn != "":
		runRegionsReport(*regionsIn, *reportOut)
	default:
		runBattle(rules, *attackers, *defenders, *verbose)
	}
}

func runBattle(rules battle.StandardRules, attackers, defenders int, verbose bool) {
	result, err := battle.NewEvaluator(rules).Evaluate(attackers, defenders)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot evaluate battle")
	}

	fmt.Printf("Initial: %d attackers vs %d defenders\n\n", attackers, defenders)
	fmt.Println("Summary:")
	fmt.Printf("  Attacker wins: %s\n", formatProbability(result.AttackerWin))
	fmt.Printf("  Defender wins: %s\n", formatProbability(result.DefenderWin))
	if result.Draw > 0 {
		fmt.Printf("  Mutual elimination: %s\n", formatProbability(result.Draw))
	}

	if !verbose {
		fmt.Println("\nUse -verbose to see all possible final states")
		return
	}

	states := make([]battle.State, 0, len(result.Outcomes))
	for state := range result.Outcomes {
		states = append(states, state)
	}
	sort.Slice(states, func(i, j int) bool {
		return result.Outcomes[states[i]] > result.Outcomes[states[j]]
	})

	fmt.Println("\nDetailed outcomes:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Final State\tProbability")
	for _, state := range states {
		fmt.Fprintf(w, "%d attackers, %d defenders\t%s\n",
			state.Attackers, state.Defenders, formatProbability(result.Outcomes[state]))
	}
	w.Flush()
}

func runRegionsReport(in, out string) {
	loaded, err := regions.LoadFile(in)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load regions")
	}
	regions.SortByEfficiency(loaded)
	if err := regions.WriteReportFile(out, loaded); err != nil {
		log.Fatal().Err(err).Msg("cannot write regions report")
	}
	log.Info().Int("regions", len(loaded)).Str("path", out).Msg("wrote reinforcement efficiency report")
}

func formatProbability(p float64) string {
	return fmt.Sprintf("%.4f%%", p*100)
}
