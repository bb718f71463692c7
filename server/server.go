package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog/log"

	"riskodds/battle"
)

// Config holds the service settings, loaded from the environment.
type Config struct {
	Addr         string        `env:"RISKODDS_ADDR" envDefault:":8080"`
	ReadTimeout  time.Duration `env:"RISKODDS_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout time.Duration `env:"RISKODDS_WRITE_TIMEOUT" envDefault:"30s"`
}

// LoadConfigFromEnv returns the service configuration with defaults for
// anything unset.
func LoadConfigFromEnv() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{
			Addr:         ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 30 * time.Second,
		}
	}
	return cfg
}

type EvaluateRequest struct {
	Attackers       int  `json:"attackers"`
	Defenders       int  `json:"defenders"`
	MaxAttackerDice int  `json:"maxAttackerDice,omitempty"`
	MaxDefenderDice int  `json:"maxDefenderDice,omitempty"`
	SingleRoll      bool `json:"singleRoll,omitempty"`
}

type OutcomeEntry struct {
	AttackersRemaining int     `json:"attackersRemaining"`
	DefendersRemaining int     `json:"defendersRemaining"`
	Probability        float64 `json:"probability"`
}

type EvaluateResponse struct {
	Outcomes               []OutcomeEntry `json:"outcomes"`
	AttackerWinProbability float64        `json:"attackerWinProbability"`
	DefenderWinProbability float64        `json:"defenderWinProbability"`
	DrawProbability        float64        `json:"drawProbability"`
}

// Service answers battle odds queries over HTTP. One evaluator is shared per
// rule set so round caches warm up across requests.
type Service struct {
	mu         sync.RWMutex
	evaluators map[battle.StandardRules]*battle.Evaluator
}

func New() *Service {
	return &Service{
		evaluators: make(map[battle.StandardRules]*battle.Evaluator),
	}
}

// Handler returns the service's route table.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/evaluate", s.handleEvaluate)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// ListenAndServe runs the service until the listener fails.
func (s *Service) ListenAndServe(cfg Config) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	log.Info().Str("addr", cfg.Addr).Msg("battle odds service listening")
	return srv.ListenAndServe()
}

func (s *Service) evaluator(rules battle.StandardRules) *battle.Evaluator {
	s.mu.RLock()
	ev, ok := s.evaluators[rules]
	s.mu.RUnlock()
	if ok {
		return ev
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ev, ok := s.evaluators[rules]; ok {
		return ev
	}
	ev = battle.NewEvaluator(rules)
	s.evaluators[rules] = ev
	return ev
}

func (s *Service) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "cannot decode request body", http.StatusBadRequest)
		return
	}

	rules := battle.NewStandardRules()
	if req.MaxAttackerDice != 0 {
		rules.MaxAttackDice = req.MaxAttackerDice
	}
	if req.MaxDefenderDice != 0 {
		rules.MaxDefendDice = req.MaxDefenderDice
	}
	rules.SingleRoll = req.SingleRoll

	result, err := s.evaluator(rules).Evaluate(req.Attackers, req.Defenders)
	if err != nil {
		if errors.Is(err, battle.ErrInvalidArgument) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "evaluation failed", http.StatusInternalServerError)
		return
	}

	resp := EvaluateResponse{
		Outcomes:               make([]OutcomeEntry, 0, len(result.Outcomes)),
		AttackerWinProbability: result.AttackerWin,
		DefenderWinProbability: result.DefenderWin,
		DrawProbability:        result.Draw,
	}
	for state, p := range result.Outcomes {
		resp.Outcomes = append(resp.Outcomes, OutcomeEntry{
			AttackersRemaining: state.Attackers,
			DefendersRemaining: state.Defenders,
			Probability:        p,
		})
	}
	sort.Slice(resp.Outcomes, func(i, j int) bool {
		return resp.Outcomes[i].Probability > resp.Outcomes[j].Probability
	})

	log.Info().
		Int("attackers", req.Attackers).
		Int("defenders", req.Defenders).
		Float64("attackerWin", result.AttackerWin).
		Msg("evaluated battle")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
