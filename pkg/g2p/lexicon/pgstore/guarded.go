package pgstore

import (
	"context"
	"log/slog"

	"github.com/klattspeak/klattspeak/internal/resilience"
	"github.com/klattspeak/klattspeak/pkg/g2p"
	"github.com/klattspeak/klattspeak/pkg/language"
)

// Guarded wraps a [Store] with a [resilience.CircuitBreaker] so that an
// unreachable database degrades synthesis latency, not correctness: once
// the breaker opens, lookups return "not found" immediately and the caller
// falls through to the rule engine.
type Guarded struct {
	store   *Store
	breaker *resilience.CircuitBreaker
	logger  *slog.Logger
}

var _ g2p.Lookup = (*Guarded)(nil)

// NewGuarded wraps store with a circuit breaker built from cfg. A zero
// cfg.Name defaults to "pgstore".
func NewGuarded(store *Store, cfg resilience.CircuitBreakerConfig, logger *slog.Logger) *Guarded {
	if cfg.Name == "" {
		cfg.Name = "pgstore"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Guarded{
		store:   store,
		breaker: resilience.NewCircuitBreaker(cfg),
		logger:  logger,
	}
}

// Lookup implements [g2p.Lookup]. It never returns an error to the caller:
// any database failure or an open breaker is treated as a cache miss.
func (g *Guarded) Lookup(lang language.Language, word string) ([]string, []g2p.Stress, bool) {
	var phonemes []string
	var stresses []g2p.Stress
	var found bool

	err := g.breaker.Execute(func() error {
		p, s, f, err := g.store.LookupContext(context.Background(), lang, word)
		if err != nil {
			return err
		}
		phonemes, stresses, found = p, s, f
		return nil
	})
	if err != nil {
		g.logger.Debug("pgstore lookup bypassed", "word", word, "error", err)
		return nil, nil, false
	}
	return phonemes, stresses, found
}
