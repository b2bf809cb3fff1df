// Package pgstore persists operator-managed pronunciation overrides in
// PostgreSQL via [github.com/jackc/pgx/v5]. It is an optional source for
// [github.com/klattspeak/klattspeak/pkg/g2p.Converter]: the rule engine and
// the built-in static exception table already satisfy every synthesis
// invariant on their own, so an unreachable store only costs coverage of
// operator-added words, never correctness.
package pgstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/klattspeak/klattspeak/pkg/g2p"
	"github.com/klattspeak/klattspeak/pkg/language"
)

// Schema is the SQL DDL for the pronunciations table.
const Schema = `
CREATE TABLE IF NOT EXISTS pronunciations (
    language   TEXT NOT NULL,
    word       TEXT NOT NULL,
    phonemes   JSONB NOT NULL,
    stress     JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (language, word)
);
`

// DB is the database interface used by [Store]. Both *pgxpool.Pool and
// *pgx.Conn satisfy this interface.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Store is a [g2p.Lookup] backed by PostgreSQL. [Store.LookupContext] uses
// the context its caller supplies; [Store.Lookup], which has [g2p.Lookup]'s
// context-free signature, uses context.Background with no deadline and no
// circuit breaker. [Guarded] wraps a Store with a circuit breaker.
type Store struct {
	db DB
}

var _ g2p.Lookup = (*Store)(nil)

// New creates a Store using the given database connection or pool. Callers
// must call [Store.Migrate] once before issuing lookups.
func New(db DB) *Store {
	return &Store{db: db}
}

// Migrate executes [Schema] against the database, creating the
// pronunciations table if it does not already exist.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.Exec(ctx, Schema)
	if err != nil {
		return fmt.Errorf("pgstore: migrate: %w", err)
	}
	return nil
}

// Put inserts or replaces the override pronunciation for word in lang.
func (s *Store) Put(ctx context.Context, lang language.Language, word string, phonemes []string, stresses []g2p.Stress) error {
	phonJSON, err := json.Marshal(phonemes)
	if err != nil {
		return fmt.Errorf("pgstore: marshal phonemes: %w", err)
	}
	stressJSON, err := json.Marshal(stresses)
	if err != nil {
		return fmt.Errorf("pgstore: marshal stress: %w", err)
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO pronunciations (language, word, phonemes, stress, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (language, word) DO UPDATE
		SET phonemes = EXCLUDED.phonemes, stress = EXCLUDED.stress, updated_at = now()
	`, lang.String(), word, phonJSON, stressJSON)
	if err != nil {
		return fmt.Errorf("pgstore: put %q: %w", word, err)
	}
	return nil
}

// LookupContext looks up word's override pronunciation for lang using ctx.
func (s *Store) LookupContext(ctx context.Context, lang language.Language, word string) ([]string, []g2p.Stress, bool, error) {
	row := s.db.QueryRow(ctx, `SELECT phonemes, stress FROM pronunciations WHERE language = $1 AND word = $2`, lang.String(), word)

	var phonJSON, stressJSON []byte
	if err := row.Scan(&phonJSON, &stressJSON); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, false, nil
		}
		return nil, nil, false, fmt.Errorf("pgstore: lookup %q: %w", word, err)
	}

	var phonemes []string
	if err := json.Unmarshal(phonJSON, &phonemes); err != nil {
		return nil, nil, false, fmt.Errorf("pgstore: unmarshal phonemes for %q: %w", word, err)
	}
	var stresses []g2p.Stress
	if err := json.Unmarshal(stressJSON, &stresses); err != nil {
		return nil, nil, false, fmt.Errorf("pgstore: unmarshal stress for %q: %w", word, err)
	}
	return phonemes, stresses, true, nil
}

// Lookup implements [g2p.Lookup] using context.Background. Prefer wrapping
// a Store with [Guarded] (or calling [Store.LookupContext] directly) in any
// path that has a request-scoped context and a circuit breaker available.
func (s *Store) Lookup(lang language.Language, word string) ([]string, []g2p.Stress, bool) {
	phonemes, stresses, found, err := s.LookupContext(context.Background(), lang, word)
	if err != nil {
		return nil, nil, false
	}
	return phonemes, stresses, found
}
