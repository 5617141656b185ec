package seed

import (
	"context"
	"fmt"
	"log"
)

// ReferenceUpserter is the storage surface the seeder needs.
type ReferenceUpserter interface {
	UpsertLanguage(ctx context.Context, name, code string) error
	UpsertMessageKey(ctx context.Context, name string) error
}

type language struct {
	name string
	code string
}

var languages = []language{
	{name: "Polish", code: "pl"},
	{name: "English", code: "en"},
	{name: "German", code: "de"},
}

var messageKeys = []string{
	"WELCOME_MESSAGE",
}

// Seeder writes the reference data every deployment expects to exist. Each
// row is an insert-or-update on its natural key, so Run is idempotent and
// safe to call on every startup.
type Seeder struct {
	repo ReferenceUpserter
}

func NewSeeder(repo ReferenceUpserter) *Seeder {
	return &Seeder{repo: repo}
}

func (s *Seeder) Run(ctx context.Context) error {
	for _, l := range languages {
		if err := s.repo.UpsertLanguage(ctx, l.name, l.code); err != nil {
			return fmt.Errorf("failed to seed languages: %w", err)
		}
	}
	for _, name := range messageKeys {
		if err := s.repo.UpsertMessageKey(ctx, name); err != nil {
			return fmt.Errorf("failed to seed message keys: %w", err)
		}
	}
	log.Printf("Reference data seeded: %d languages, %d message keys", len(languages), len(messageKeys))
	return nil
}
