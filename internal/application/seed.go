package application

import (
	"context"
	"fmt"
	"sync"
)

// Catalog is the part of a reference repository used for seeding.
type Catalog[T any] interface {
	Count(ctx context.Context) (int, error)
	InsertMany(ctx context.Context, items []*T) error
}

// SeedIfEmpty inserts defaults when the collection has no documents and
// returns how many it inserted on this call (0 when already populated).
// mu serialises first access within this process.
func SeedIfEmpty[T any](ctx context.Context, mu *sync.Mutex, repo Catalog[T], defaults func() []*T) (int, error) {
	mu.Lock()
	defer mu.Unlock()

	n, err := repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	items := defaults()
	if err := repo.InsertMany(ctx, items); err != nil {
		return 0, err
	}
	return len(items), nil
}

// SeedStep seeds one named collection.
type SeedStep struct {
	Name string
	Run  func(ctx context.Context) (int, error)
}

// RunSeeds runs every step in order and reports the inserted count per
// collection.
// It stops at the first failure.
func RunSeeds(ctx context.Context, steps []SeedStep) (map[string]int, error) {
	counts := make(map[string]int, len(steps))
	for _, st := range steps {
		n, err := st.Run(ctx)
		if err != nil {
			return counts, fmt.Errorf("seed %s: %w", st.Name, err)
		}
		counts[st.Name] = n
	}
	return counts, nil
}
