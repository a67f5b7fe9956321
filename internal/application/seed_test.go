package application

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCatalog struct{ items []*string }

func (m *memCatalog) Count(context.Context) (int, error) { return len(m.items), nil }

func (m *memCatalog) InsertMany(_ context.Context, items []*string) error {
	m.items = append(m.items, items...)
	return nil
}

func TestSeedIfEmptyIsIdempotent(t *testing.T) {
	var mu sync.Mutex
	repo := &memCatalog{}
	defaults := func() []*string {
		a, b := "a", "b"
		return []*string{&a, &b}
	}

	n, err := SeedIfEmpty[string](context.Background(), &mu, repo, defaults)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// second call inserts nothing and reports so
	n, err = SeedIfEmpty[string](context.Background(), &mu, repo, defaults)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Len(t, repo.items, 2)
}

func TestRunSeeds(t *testing.T) {
	var calls []string
	step := func(name string, n int, err error) SeedStep {
		return SeedStep{Name: name, Run: func(context.Context) (int, error) {
			calls = append(calls, name)
			return n, err
		}}
	}

	counts, err := RunSeeds(context.Background(), []SeedStep{step("a", 3, nil), step("b", 0, nil)})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 3, "b": 0}, counts)

	calls = nil
	_, err = RunSeeds(context.Background(), []SeedStep{step("a", 1, nil), step("b", 0, errors.New("down")), step("c", 1, nil)})
	assert.ErrorContains(t, err, "seed b: down")
	assert.Equal(t, []string{"a", "b"}, calls)
}
