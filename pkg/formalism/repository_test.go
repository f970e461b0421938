package formalism

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRepositoryInterning(t *testing.T) {
	repo := NewRepository[string]()

	calls := 0
	create := func(index int) *string {
		calls++
		s := "value"
		return &s
	}

	a := repo.GetOrCreate("key-1", create)
	b := repo.GetOrCreate("key-1", create)
	c := repo.GetOrCreate("key-2", create)

	require.Same(t, a, b, "same fingerprint must return the same handle")
	require.NotSame(t, a, c)
	require.Equal(t, 2, calls, "create must run once per distinct fingerprint")
	require.Equal(t, 2, repo.Len())
}

func TestRepositoryGetByIndex(t *testing.T) {
	repo := NewRepository[int]()
	repo.GetOrCreate("a", func(index int) *int { v := index; return &v })
	repo.GetOrCreate("b", func(index int) *int { v := index; return &v })

	v, err := repo.GetByIndex(1)
	require.NoError(t, err)
	require.Equal(t, 1, *v)

	_, err = repo.GetByIndex(5)
	require.Error(t, err)
}

func TestRepositoryConcurrentGetOrCreateIsIdempotent(t *testing.T) {
	repo := NewRepository[int]()
	var wg sync.WaitGroup
	results := make([]*int, 100)

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = repo.GetOrCreate("shared", func(index int) *int { v := index; return &v })
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		require.Same(t, results[0], r)
	}
	require.Equal(t, 1, repo.Len())
}

func TestRepositoryEachVisitsInInternOrder(t *testing.T) {
	repo := NewRepository[string]()
	repo.GetOrCreate("a", func(index int) *string { s := "a"; return &s })
	repo.GetOrCreate("b", func(index int) *string { s := "b"; return &s })
	repo.GetOrCreate("c", func(index int) *string { s := "c"; return &s })

	var seen []string
	repo.Each(func(index int, value *string) {
		require.Equal(t, len(seen), index)
		seen = append(seen, *value)
	})
	require.Equal(t, []string{"a", "b", "c"}, seen)
}
