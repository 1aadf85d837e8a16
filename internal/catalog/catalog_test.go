package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

type fetcherFunc func(ctx context.Context) ([]Book, error)

func (f fetcherFunc) Fetch(ctx context.Context) ([]Book, error) { return f(ctx) }

func loadedStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(SeedFetcher{})
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return s
}

func TestLoadPopulatesOnce(t *testing.T) {
	calls := 0
	s := NewStore(fetcherFunc(func(ctx context.Context) ([]Book, error) {
		calls++
		return SeedBooks(), nil
	}))

	if s.Loaded() {
		t.Fatalf("store should start unloaded")
	}
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("second load: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected one fetch, got %d", calls)
	}
	if got := len(s.Books()); got != 6 {
		t.Fatalf("expected 6 books, got %d", got)
	}
}

func TestLoadFailureLeavesStoreEmptyAndRetryable(t *testing.T) {
	fail := true
	s := NewStore(fetcherFunc(func(ctx context.Context) ([]Book, error) {
		if fail {
			return nil, fmt.Errorf("boom")
		}
		return SeedBooks(), nil
	}))

	if err := s.Load(context.Background()); !errors.Is(err, ErrLoadFailed) {
		t.Fatalf("expected ErrLoadFailed, got: %v", err)
	}
	if s.Loaded() || len(s.Books()) != 0 {
		t.Fatalf("failed load must leave the catalog empty")
	}
	if !errors.Is(s.Err(), ErrLoadFailed) {
		t.Fatalf("expected retained load error, got: %v", s.Err())
	}

	fail = false
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("retry load: %v", err)
	}
	if !s.Loaded() || s.Err() != nil {
		t.Fatalf("retry should clear the error state")
	}
}

func TestLoadRejectsDuplicateIDs(t *testing.T) {
	s := NewStore(fetcherFunc(func(ctx context.Context) ([]Book, error) {
		return []Book{{ID: "1"}, {ID: "1"}}, nil
	}))
	if err := s.Load(context.Background()); !errors.Is(err, ErrLoadFailed) {
		t.Fatalf("expected ErrLoadFailed on duplicate ids, got: %v", err)
	}
}

func TestConcurrentLoadsCollapse(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	s := NewStore(fetcherFunc(func(ctx context.Context) ([]Book, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		time.Sleep(20 * time.Millisecond)
		return SeedBooks(), nil
	}))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Load(context.Background())
		}()
	}
	wg.Wait()
	if calls != 1 {
		t.Fatalf("expected collapsed fetch, got %d calls", calls)
	}
}

func TestSeedFetcherHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := SeedFetcher{Delay: time.Minute}
	if _, err := f.Fetch(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got: %v", err)
	}
}

func TestSearchEmptyFiltersReturnsAllInOrder(t *testing.T) {
	s := loadedStore(t)
	got := s.Search(Filters{})
	want := s.Books()
	if len(got) != len(want) {
		t.Fatalf("expected %d books, got %d", len(want), len(got))
	}
	for i := range got {
		if got[i].ID != want[i].ID {
			t.Fatalf("order changed at %d: got %q want %q", i, got[i].ID, want[i].ID)
		}
	}
}

func TestSearchTimeQueryWithScienceCategory(t *testing.T) {
	s := loadedStore(t)
	got := s.Search(Filters{Query: "时间", Category: ptrCategory(CategoryScience)})
	if len(got) != 1 || got[0].Title != "时间简史续编" {
		t.Fatalf("expected exactly 时间简史续编, got %+v", got)
	}
}

func TestSearchMinRatingInclusive(t *testing.T) {
	s := loadedStore(t)
	got := s.Search(Filters{MinRating: ptrFloat(4.85)})
	if len(got) != 1 || got[0].Rating != 4.9 {
		t.Fatalf("expected only the 4.9-rated book, got %+v", got)
	}
}

func TestSearchOnEmptyCatalog(t *testing.T) {
	s := NewStore(SeedFetcher{})
	if got := s.Search(Filters{Query: "时间"}); len(got) != 0 {
		t.Fatalf("unloaded store should yield no results, got %d", len(got))
	}
}

func TestGetByID(t *testing.T) {
	s := loadedStore(t)
	b, ok := s.GetByID("2")
	if !ok || b.Title != "时间简史续编" {
		t.Fatalf("expected book 2, got ok=%v book=%+v", ok, b)
	}
	if _, ok := s.GetByID("nope"); ok {
		t.Fatalf("expected miss for unknown id")
	}
}

func TestByCategory(t *testing.T) {
	s := loadedStore(t)
	got := s.ByCategory(CategoryScience)
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("expected one science book, got %+v", got)
	}
}

func TestTopRatedStableDescending(t *testing.T) {
	s := NewStore(fetcherFunc(func(ctx context.Context) ([]Book, error) {
		return []Book{
			{ID: "a", Rating: 4.5},
			{ID: "b", Rating: 4.9},
			{ID: "c", Rating: 4.5},
			{ID: "d", Rating: 4.7},
		}, nil
	}))
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	got := s.TopRated(10)
	wantOrder := []string{"b", "d", "a", "c"}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Fatalf("position %d: got %q want %q", i, got[i].ID, id)
		}
	}

	if got := s.TopRated(2); len(got) != 2 || got[0].ID != "b" {
		t.Fatalf("limit not applied: %+v", got)
	}

	// Sorting must not reorder the catalog itself.
	books := s.Books()
	if books[0].ID != "a" {
		t.Fatalf("TopRated mutated catalog order: %+v", books)
	}
}
