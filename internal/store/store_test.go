package store

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

func testStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.LoadScores(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadScores(missing) error = %v, want ErrNotFound", err)
	}

	scores := map[string]float64{"apple": 1.5, "bread": 2.25}
	if err := s.SaveScores(ctx, "eliminations-2", scores); err != nil {
		t.Fatal(err)
	}
	loaded, err := s.LoadScores(ctx, "eliminations-2")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(loaded, scores) {
		t.Errorf("loaded %v, want %v", loaded, scores)
	}

	// Saving under the same name replaces the table entirely.
	replacement := map[string]float64{"crane": 3.0}
	if err := s.SaveScores(ctx, "eliminations-2", replacement); err != nil {
		t.Fatal(err)
	}
	loaded, err = s.LoadScores(ctx, "eliminations-2")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(loaded, replacement) {
		t.Errorf("after resave loaded %v, want %v", loaded, replacement)
	}

	// Tables under different names do not collide.
	other := map[string]float64{"delta": 4.0}
	if err := s.SaveScores(ctx, "eliminations-9", other); err != nil {
		t.Fatal(err)
	}
	loaded, err = s.LoadScores(ctx, "eliminations-2")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(loaded, replacement) {
		t.Errorf("second table leaked into first: %v", loaded)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemory()
	defer s.Close()
	testStore(t, s)
}

func TestMemoryStoreCopiesMaps(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	defer s.Close()

	scores := map[string]float64{"apple": 1.0}
	if err := s.SaveScores(ctx, "t", scores); err != nil {
		t.Fatal(err)
	}
	scores["apple"] = 99.0

	loaded, err := s.LoadScores(ctx, "t")
	if err != nil {
		t.Fatal(err)
	}
	if loaded["apple"] != 1.0 {
		t.Errorf("caller mutation leaked into store: %v", loaded)
	}

	loaded["apple"] = 42.0
	again, err := s.LoadScores(ctx, "t")
	if err != nil {
		t.Fatal(err)
	}
	if again["apple"] != 1.0 {
		t.Errorf("loaded-map mutation leaked into store: %v", again)
	}
}

func TestSQLiteStore(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	testStore(t, s)
}

func TestSQLiteStorePersistsAcrossOpens(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "scores.db")

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	scores := map[string]float64{"apple": 1.5}
	if err := s.SaveScores(ctx, "t", scores); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()
	loaded, err := reopened.LoadScores(ctx, "t")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(loaded, scores) {
		t.Errorf("after reopen loaded %v, want %v", loaded, scores)
	}
}
