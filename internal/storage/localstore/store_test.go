package localstore

import (
	"errors"
	"testing"
)

func TestFileStore_RoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	if _, err := store.Get("atendimentos"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing key, got %v", err)
	}

	value := `[{"id":1,"unidade":"CSMI Curió"}]`
	if err := store.Set("atendimentos", value); err != nil {
		t.Fatalf("Failed to set: %v", err)
	}

	got, err := store.Get("atendimentos")
	if err != nil {
		t.Fatalf("Failed to get: %v", err)
	}
	if got != value {
		t.Errorf("Expected %q, got %q", value, got)
	}

	// Overwrite replaces the value entirely
	if err := store.Set("atendimentos", "[]"); err != nil {
		t.Fatalf("Failed to overwrite: %v", err)
	}
	got, _ = store.Get("atendimentos")
	if got != "[]" {
		t.Errorf("Expected overwritten value, got %q", got)
	}
}

func TestFileStore_KeysAreIndependent(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	if err := store.Set("a", "1"); err != nil {
		t.Fatalf("Failed to set: %v", err)
	}
	if err := store.Set("b", "2"); err != nil {
		t.Fatalf("Failed to set: %v", err)
	}

	a, _ := store.Get("a")
	b, _ := store.Get("b")
	if a != "1" || b != "2" {
		t.Errorf("Keys interfere: a=%q b=%q", a, b)
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	if _, err := store.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	if err := store.Set("k", "v"); err != nil {
		t.Fatalf("Failed to set: %v", err)
	}
	got, err := store.Get("k")
	if err != nil || got != "v" {
		t.Errorf("Expected v, got %q (err %v)", got, err)
	}
}
