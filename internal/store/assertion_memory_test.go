package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ontiq/ontoscope/internal/domain"
)

func sampleAssertion(role domain.Role) *domain.AssertedRole {
	return &domain.AssertedRole{
		Role:       role,
		AssertedBy: domain.AssertedByHuman,
		Confidence: 0.9,
		Scope:      domain.ScopeGlobal,
		Timestamp:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestAssertionMemoryStore_SetGetClear(t *testing.T) {
	s := NewAssertionMemoryStore()
	ctx := context.Background()

	if _, err := s.Get(ctx, "d"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get before Set: err = %v, want ErrNotFound", err)
	}

	if err := s.Set(ctx, "d", sampleAssertion(domain.RoleHolon)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := s.Get(ctx, "d")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Role != domain.RoleHolon {
		t.Errorf("role = %v, want holon", got.Role)
	}

	// Replacing is a wholesale overwrite.
	if err := s.Set(ctx, "d", sampleAssertion(domain.RoleEmanon)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, err = s.Get(ctx, "d")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Role != domain.RoleEmanon {
		t.Errorf("role after overwrite = %v, want emanon", got.Role)
	}

	if err := s.Clear(ctx, "d"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, err := s.Get(ctx, "d"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Clear: err = %v, want ErrNotFound", err)
	}
	if err := s.Clear(ctx, "d"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Clear on missing key: err = %v, want ErrNotFound", err)
	}
}

func TestAssertionMemoryStore_GetReturnsCopy(t *testing.T) {
	s := NewAssertionMemoryStore()
	ctx := context.Background()

	if err := s.Set(ctx, "d", sampleAssertion(domain.RoleHolon)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	first, _ := s.Get(ctx, "d")
	first.Role = domain.RoleProtogon

	second, _ := s.Get(ctx, "d")
	if second.Role != domain.RoleHolon {
		t.Error("mutating a returned assertion must not affect the store")
	}
}

func TestAssertionMemoryStore_AllReturnsSnapshot(t *testing.T) {
	s := NewAssertionMemoryStore()
	ctx := context.Background()

	if err := s.Set(ctx, "a", sampleAssertion(domain.RoleHolon)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Set(ctx, "b", sampleAssertion(domain.RoleEmanon)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	all, err := s.All(ctx)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("All returned %d entries, want 2", len(all))
	}

	delete(all, "a")
	if _, err := s.Get(ctx, "a"); err != nil {
		t.Error("mutating the All snapshot must not affect the store")
	}
}

func TestAssertionMemoryStore_ReplaceAll(t *testing.T) {
	s := NewAssertionMemoryStore()
	ctx := context.Background()

	if err := s.Set(ctx, "old", sampleAssertion(domain.RoleHolon)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	replacement := map[string]domain.AssertedRole{
		"new": *sampleAssertion(domain.RoleProtogon),
	}
	if err := s.ReplaceAll(ctx, replacement); err != nil {
		t.Fatalf("ReplaceAll failed: %v", err)
	}

	if _, err := s.Get(ctx, "old"); !errors.Is(err, ErrNotFound) {
		t.Error("ReplaceAll must drop entries absent from the replacement")
	}
	got, err := s.Get(ctx, "new")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Role != domain.RoleProtogon {
		t.Errorf("role = %v, want protogon", got.Role)
	}

	// The store must not alias the caller's map.
	replacement["later"] = *sampleAssertion(domain.RoleEmanon)
	if _, err := s.Get(ctx, "later"); !errors.Is(err, ErrNotFound) {
		t.Error("ReplaceAll must copy the supplied map")
	}
}
