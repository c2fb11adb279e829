package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemory_Get_Empty(t *testing.T) {
	m := NewMemory()

	key, _, ok, err := m.Get(context.Background())
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Error("Expected empty cache")
	}
	if key != nil {
		t.Errorf("Expected nil key, got %v", key)
	}
}

func TestMemory_SetGet(t *testing.T) {
	m := NewMemory()
	fetchedAt := time.Now().Add(-10 * time.Minute)

	if err := m.Set(context.Background(), []byte("pem-key"), fetchedAt); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	key, gotAt, ok, err := m.Get(context.Background())
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok {
		t.Fatal("Expected cache hit")
	}
	if string(key) != "pem-key" {
		t.Errorf("Expected 'pem-key', got %q", key)
	}
	if !gotAt.Equal(fetchedAt) {
		t.Errorf("Expected fetchedAt %v, got %v", fetchedAt, gotAt)
	}
}

func TestMemory_Get_ReturnsCopy(t *testing.T) {
	m := NewMemory()
	_ = m.Set(context.Background(), []byte("pem-key"), time.Now())

	key, _, _, _ := m.Get(context.Background())
	key[0] = 'X'

	again, _, ok, _ := m.Get(context.Background())
	if !ok || string(again) != "pem-key" {
		t.Errorf("Cached key was mutated through the returned slice: %q", again)
	}
}

func TestMemory_Set_Replaces(t *testing.T) {
	m := NewMemory()

	_ = m.Set(context.Background(), []byte("old"), time.Now().Add(-2*time.Hour))
	newAt := time.Now()
	_ = m.Set(context.Background(), []byte("new"), newAt)

	key, gotAt, ok, _ := m.Get(context.Background())
	if !ok || string(key) != "new" {
		t.Errorf("Expected 'new', got %q (ok=%v)", key, ok)
	}
	if !gotAt.Equal(newAt) {
		t.Errorf("Expected fetchedAt %v, got %v", newAt, gotAt)
	}
}
