package id

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestGenerate(t *testing.T) {
	gen := NewGenerator()

	id1 := gen.Generate()
	id2 := gen.Generate()

	if id1.String() == id2.String() {
		t.Error("Generated IDs should be unique")
	}
}

func TestGeneratorWithEntropy(t *testing.T) {
	entropy := bytes.Repeat([]byte{0xAB}, 20)
	gen := NewGeneratorWithEntropy(bytes.NewReader(entropy))

	first := gen.Generate()
	second := gen.Generate()

	if !bytes.Equal(first.Entropy(), entropy[:10]) {
		t.Errorf("ULID entropy should come from the supplied reader, got %x", first.Entropy())
	}
	if !bytes.Equal(second.Entropy(), entropy[10:]) {
		t.Errorf("Second ULID should consume the next 10 bytes, got %x", second.Entropy())
	}
}

func TestNewRunID(t *testing.T) {
	id := NewRunID()

	if !strings.HasPrefix(id.String(), "run_") {
		t.Errorf("RunID should start with 'run_', got: %s", id)
	}

	parts := strings.Split(id.String(), "_")
	if len(parts) != 2 || len(parts[1]) != 26 {
		t.Errorf("RunID should have format 'run_<26 char ulid>', got: %s", id)
	}

	if !IsValid(id.String()) {
		t.Errorf("RunID should be valid: %s", id)
	}
}

func TestIsValid(t *testing.T) {
	invalidIDs := []string{
		"",
		"run_",
		"invalid",
		"app_01ARZ3NDEKTSV4RRFFQ69G5FAV",
		"run_zzzzzzzzzzzzzzzzzzzzzzzzzz",
	}

	for _, id := range invalidIDs {
		if IsValid(id) {
			t.Errorf("ID should be invalid: %s", id)
		}
	}
}

func TestTimestamp(t *testing.T) {
	before := time.Now()
	id := NewRunID()
	after := time.Now()

	ts, err := id.Timestamp()
	if err != nil {
		t.Fatalf("Failed to extract timestamp: %v", err)
	}

	// ULID timestamps have millisecond precision
	if ts.UnixMilli() < before.UnixMilli() || ts.UnixMilli() > after.UnixMilli() {
		t.Errorf("Timestamp should be between %d and %d ms, got %d ms",
			before.UnixMilli(), after.UnixMilli(), ts.UnixMilli())
	}
}

func TestConcurrentGeneration(t *testing.T) {
	const goroutines = 50
	const idsPerGoroutine = 50

	var wg sync.WaitGroup
	idChan := make(chan RunID, goroutines*idsPerGoroutine)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < idsPerGoroutine; j++ {
				idChan <- NewRunID()
			}
		}()
	}

	wg.Wait()
	close(idChan)

	seen := make(map[RunID]bool)
	for id := range idChan {
		if seen[id] {
			t.Errorf("Duplicate ID generated: %s", id)
		}
		seen[id] = true
	}
}
