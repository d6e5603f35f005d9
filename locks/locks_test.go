package locks

import (
	"sync"
	"testing"
)

func TestKeyedMutexSerializesSameKey(t *testing.T) {
	km := NewKeyedMutex()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			km.Lock("slot:2026-03-02:morning")
			counter++
			km.Unlock("slot:2026-03-02:morning")
		}()
	}
	wg.Wait()

	if counter != 100 {
		t.Fatalf("expected 100 increments, got %d", counter)
	}
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	km := NewKeyedMutex()

	km.Lock("slot:2026-03-02:morning")
	done := make(chan struct{})
	go func() {
		km.Lock("slot:2026-03-02:midmorning")
		km.Unlock("slot:2026-03-02:midmorning")
		close(done)
	}()
	<-done
	km.Unlock("slot:2026-03-02:morning")
}

func TestKeyedMutexEntryFreed(t *testing.T) {
	km := NewKeyedMutex()
	km.Lock("slot:2026-03-02:morning")
	km.Unlock("slot:2026-03-02:morning")

	km.mu.Lock()
	n := len(km.locks)
	km.mu.Unlock()
	if n != 0 {
		t.Fatalf("expected lock table to be empty, found %d entries", n)
	}
}

func TestUnlockUnheldPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on unlock of unheld key")
		}
	}()
	NewKeyedMutex().Unlock("slot:2026-03-02:morning")
}

func TestKeyBuilders(t *testing.T) {
	if got := SlotKey("2026-03-02", "morning"); got != "slot:2026-03-02:morning" {
		t.Fatalf("unexpected slot key %s", got)
	}
}
