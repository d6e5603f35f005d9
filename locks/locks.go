// Package locks serializes check-then-act regions on shared booking state.
// Every mutation that reads slot occupancy or waitlist order and then
// writes based on that read runs with the "slot:<date>:<slot>" key held.
// Credit balances take no key here; the ledger's conditional update is
// atomic on its own.
package locks

import "sync"

type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*entry)}
}

func (km *KeyedMutex) Lock(key string) {
	km.mu.Lock()
	e, ok := km.locks[key]
	if !ok {
		e = &entry{}
		km.locks[key] = e
	}
	e.refs++
	km.mu.Unlock()

	e.mu.Lock()
}

func (km *KeyedMutex) Unlock(key string) {
	km.mu.Lock()
	e, ok := km.locks[key]
	if !ok {
		km.mu.Unlock()
		panic("locks: unlock of unheld key " + key)
	}
	e.refs--
	if e.refs == 0 {
		delete(km.locks, key)
	}
	km.mu.Unlock()

	e.mu.Unlock()
}

var global = NewKeyedMutex()

func SlotKey(date, slot string) string { return "slot:" + date + ":" + slot }

// Lock and Unlock operate on the process-wide table used by the engines.
func Lock(key string)   { global.Lock(key) }
func Unlock(key string) { global.Unlock(key) }
