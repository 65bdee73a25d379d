package concurrency

import (
	"sync"
)

// LockManager hands out named locks. Operations that must not overlap share
// a key; callers choose between waiting (Lock) and rejecting (TryAcquire).
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns a mutex for the given key
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// TryAcquire takes the named lock without waiting. It returns a release
// function and true on success, or nil and false when the key is held.
func (lm *LockManager) TryAcquire(key string) (func(), bool) {
	mu := lm.GetLock(key)
	if !mu.TryLock() {
		return nil, false
	}
	var once sync.Once
	return func() { once.Do(mu.Unlock) }, true
}

// Held reports whether the named lock is currently taken
func (lm *LockManager) Held(key string) bool {
	mu := lm.GetLock(key)
	if mu.TryLock() {
		mu.Unlock()
		return false
	}
	return true
}
