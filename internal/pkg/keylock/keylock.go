package keylock

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrLockTimeout is returned when a key's lock could not be acquired
// within the bounded wait. Callers treat it as retryable.
var ErrLockTimeout = errors.New("timed out waiting for key lock")

type entry struct {
	sem  chan struct{}
	refs int
}

// KeyLock serializes writers per key while letting operations on
// different keys proceed fully in parallel. Entries are reference-counted
// and removed once the last waiter releases, so the registry does not
// grow with the key space.
type KeyLock struct {
	mu    sync.Mutex
	locks map[string]*entry
}

func New() *KeyLock {
	return &KeyLock{
		locks: make(map[string]*entry),
	}
}

// Acquire blocks until the key's lock is held, the timeout elapses, or
// ctx is done. On success it returns a release function that must be
// called exactly once.
func (k *KeyLock) Acquire(ctx context.Context, key string, timeout time.Duration) (func(), error) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &entry{sem: make(chan struct{}, 1)}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case e.sem <- struct{}{}:
		return func() {
			<-e.sem
			k.release(key, e)
		}, nil
	case <-timer.C:
		k.release(key, e)
		return nil, ErrLockTimeout
	case <-ctx.Done():
		k.release(key, e)
		return nil, ctx.Err()
	}
}

func (k *KeyLock) release(key string, e *entry) {
	k.mu.Lock()
	e.refs--
	if e.refs == 0 {
		delete(k.locks, key)
	}
	k.mu.Unlock()
}

// Len returns the number of keys with live holders or waiters.
func (k *KeyLock) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
