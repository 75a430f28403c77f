package booking

import "sync"

// providerLocks serializes approve's check-then-act per provider within
// this process. The mongo transaction is the cross-process fence; this
// keeps local contenders from burning transaction retries against each
// other.
type providerLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newProviderLocks() *providerLocks {
	return &providerLocks{locks: make(map[string]*sync.Mutex)}
}

// lock acquires the provider's mutex and returns its unlock func.
func (l *providerLocks) lock(providerID string) func() {
	l.mu.Lock()
	m, ok := l.locks[providerID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[providerID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
