package scoring

import "sync"

// MatchLocks serializes scoring operations per match. Each match+innings is
// a single-writer resource; cross-match operations proceed in parallel.
type MatchLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

// NewMatchLocks creates an empty lock registry.
func NewMatchLocks() *MatchLocks {
	return &MatchLocks{locks: make(map[uint]*sync.Mutex)}
}

// Lock acquires the mutex for a match and returns its unlock function.
func (ml *MatchLocks) Lock(matchID uint) func() {
	ml.mu.Lock()
	lock, ok := ml.locks[matchID]
	if !ok {
		lock = &sync.Mutex{}
		ml.locks[matchID] = lock
	}
	ml.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
