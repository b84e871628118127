package ledger

import (
	"sync"

	"github.com/opius2017/Finmfb-sub006/internal/types"
)

// monthLocks hands out one mutex per month so that admissions for different
// months never block each other. Locks are created on first use and kept for
// the lifetime of the ledger; the map grows by one entry per referenced month.
type monthLocks struct {
	mu    sync.Mutex
	locks map[types.Month]*sync.Mutex
}

func newMonthLocks() *monthLocks {
	return &monthLocks{
		locks: make(map[types.Month]*sync.Mutex),
	}
}

// get returns the mutex for the month, creating it if needed.
func (l *monthLocks) get(month types.Month) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, ok := l.locks[month]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[month] = lock
	}

	return lock
}
