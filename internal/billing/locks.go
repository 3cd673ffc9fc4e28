package billing

import "sync"

// projectLocks serializes invoice generation per project so two
// concurrent runs cannot both select and bill the same unsettled
// earnings. Locks are never released from the map; the set of projects
// in one process is small.
type projectLocks struct {
	mu sync.Mutex
	m  map[string]*sync.Mutex
}

func newProjectLocks() *projectLocks {
	return &projectLocks{m: make(map[string]*sync.Mutex)}
}

// lock acquires the mutex for the given project and returns its unlock.
func (l *projectLocks) lock(projectID string) func() {
	l.mu.Lock()
	pm, ok := l.m[projectID]
	if !ok {
		pm = &sync.Mutex{}
		l.m[projectID] = pm
	}
	l.mu.Unlock()
	pm.Lock()
	return pm.Unlock
}
