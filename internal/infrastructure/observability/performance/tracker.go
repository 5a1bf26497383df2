// Package performance provides performance tracking with multi-tenant
// support for AssetGrid operations.
package performance

import (
	"fmt"
	"sync"
	"time"
)

const defaultMaxMarkers = 2048

// Tracker manages performance markers and provides simple aggregation
type Tracker struct {
	markers map[string]*Marker
	order   []string
	mu      sync.RWMutex
	started time.Time
	nextSeq uint64
}

// NewTracker creates a new performance tracker
func NewTracker() *Tracker {
	return &Tracker{
		markers: make(map[string]*Marker),
		started: time.Now(),
	}
}

// StartOperation begins tracking a new operation and returns its marker
func (t *Tracker) StartOperation(operation, tenantID string) *Marker {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.nextSeq++
	id := fmt.Sprintf("%s-%d", operation, t.nextSeq)

	marker := &Marker{
		Operation: operation,
		TenantID:  tenantID,
		StartTime: time.Now(),
		Metadata:  make(map[string]any),
	}

	t.markers[id] = marker
	t.order = append(t.order, id)

	// Bounded retention; the oldest markers fall off first.
	if len(t.order) > defaultMaxMarkers {
		oldest := t.order[0]
		t.order = t.order[1:]
		delete(t.markers, oldest)
	}

	return marker
}

// RecentMarkers returns up to limit most recent markers, newest first
func (t *Tracker) RecentMarkers(limit int) []*Marker {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if limit <= 0 || limit > len(t.order) {
		limit = len(t.order)
	}

	result := make([]*Marker, 0, limit)
	for i := len(t.order) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, t.markers[t.order[i]])
	}
	return result
}

// Uptime returns how long the tracker has been running
func (t *Tracker) Uptime() time.Duration {
	return time.Since(t.started)
}
