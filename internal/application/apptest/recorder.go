package apptest

import "sync"

// Recorder cuenta observaciones por "operación/resultado".
type Recorder struct {
	mu     sync.Mutex
	counts map[string]int
}

// Observe implementa ports.OutcomeRecorder.
func (r *Recorder) Observe(operation, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.counts == nil {
		r.counts = make(map[string]int)
	}
	r.counts[operation+"/"+outcome]++
}

// Count devuelve cuántas veces se observó operation con outcome.
func (r *Recorder) Count(operation, outcome string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[operation+"/"+outcome]
}
