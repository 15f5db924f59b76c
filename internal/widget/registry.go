package widget

import "sync"

// Registry holds loaded widget models keyed by product id. It replaces any
// notion of a process-global widget state; embed one per page or test.
type Registry struct {
	mu     sync.RWMutex
	models map[int64]*Model
}

func NewRegistry() *Registry {
	return &Registry{models: make(map[int64]*Model)}
}

func (r *Registry) Get(productID int64) (*Model, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.models[productID]
	if !ok {
		return nil, ErrNotLoaded
	}
	return m, nil
}

func (r *Registry) Set(productID int64, m *Model) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.models[productID] = m
}

func (r *Registry) Delete(productID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.models, productID)
}
