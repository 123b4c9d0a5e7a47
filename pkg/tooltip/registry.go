package tooltip

// Instance is anything the registry can close.
type Instance interface {
	Close()
}

// Registry tracks the single open tooltip of a page session.
//
// One Registry is created per page and shared by every Controller on it. It
// is the only state controllers share; they reach it only through
// RegisterOpen and Release.
type Registry struct {
	open Instance
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// RegisterOpen records i as the open instance, closing the previous one
// unless it is i itself.
func (r *Registry) RegisterOpen(i Instance) {
	if prev := r.open; prev != nil && prev != i {
		r.open = nil
		prev.Close()
	}
	r.open = i
}

// Release empties the slot if i occupies it.
func (r *Registry) Release(i Instance) {
	if r.open == i {
		r.open = nil
	}
}

// Current returns the open instance, or nil.
func (r *Registry) Current() Instance {
	return r.open
}
