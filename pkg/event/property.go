package event

// Property holds a value and notifies handlers when it changes.
type Property[T comparable] struct {
	value   T
	changed Signal[T]
}

// NewProperty returns a Property holding v.
func NewProperty[T comparable](v T) *Property[T] {
	return &Property[T]{value: v}
}

// Get returns the current value.
func (p *Property[T]) Get() T {
	return p.value
}

// Set stores v and notifies handlers if it differs from the current value.
func (p *Property[T]) Set(v T) error {
	if p.value == v {
		return nil
	}
	p.value = v
	return p.changed.Emit(v)
}

// Touch notifies handlers with the current value without changing it.
func (p *Property[T]) Touch() error {
	return p.changed.Emit(p.value)
}

// Connect adds a handler called on every change.
func (p *Property[T]) Connect(fn HandlerFunc[T]) ConnectionID {
	return p.changed.Connect(fn)
}

// ConnectAndTouch adds a handler and immediately calls it with the current
// value. The connection stays in place even if that first call fails.
func (p *Property[T]) ConnectAndTouch(fn HandlerFunc[T]) (ConnectionID, error) {
	id := p.changed.Connect(fn)
	return id, fn(p.value)
}

// Disconnect removes a handler. See Signal.Disconnect.
func (p *Property[T]) Disconnect(id ConnectionID) bool {
	return p.changed.Disconnect(id)
}
