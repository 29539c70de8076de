// Package event provides the observables the host uses to notify plugins.
//
// Signals and properties are driven from the host's main thread and are not
// safe for concurrent use.
package event

import "errors"

// ConnectionID identifies a handler connected to a Signal or Property.
type ConnectionID int

// NoConnection is the value of a connection that was never made or has been
// released. Disconnecting it is a no-op.
const NoConnection ConnectionID = -1

// HandlerFunc receives the payload of an emitted signal.
type HandlerFunc[T any] func(T) error

type slot[T any] struct {
	id ConnectionID
	fn HandlerFunc[T]
}

// Signal broadcasts values of type T to connected handlers in connection order.
type Signal[T any] struct {
	next  ConnectionID
	slots []slot[T]
}

// Connect adds a handler and returns the token needed to disconnect it.
func (s *Signal[T]) Connect(fn HandlerFunc[T]) ConnectionID {
	id := s.next
	s.next++
	s.slots = append(s.slots, slot[T]{id: id, fn: fn})
	return id
}

// Disconnect removes the handler with the given id. It reports whether a
// handler was removed; NoConnection and unknown ids are ignored.
func (s *Signal[T]) Disconnect(id ConnectionID) bool {
	if id == NoConnection {
		return false
	}
	for i, sl := range s.slots {
		if sl.id == id {
			s.slots = append(s.slots[:i:i], s.slots[i+1:]...)
			return true
		}
	}
	return false
}

// Emit calls every connected handler with v. All handlers run even if one
// fails; the returned error joins the individual failures.
func (s *Signal[T]) Emit(v T) error {
	// handlers may connect or disconnect while we iterate
	slots := make([]slot[T], len(s.slots))
	copy(slots, s.slots)

	var errs []error
	for _, sl := range slots {
		if err := sl.fn(v); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Len returns the number of connected handlers.
func (s *Signal[T]) Len() int {
	return len(s.slots)
}
