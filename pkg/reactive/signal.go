package reactive

// Signal is a reactive value cell owned by a Runtime.
//
// A Signal is a small handle (runtime pointer plus arena ID) and may be copied
// freely; all copies refer to the same cell. Reading a Signal with Get while an
// effect is evaluating subscribes that effect. Set and Update notify every
// subscriber.
//
// The zero Signal is not usable; create signals with NewSignal.
type Signal[T any] struct {
	rt *Runtime
	id ID
}

// NewSignal creates a signal holding initial.
// Signals are never destroyed explicitly; they live as long as their Runtime.
func NewSignal[T any](rt *Runtime, initial T) Signal[T] {
	id, n := rt.alloc(kindSignal)
	n.value = initial
	return Signal[T]{rt: rt, id: id}
}

// ID returns the arena ID of the signal.
func (s Signal[T]) ID() ID {
	return s.id
}

// Runtime returns the runtime owning the signal.
func (s Signal[T]) Runtime() *Runtime {
	return s.rt
}

// Get returns the current value and subscribes the running effect, if any.
func (s Signal[T]) Get() T {
	n := s.rt.signalNode(s.id)
	if n == nil {
		var zero T
		return zero
	}
	s.rt.track(s.id, n)
	return cellValue[T](n)
}

// GetUntracked returns the current value without registering a dependency.
func (s Signal[T]) GetUntracked() T {
	n := s.rt.signalNode(s.id)
	if n == nil {
		var zero T
		return zero
	}
	return cellValue[T](n)
}

// Set replaces the value and notifies subscribers.
// If an equality function was configured with WithEquals and it reports the
// new value equal to the old one, no notification is sent.
func (s Signal[T]) Set(value T) {
	n := s.rt.signalNode(s.id)
	if n == nil {
		return
	}
	if n.equal != nil && n.equal(n.value, value) {
		return
	}
	n.value = value
	s.rt.notify(s.id)
}

// Update replaces the value with fn(current) and notifies subscribers.
func (s Signal[T]) Update(fn func(T) T) {
	n := s.rt.signalNode(s.id)
	if n == nil {
		return
	}
	s.Set(fn(cellValue[T](n)))
}

// WithEquals configures an equality function used by Set and Update to
// suppress notifications for unchanged values. By default every write
// notifies.
func (s Signal[T]) WithEquals(fn func(a, b T) bool) Signal[T] {
	n := s.rt.signalNode(s.id)
	if n == nil {
		return s
	}
	if fn == nil {
		n.equal = nil
		return s
	}
	n.equal = func(a, b any) bool {
		av, _ := a.(T)
		bv, _ := b.(T)
		return fn(av, bv)
	}
	return s
}

// cellValue returns the typed value stored in a signal slot.
func cellValue[T any](n *node) T {
	v, ok := n.value.(T)
	if !ok {
		var zero T
		return zero
	}
	return v
}
