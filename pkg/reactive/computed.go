package reactive

// Computed is a derived value: a backing signal kept up to date by an internal
// effect.
//
// Computed values are eager, not lazy. The producer reruns synchronously on
// every write to anything it read, and every effect reading the Computed
// reruns after it, even when the produced value did not change.
type Computed[T any] struct {
	out    Signal[T]
	effect Effect
}

// NewComputed creates a computed value. fn runs twice on creation: once
// untracked to seed the value, then as the first run of the recomputation
// effect, which records its dependencies. After that it runs again on every
// write to a signal it read.
//
// Example:
//
//	doubled := reactive.NewComputed(rt, func() int { return count.Get() * 2 })
//	count.Set(5)
//	doubled.Get() // 10
func NewComputed[T any](rt *Runtime, fn func() T) Computed[T] {
	var seed T
	rt.Untracked(func() { seed = fn() })
	out := NewSignal(rt, seed)

	effect := rt.CreateEffect(func() {
		v := fn()
		// Write the cell directly: Set's equality check and its own
		// notification path are bypassed, and subscribers are notified once.
		if n := rt.signalNode(out.id); n != nil {
			n.value = v
			rt.notify(out.id)
		}
	})

	return Computed[T]{out: out, effect: effect}
}

// Get returns the current value and subscribes the running effect, if any.
func (c Computed[T]) Get() T {
	return c.out.Get()
}

// GetUntracked returns the current value without registering a dependency.
func (c Computed[T]) GetUntracked() T {
	return c.out.GetUntracked()
}

// ID returns the arena ID of the backing signal.
func (c Computed[T]) ID() ID {
	return c.out.ID()
}

// Effect returns the internal recomputation effect.
func (c Computed[T]) Effect() Effect {
	return c.effect
}

// Dispose stops recomputation. The last computed value remains readable.
func (c Computed[T]) Dispose() {
	c.effect.Dispose()
}
