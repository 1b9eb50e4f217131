package reactive

import "time"

// Observer receives runtime events. Implementations must be cheap: they are
// called synchronously on the runtime's goroutine.
type Observer interface {
	// EffectRan is called after every effect run, including the first.
	EffectRan(id ID, d time.Duration)

	// BatchFlushed is called when the outermost batch ends, with the number
	// of distinct effects that were pending.
	BatchFlushed(pending int)

	// Reentrancy is called when an effect is scheduled while running.
	Reentrancy(id ID)
}

type nopObserver struct{}

func (nopObserver) EffectRan(ID, time.Duration) {}
func (nopObserver) BatchFlushed(int)            {}
func (nopObserver) Reentrancy(ID)               {}
