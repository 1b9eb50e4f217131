// Package reactive provides the fine-grained reactivity engine for vcore.
//
// Dependencies are tracked automatically at runtime. Reading a signal while an
// effect is evaluating subscribes that effect to the signal; writing the
// signal reruns every subscribed effect synchronously.
//
// # Core Types
//
// Runtime owns every signal and effect. It is an explicit value rather than
// hidden global state, so independent runtimes can coexist (one per test, one
// per window):
//
//	rt := reactive.NewRuntime()
//
// Signal[T] is a reactive value cell:
//
//	count := reactive.NewSignal(rt, 0)
//	value := count.Get()        // Read (subscribes the running effect)
//	count.Set(5)                // Write (notifies subscribers)
//	count.Update(func(n int) int { return n + 1 })
//	_ = count.GetUntracked()    // Read without subscribing
//
// Effect reruns a closure whenever a signal it read changes:
//
//	e := rt.CreateEffect(func() {
//	    fmt.Println("count is", count.Get())
//	})
//	defer e.Dispose()
//
// Computed[T] is a derived value recomputed eagerly on every upstream write:
//
//	doubled := reactive.NewComputed(rt, func() int { return count.Get() * 2 })
//
// # Batching
//
// Writes inside a batch are coalesced so that each affected effect runs once
// when the outermost batch ends:
//
//	rt.Batch(func() {
//	    first.Set("Ada")
//	    last.Set("Lovelace")
//	})
//
// The order in which pending effects run after a batch is not part of the
// contract.
//
// # Storage
//
// Signals and effects live in an arena owned by the Runtime and are addressed
// by generational IDs. Subscriber sets and effect sources are plain IDs, so
// there are no reference cycles; disposing an effect bumps its slot generation
// and any stale ID left in a subscriber set resolves to nothing.
//
// # Threading
//
// A Runtime is not safe for concurrent use. All reads, writes, batches and
// effect runs must happen on the goroutine that owns the Runtime (typically
// the UI event loop). Notification is a synchronous depth-first call chain.
package reactive
