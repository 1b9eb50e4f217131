package reactive

import "time"

// Effect is a handle to a reactive computation run for its side effects.
//
// Effects run once when created and rerun synchronously whenever a signal they
// read during their previous run is written. They stop rerunning only when
// disposed.
type Effect struct {
	rt *Runtime
	id ID
}

// CreateEffect registers fn as an effect and runs it immediately to establish
// its dependencies. The first run happens even inside a batch.
//
// Example:
//
//	e := rt.CreateEffect(func() {
//	    fmt.Println("count is", count.Get())
//	})
func (rt *Runtime) CreateEffect(fn func()) Effect {
	id, n := rt.alloc(kindEffect)
	n.fn = fn
	rt.runEffect(id)
	return Effect{rt: rt, id: id}
}

// OnCleanup registers fn to run before the current effect's next rerun and
// when it is disposed. Outside an effect body it does nothing.
//
// Example:
//
//	rt.CreateEffect(func() {
//	    unsubscribe := bus.Listen(topic.Get())
//	    rt.OnCleanup(unsubscribe)
//	})
func (rt *Runtime) OnCleanup(fn func()) {
	if fn == nil {
		return
	}
	if e := rt.effectNode(rt.current()); e != nil {
		e.runCleanups = append(e.runCleanups, fn)
	}
}

// ID returns the arena ID of the effect.
func (e Effect) ID() ID {
	return e.id
}

// Alive reports whether the effect has not been disposed.
func (e Effect) Alive() bool {
	return e.rt != nil && e.rt.effectNode(e.id) != nil
}

// Runs returns how many times the effect has completed a run.
// It returns 0 once the effect is disposed.
func (e Effect) Runs() uint64 {
	if e.rt == nil {
		return 0
	}
	if n := e.rt.effectNode(e.id); n != nil {
		return n.runs
	}
	return 0
}

// OnCleanup registers fn to run when the effect is disposed.
func (e Effect) OnCleanup(fn func()) {
	if e.rt == nil || fn == nil {
		return
	}
	if n := e.rt.effectNode(e.id); n != nil {
		n.cleanups = append(n.cleanups, fn)
	}
}

// Dispose removes the effect from the runtime and runs its cleanups.
// Signals that recorded the effect as a subscriber keep the stale ID until
// their next notification, where it resolves to nothing and is dropped.
// Dispose is idempotent.
func (e Effect) Dispose() {
	if e.rt == nil {
		return
	}
	e.rt.disposeEffect(e.id)
}

func (rt *Runtime) disposeEffect(id ID) {
	n := rt.effectNode(id)
	if n == nil {
		return
	}

	cleanups := make([]func(), 0, len(n.runCleanups)+len(n.cleanups))
	cleanups = append(cleanups, n.runCleanups...)
	cleanups = append(cleanups, n.cleanups...)

	rt.release(id)
	rt.logger.Debug("effect disposed", "effect", id.String(), "cleanups", len(cleanups))

	if len(cleanups) > 0 {
		rt.Untracked(func() {
			for _, fn := range cleanups {
				fn()
			}
		})
	}
}

// runEffect evaluates an effect with itself on top of the tracking stack.
// Stale IDs are a no-op.
func (rt *Runtime) runEffect(id ID) {
	e := rt.effectNode(id)
	if e == nil {
		return
	}
	if e.running {
		rt.reentrant(id)
		return
	}

	rt.resetEffect(id, e)

	e.running = true
	rt.push(id)
	start := time.Now()
	defer func() {
		rt.pop()
		if n := rt.effectNode(id); n != nil {
			n.running = false
			n.runs++
		}
		rt.observer.EffectRan(id, time.Since(start))
	}()

	e.fn()
}

// resetEffect runs the cleanups of the previous run and drops the
// subscriptions it established, so the next run records a fresh dependency
// set.
func (rt *Runtime) resetEffect(id ID, e *node) {
	if len(e.runCleanups) > 0 {
		cleanups := e.runCleanups
		e.runCleanups = nil
		rt.Untracked(func() {
			for _, fn := range cleanups {
				fn()
			}
		})
	}

	for _, src := range e.sources {
		if s := rt.signalNode(src); s != nil {
			s.subs = removeID(s.subs, id)
		}
	}
	e.sources = e.sources[:0]
}

// reentrant handles an effect scheduled while it is still running.
func (rt *Runtime) reentrant(id ID) {
	err := &ReentrancyError{Effect: id, Depth: len(rt.stack)}
	rt.observer.Reentrancy(id)

	switch rt.reentrancy {
	case ReentrancySkip:
		rt.logger.Warn("effect rerun skipped", "effect", id.String(), "depth", err.Depth, "error", err)
	default:
		panic(err)
	}
}
