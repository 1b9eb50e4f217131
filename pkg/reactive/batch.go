package reactive

// Batch groups signal writes so that each affected effect runs once, after
// the outermost batch completes, instead of once per write.
//
// Batches can be nested. Pending effects run only when the outermost batch
// ends. The relative order of pending effects is not guaranteed.
//
// Example:
//
//	rt.Batch(func() {
//	    firstName.Set("Ada")
//	    lastName.Set("Lovelace")
//	})
//	// an effect reading both names runs once here
//
// If fn panics, the batch is closed without running anything and the panic
// continues. Effects scheduled by the batch are dropped once the outermost
// batch has unwound.
func (rt *Runtime) Batch(fn func()) {
	rt.StartBatch()
	defer func() {
		if r := recover(); r != nil {
			rt.abortBatch()
			panic(r)
		}
	}()
	fn()
	rt.EndBatch()
}

// StartBatch opens a batch scope. Every StartBatch must be paired with an
// EndBatch; prefer Batch, which pairs them for you.
func (rt *Runtime) StartBatch() {
	rt.batchDepth++
}

// EndBatch closes a batch scope. Closing the outermost scope runs every
// pending effect exactly once. Calling EndBatch outside a batch does nothing.
func (rt *Runtime) EndBatch() {
	if rt.batchDepth == 0 {
		return
	}
	rt.batchDepth--
	if rt.batchDepth == 0 {
		rt.flush()
	}
}

// abortBatch closes a batch scope without flushing. Closing the outermost
// scope discards the pending set.
func (rt *Runtime) abortBatch() {
	if rt.batchDepth == 0 {
		return
	}
	rt.batchDepth--
	if rt.batchDepth == 0 && len(rt.pending) > 0 {
		rt.logger.Warn("batch aborted by panic", "dropped", len(rt.pending))
		rt.pending = nil
		clear(rt.pendingSet)
	}
}

// Batching reports whether a batch is open.
func (rt *Runtime) Batching() bool {
	return rt.batchDepth > 0
}

// flush drains the pending set. Writes made by the drained effects are no
// longer batched and run their subscribers immediately.
func (rt *Runtime) flush() {
	pending := rt.pending
	if len(pending) == 0 {
		return
	}
	rt.pending = nil
	clear(rt.pendingSet)

	rt.observer.BatchFlushed(len(pending))
	rt.logger.Debug("batch flushed", "effects", len(pending))

	for _, id := range pending {
		rt.runEffect(id)
	}
}
