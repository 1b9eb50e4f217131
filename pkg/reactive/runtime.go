package reactive

import (
	"fmt"
	"log/slog"
)

// ID addresses a signal or effect slot in a Runtime's arena.
// The zero ID is never issued and never resolves.
type ID struct {
	Index uint32
	Gen   uint32
}

// IsZero reports whether the ID is the zero ID.
func (id ID) IsZero() bool {
	return id.Gen == 0
}

// String returns the ID as "index@gen".
func (id ID) String() string {
	return fmt.Sprintf("%d@%d", id.Index, id.Gen)
}

// nodeKind discriminates arena slots.
type nodeKind uint8

const (
	kindSignal nodeKind = iota + 1
	kindEffect
)

// node is one arena slot. Signals use value/equal/subs, effects use the rest.
type node struct {
	gen  uint32
	live bool
	kind nodeKind

	// signal state
	value any
	equal func(a, b any) bool
	subs  []ID

	// effect state
	fn          func()
	sources     []ID
	runCleanups []func() // registered from inside the body, run before each rerun
	cleanups    []func() // registered on the handle, run on disposal
	running     bool
	runs        uint64
}

// Runtime owns the reactive graph: the arena of signals and effects, the
// stack of evaluating effects, and the batch state.
//
// A Runtime is confined to a single goroutine.
type Runtime struct {
	nodes []*node
	free  []uint32

	// stack holds the effects currently evaluating, innermost last.
	// A zero ID frame disables tracking (see Untracked).
	stack []ID

	batchDepth int
	pending    []ID
	pendingSet map[ID]struct{}

	logger     *slog.Logger
	observer   Observer
	reentrancy ReentrancyPolicy
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger used for runtime diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(rt *Runtime) {
		if logger != nil {
			rt.logger = logger
		}
	}
}

// WithObserver sets the observer notified of effect runs, batch flushes and
// re-entrancy errors.
func WithObserver(o Observer) Option {
	return func(rt *Runtime) {
		if o != nil {
			rt.observer = o
		}
	}
}

// WithReentrancyPolicy sets how the runtime reacts when an effect is
// scheduled while it is already running.
func WithReentrancyPolicy(p ReentrancyPolicy) Option {
	return func(rt *Runtime) {
		rt.reentrancy = p
	}
}

// NewRuntime creates an empty runtime.
func NewRuntime(opts ...Option) *Runtime {
	rt := &Runtime{
		// slot 0 is reserved so the zero ID never resolves
		nodes:      []*node{{}},
		pendingSet: make(map[ID]struct{}),
		logger:     slog.Default().With("component", "reactive"),
		observer:   nopObserver{},
		reentrancy: ReentrancyPanic,
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// alloc claims a slot, reusing freed slots first.
func (rt *Runtime) alloc(kind nodeKind) (ID, *node) {
	if n := len(rt.free); n > 0 {
		idx := rt.free[n-1]
		rt.free = rt.free[:n-1]
		slot := rt.nodes[idx]
		gen := slot.gen
		*slot = node{gen: gen, live: true, kind: kind}
		return ID{Index: idx, Gen: gen}, slot
	}

	slot := &node{gen: 1, live: true, kind: kind}
	rt.nodes = append(rt.nodes, slot)
	return ID{Index: uint32(len(rt.nodes) - 1), Gen: 1}, slot
}

// release bumps the slot generation and returns it to the free list.
func (rt *Runtime) release(id ID) {
	slot := rt.lookup(id)
	if slot == nil {
		return
	}
	gen := slot.gen + 1
	if gen == 0 {
		gen = 1
	}
	*slot = node{gen: gen}
	rt.free = append(rt.free, id.Index)
}

// lookup resolves an ID, returning nil for stale or unknown IDs.
func (rt *Runtime) lookup(id ID) *node {
	if id.Gen == 0 || int(id.Index) >= len(rt.nodes) {
		return nil
	}
	n := rt.nodes[id.Index]
	if !n.live || n.gen != id.Gen {
		return nil
	}
	return n
}

func (rt *Runtime) signalNode(id ID) *node {
	n := rt.lookup(id)
	if n == nil || n.kind != kindSignal {
		return nil
	}
	return n
}

func (rt *Runtime) effectNode(id ID) *node {
	n := rt.lookup(id)
	if n == nil || n.kind != kindEffect {
		return nil
	}
	return n
}

// current returns the effect that reads should be attributed to.
func (rt *Runtime) current() ID {
	if len(rt.stack) == 0 {
		return ID{}
	}
	return rt.stack[len(rt.stack)-1]
}

func (rt *Runtime) push(id ID) {
	rt.stack = append(rt.stack, id)
}

func (rt *Runtime) pop() {
	rt.stack = rt.stack[:len(rt.stack)-1]
}

// track subscribes the current effect to the signal.
func (rt *Runtime) track(sig ID, s *node) {
	eid := rt.current()
	e := rt.effectNode(eid)
	if e == nil {
		return
	}
	if !containsID(s.subs, eid) {
		s.subs = append(s.subs, eid)
	}
	if !containsID(e.sources, sig) {
		e.sources = append(e.sources, sig)
	}
}

// notify schedules every subscriber of the signal. It iterates a snapshot so
// subscriptions changed by reruns do not affect this pass.
func (rt *Runtime) notify(sig ID) {
	s := rt.signalNode(sig)
	if s == nil || len(s.subs) == 0 {
		return
	}

	subs := make([]ID, len(s.subs))
	copy(subs, s.subs)

	stale := 0
	for _, sub := range subs {
		if rt.effectNode(sub) == nil {
			stale++
			continue
		}
		rt.schedule(sub)
	}

	if stale > 0 {
		rt.pruneStale(sig)
	}
}

// pruneStale drops subscriber IDs that no longer resolve to a live effect.
func (rt *Runtime) pruneStale(sig ID) {
	s := rt.signalNode(sig)
	if s == nil {
		return
	}
	kept := s.subs[:0]
	for _, sub := range s.subs {
		if rt.effectNode(sub) != nil {
			kept = append(kept, sub)
		}
	}
	s.subs = kept
}

// schedule is the single entry point used by signals: inside a batch the
// effect is deferred (once), otherwise it runs now.
func (rt *Runtime) schedule(id ID) {
	if rt.batchDepth > 0 {
		if _, ok := rt.pendingSet[id]; ok {
			return
		}
		rt.pendingSet[id] = struct{}{}
		rt.pending = append(rt.pending, id)
		return
	}
	rt.runEffect(id)
}

// Untracked runs fn without attributing signal reads to the running effect.
func (rt *Runtime) Untracked(fn func()) {
	rt.push(ID{})
	defer rt.pop()
	fn()
}

// SubscriberCount returns the number of subscriber IDs recorded on a signal,
// including IDs of disposed effects not yet swept by a notification.
func (rt *Runtime) SubscriberCount(sig ID) int {
	s := rt.signalNode(sig)
	if s == nil {
		return 0
	}
	return len(s.subs)
}

// Stats is a point-in-time summary of a Runtime.
type Stats struct {
	Signals    int
	Effects    int
	Pending    int
	BatchDepth int
	StackDepth int
}

// Stats returns counts of live signals and effects and the batch state.
func (rt *Runtime) Stats() Stats {
	st := Stats{
		Pending:    len(rt.pending),
		BatchDepth: rt.batchDepth,
		StackDepth: len(rt.stack),
	}
	for _, n := range rt.nodes {
		if !n.live {
			continue
		}
		switch n.kind {
		case kindSignal:
			st.Signals++
		case kindEffect:
			st.Effects++
		}
	}
	return st
}

func containsID(ids []ID, id ID) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}

func removeID(ids []ID, id ID) []ID {
	for i, existing := range ids {
		if existing == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
