// Package view connects the reactive runtime to the tree diff: a mounted
// render function reruns whenever a signal it read changes, and each new tree
// is diffed against the previous one and handed to a Renderer as patches.
package view

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vcore/pkg/reactive"
	"github.com/vango-dev/vcore/pkg/vdom"
)

// tracerName is the instrumentation scope used when no tracer is configured.
const tracerName = "github.com/vango-dev/vcore/pkg/view"

// Renderer applies trees and patches to a live tree (DOM, native widgets, or
// livetree in tests).
type Renderer interface {
	// Mount replaces the live tree with root.
	Mount(root *vdom.VNode) error

	// Apply applies patches in order.
	Apply(patches []vdom.Patch) error
}

// Observer receives render pass results.
type Observer interface {
	// RenderPass is called after a successful pass. mount is true when the
	// whole tree was mounted, in which case patches is empty.
	RenderPass(mount bool, patches []vdom.Patch, d time.Duration)

	// RenderError is called when the renderer rejects a pass.
	RenderError(err error)
}

type nopObserver struct{}

func (nopObserver) RenderPass(bool, []vdom.Patch, time.Duration) {}
func (nopObserver) RenderError(error)                            {}

// Option configures a Root.
type Option func(*Root)

// WithLogger sets the logger for render diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Root) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithTracer sets the tracer used for render pass spans.
// Default: the global provider's tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(r *Root) {
		if tracer != nil {
			r.tracer = tracer
		}
	}
}

// WithObserver sets the render observer.
func WithObserver(o Observer) Option {
	return func(r *Root) {
		if o != nil {
			r.observer = o
		}
	}
}

// Root is a mounted render function.
type Root struct {
	ctx      context.Context
	rt       *reactive.Runtime
	render   func() *vdom.VNode
	renderer Renderer

	effect  reactive.Effect
	tree    *vdom.VNode
	mounted bool
	passes  int
	err     error

	logger   *slog.Logger
	tracer   trace.Tracer
	observer Observer
}

// Mount renders once, mounts the result on renderer, and keeps the renderer
// in sync from then on. render is tracked: every signal it reads becomes a
// dependency of the view. Renderer calls are untracked.
//
// ctx parents the spans of every render pass. The returned error is the
// initial mount error, if any; the Root is usable either way and retries a
// full mount on the next pass.
func Mount(ctx context.Context, rt *reactive.Runtime, render func() *vdom.VNode, renderer Renderer, opts ...Option) (*Root, error) {
	r := &Root{
		ctx:      ctx,
		rt:       rt,
		render:   render,
		renderer: renderer,
		logger:   slog.Default().With("component", "view"),
		tracer:   otel.Tracer(tracerName),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(r)
	}

	r.effect = rt.CreateEffect(r.pass)
	return r, r.err
}

// pass renders, diffs and applies one frame.
func (r *Root) pass() {
	start := time.Now()
	_, span := r.tracer.Start(r.ctx, "vcore.render",
		trace.WithAttributes(attribute.Int("vcore.pass", r.passes+1)),
	)
	defer span.End()

	next := r.render()

	var (
		patches []vdom.Patch
		err     error
	)
	remount := !r.mounted
	r.rt.Untracked(func() {
		if remount {
			err = r.renderer.Mount(next)
			return
		}
		patches = vdom.Diff(r.tree, next)
		if len(patches) > 0 {
			err = r.renderer.Apply(patches)
		}
	})
	r.passes++

	span.SetAttributes(
		attribute.Bool("vcore.mount", remount),
		attribute.Int("vcore.patches", len(patches)),
	)

	if err != nil {
		r.err = err
		// The live tree may be partially patched; start over next time.
		r.mounted = false
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.logger.Error("render pass failed", "pass", r.passes, "mount", remount, "error", err)
		r.observer.RenderError(err)
		return
	}

	r.err = nil
	r.mounted = true
	r.tree = next
	r.logger.Debug("render pass", "pass", r.passes, "mount", remount, "patches", len(patches))
	r.observer.RenderPass(remount, patches, time.Since(start))
}

// Tree returns the last successfully rendered tree.
func (r *Root) Tree() *vdom.VNode {
	return r.tree
}

// Err returns the error of the last pass, or nil if it succeeded.
func (r *Root) Err() error {
	return r.err
}

// Passes returns how many render passes have run.
func (r *Root) Passes() int {
	return r.passes
}

// Effect returns the effect driving the view.
func (r *Root) Effect() reactive.Effect {
	return r.effect
}

// Unmount stops the view from reacting to further changes. The live tree is
// left as is.
func (r *Root) Unmount() {
	r.effect.Dispose()
}
