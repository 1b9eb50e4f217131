package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vcore/internal/errors"
	"github.com/vango-dev/vcore/pkg/livetree"
	"github.com/vango-dev/vcore/pkg/observe"
	"github.com/vango-dev/vcore/pkg/reactive"
	"github.com/vango-dev/vcore/pkg/vdom"
	"github.com/vango-dev/vcore/pkg/view"
)

// benchOptions are the bench command flags.
type benchOptions struct {
	items   int
	updates int
	trace   bool
}

func benchCmd(a *app) *cobra.Command {
	opts := benchOptions{}

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Drive a mounted list view through a series of updates",
		Long: `Bench mounts a list view on an in-memory live tree and applies a series
of batched signal updates: text edits, selection moves, appends and
removals. It verifies the live tree against the final render and prints
timings and the collected metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.items <= 0 || opts.updates <= 0 {
				return errors.New("E143").WithSuggestionf("Got --items=%d --updates=%d", opts.items, opts.updates)
			}
			return runBench(cmd.Context(), a, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().IntVarP(&opts.items, "items", "n", 100, "Initial number of list items")
	cmd.Flags().IntVarP(&opts.updates, "updates", "u", 1000, "Number of batched updates")
	cmd.Flags().BoolVar(&opts.trace, "trace", false, "Export render spans to stderr")

	return cmd
}

// benchResult summarises one bench run.
type benchResult struct {
	Passes   int
	Elapsed  time.Duration
	Applied  int
	Signals  int
	Effects  int
	Verified bool
}

func runBench(ctx context.Context, a *app, opts benchOptions, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := a.cfg

	tracing := cfg.TracingConfig(stderr, version)
	if opts.trace {
		tracing.Exporter = "stdout"
	}
	tp, shutdown, err := observe.InitTracing(tracing)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			a.logger.Warn("tracer shutdown failed", "error", err)
		}
	}()

	registry := prometheus.NewRegistry()
	rtOpts := cfg.RuntimeOptions(a.logger)
	viewOpts := []view.Option{
		view.WithLogger(a.logger.With("component", "view")),
		view.WithTracer(tp.Tracer("github.com/vango-dev/vcore/cmd/vcore")),
	}

	var metrics *observe.Metrics
	if cfg.Metrics.Enabled {
		metrics = observe.NewMetrics(append(cfg.MetricsOptions(), observe.WithRegistry(registry))...)
		rtOpts = append(rtOpts, reactive.WithObserver(metrics))
		viewOpts = append(viewOpts, view.WithObserver(metrics))
	}

	rt := reactive.NewRuntime(rtOpts...)
	if cfg.Metrics.Enabled {
		if err := observe.RegisterRuntime(rt, append(cfg.MetricsOptions(), observe.WithRegistry(registry))...); err != nil {
			return err
		}
	}

	result, err := driveList(ctx, rt, opts, viewOpts)
	if err != nil {
		return err
	}

	printBenchResult(stdout, opts, result)
	if cfg.Metrics.Enabled {
		families, err := registry.Gather()
		if err != nil {
			return err
		}
		printFamilies(stdout, families)
	}
	if !result.Verified {
		return errors.New("E142").WithDetail("The live tree diverged from the final render.")
	}
	return nil
}

// driveList mounts the list view and runs the update script.
func driveList(ctx context.Context, rt *reactive.Runtime, opts benchOptions, viewOpts []view.Option) (benchResult, error) {
	items := reactive.NewSignal(rt, makeItems(opts.items))
	selected := reactive.NewSignal(rt, 0)
	label := reactive.NewComputed(rt, func() string {
		return strconv.Itoa(len(items.Get())) + " items"
	})

	render := func() *vdom.VNode {
		sel := selected.Get()
		return vdom.Div(vdom.Class("bench"),
			vdom.H1(vdom.Text(label.Get())),
			vdom.Ul(vdom.Range(items.Get(), func(item string, i int) *vdom.VNode {
				var attrs []vdom.Attr
				if i == sel {
					attrs = append(attrs, vdom.Class("selected"))
				}
				return vdom.Li(attrs, vdom.Text(item))
			})),
		)
	}

	tree := &livetree.Tree{}
	start := time.Now()
	root, err := view.Mount(ctx, rt, render, tree, viewOpts...)
	if err != nil {
		return benchResult{}, err
	}

	for u := 0; u < opts.updates; u++ {
		rt.Batch(func() {
			step(u, items, selected)
		})
		if err := root.Err(); err != nil {
			return benchResult{}, err
		}
	}
	elapsed := time.Since(start)

	var final *vdom.VNode
	rt.Untracked(func() { final = render() })

	stats := rt.Stats()
	root.Unmount()
	label.Dispose()

	return benchResult{
		Passes:   root.Passes(),
		Elapsed:  elapsed,
		Applied:  tree.Applied(),
		Signals:  stats.Signals,
		Effects:  stats.Effects,
		Verified: livetree.EqualIgnoringAttrOrder(tree.Snapshot(), final),
	}, nil
}

// step applies update u of the script: every update edits one item and
// moves the selection; every 10th appends, every 15th removes the tail.
func step(u int, items reactive.Signal[[]string], selected reactive.Signal[int]) {
	items.Update(func(cur []string) []string {
		next := append([]string(nil), cur...)
		if len(next) > 0 {
			i := u % len(next)
			next[i] = "item " + strconv.Itoa(i) + " v" + strconv.Itoa(u)
		}
		switch {
		case u%10 == 0:
			next = append(next, "item "+strconv.Itoa(len(next)))
		case u%15 == 0 && len(next) > 1:
			next = next[:len(next)-1]
		}
		return next
	})
	selected.Update(func(s int) int {
		n := len(items.GetUntracked())
		if n == 0 {
			return 0
		}
		return (s + 1) % n
	})
}

func makeItems(n int) []string {
	items := make([]string, n)
	for i := range items {
		items[i] = "item " + strconv.Itoa(i)
	}
	return items
}

func printBenchResult(w io.Writer, opts benchOptions, r benchResult) {
	fmt.Fprintf(w, "items:        %d\n", opts.items)
	fmt.Fprintf(w, "updates:      %d\n", opts.updates)
	fmt.Fprintf(w, "render passes: %d\n", r.Passes)
	fmt.Fprintf(w, "patches:      %d\n", r.Applied)
	fmt.Fprintf(w, "elapsed:      %s\n", r.Elapsed.Round(time.Microsecond))
	if r.Passes > 0 {
		fmt.Fprintf(w, "per pass:     %s\n", (r.Elapsed / time.Duration(r.Passes)).Round(time.Nanosecond))
	}
	fmt.Fprintf(w, "live:         %d signals, %d effects\n", r.Signals, r.Effects)
	fmt.Fprintf(w, "verified:     %t\n", r.Verified)
}

// printFamilies prints one line per series: counters and gauges by value,
// histograms by sample count and sum.
func printFamilies(w io.Writer, families []*dto.MetricFamily) {
	fmt.Fprintln(w)
	sort.Slice(families, func(i, j int) bool { return families[i].GetName() < families[j].GetName() })
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			name := mf.GetName() + labelString(m.GetLabel())
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				fmt.Fprintf(w, "%-44s %g\n", name, m.GetCounter().GetValue())
			case dto.MetricType_GAUGE:
				fmt.Fprintf(w, "%-44s %g\n", name, m.GetGauge().GetValue())
			case dto.MetricType_HISTOGRAM:
				h := m.GetHistogram()
				fmt.Fprintf(w, "%-44s count=%d sum=%g\n", name, h.GetSampleCount(), h.GetSampleSum())
			}
		}
	}
}

func labelString(labels []*dto.LabelPair) string {
	if len(labels) == 0 {
		return ""
	}
	s := "{"
	for i, l := range labels {
		if i > 0 {
			s += ","
		}
		s += l.GetName() + "=" + strconv.Quote(l.GetValue())
	}
	return s + "}"
}
