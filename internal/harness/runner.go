// Package harness drives an IndexedList through the scenarios of the
// list's acceptance suite, using synthetic values built from the configured
// data type label.
package harness

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	metrics "github.com/armon/go-metrics"
	"golang.org/x/sync/errgroup"

	"github.com/vskvj3/idxlist/internal/core"
	"github.com/vskvj3/idxlist/internal/datastructures"
	"github.com/vskvj3/idxlist/internal/utils"
)

// ErrSkipped marks a scenario that does not apply to the configuration.
var ErrSkipped = errors.New("skipped")

type Result struct {
	Name     string
	Err      error
	Duration time.Duration
}

func (r Result) Passed() bool { return r.Err == nil }

func (r Result) Skipped() bool { return errors.Is(r.Err, ErrSkipped) }

// Sample is an aggregated timing in milliseconds or, for error
// counters, a count with no Mean and Max.
type Sample struct {
	Name  string
	Count int
	Mean  float64
	Max   float64
}

type Report struct {
	Results []Result
	Samples []Sample
}

// Failed reports whether any scenario failed.
func (r Report) Failed() bool {
	for _, res := range r.Results {
		if !res.Passed() && !res.Skipped() {
			return true
		}
	}
	return false
}

type Runner struct {
	cfg     *utils.Config
	logger  *utils.Logger
	sink    *metrics.InmemSink
	metrics *metrics.Metrics
}

type scenario struct {
	name string
	run  func(ctx context.Context) error
}

// Timings are bucketed per minute and kept for a day, so a run never
// outlives its own samples.
const (
	metricsInterval = time.Minute
	metricsRetain   = 24 * time.Hour
)

func NewRunner(cfg *utils.Config, logger *utils.Logger) (*Runner, error) {
	return newRunner(cfg, logger, metrics.NewInmemSink(metricsInterval, metricsRetain))
}

func newRunner(cfg *utils.Config, logger *utils.Logger, sink *metrics.InmemSink) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	conf := metrics.DefaultConfig("listbench")
	conf.EnableHostname = false
	conf.EnableRuntimeMetrics = false
	m, err := metrics.New(conf, sink)
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}

	return &Runner{cfg: cfg, logger: logger, sink: sink, metrics: m}, nil
}

// Run executes every scenario in order and returns their results.
func (r *Runner) Run(ctx context.Context) Report {
	scenarios := []scenario{
		{"append_and_size", r.appendAndSize},
		{"index_consistency", r.indexConsistency},
		{"remove", r.remove},
		{"remove_nonexistent", r.removeNonexistent},
		{"append_over_max_size", r.appendOverMaxSize},
		{"concurrent_append", r.concurrentAppend},
		{"data_integrity", r.dataIntegrity},
		{"reverse_traversal", r.reverseTraversal},
	}

	var report Report
	for _, s := range scenarios {
		if err := ctx.Err(); err != nil {
			report.Results = append(report.Results, Result{Name: s.name, Err: err})
			continue
		}

		logger := r.logger.With("scenario", s.name)
		logger.Debug("Starting")

		start := time.Now()
		err := s.run(ctx)
		r.metrics.MeasureSince([]string{"scenario", s.name}, start)

		res := Result{Name: s.name, Err: err, Duration: time.Since(start)}
		switch {
		case res.Passed():
			logger.Info("Passed in " + res.Duration.String())
		case res.Skipped():
			logger.Warn("Skipped: " + err.Error())
		default:
			logger.Error("Failed: " + err.Error())
		}
		report.Results = append(report.Results, res)
	}

	report.Samples = r.samples()
	return report
}

func (r *Runner) newList() *datastructures.IndexedList {
	if n := r.cfg.Capacity(); n > 0 {
		return datastructures.New(datastructures.WithMaxSize(n))
	}
	return datastructures.New()
}

func (r *Runner) value(i int) string {
	return fmt.Sprintf("%s %d", r.cfg.DataType, i)
}

func (r *Runner) append(l *datastructures.IndexedList, value string) error {
	defer r.metrics.MeasureSince([]string{"append"}, time.Now())
	err := l.Append(value)
	if err != nil {
		r.metrics.IncrCounter([]string{"errors", core.ErrorCode(err)}, 1)
	}
	return err
}

func (r *Runner) removeValue(l *datastructures.IndexedList, value string) error {
	defer r.metrics.MeasureSince([]string{"remove"}, time.Now())
	err := l.Remove(value)
	if err != nil {
		r.metrics.IncrCounter([]string{"errors", core.ErrorCode(err)}, 1)
	}
	return err
}

func (r *Runner) appendAndSize(context.Context) error {
	l := r.newList()
	for i := 0; i < r.cfg.Quantity; i++ {
		if err := r.append(l, r.value(i)); err != nil {
			return fmt.Errorf("append %q: %w", r.value(i), err)
		}
	}
	if l.Len() != r.cfg.Quantity {
		return fmt.Errorf("size should be %d after appending, got %d", r.cfg.Quantity, l.Len())
	}
	return nil
}

func (r *Runner) indexConsistency(context.Context) error {
	l := r.newList()
	if err := r.append(l, "Test Data"); err != nil {
		return err
	}
	if !l.Contains("Test Data") {
		return errors.New("index should contain 'Test Data' after appending")
	}
	if err := r.removeValue(l, "Test Data"); err != nil {
		return err
	}
	if l.Contains("Test Data") {
		return errors.New("index should not contain 'Test Data' after removal")
	}
	return nil
}

func (r *Runner) remove(context.Context) error {
	l := r.newList()
	if err := r.append(l, "Remove Me"); err != nil {
		return err
	}
	if err := r.removeValue(l, "Remove Me"); err != nil {
		return err
	}
	if l.Len() != 0 {
		return fmt.Errorf("size should be 0 after removing the only item, got %d", l.Len())
	}
	return nil
}

func (r *Runner) removeNonexistent(context.Context) error {
	l := r.newList()
	if err := r.removeValue(l, "Nonexistent"); !errors.Is(err, datastructures.ErrEmptyList) {
		return fmt.Errorf("removing from an empty list should fail with %q, got %v", datastructures.ErrEmptyList, err)
	}

	if err := r.append(l, "Present"); err != nil {
		return err
	}
	if err := r.removeValue(l, "Nonexistent"); !errors.Is(err, datastructures.ErrNotFound) {
		return fmt.Errorf("removing a nonexistent item should fail with %q, got %v", datastructures.ErrNotFound, err)
	}
	if l.Len() != 1 {
		return fmt.Errorf("size should stay 1, got %d", l.Len())
	}
	return nil
}

func (r *Runner) appendOverMaxSize(context.Context) error {
	maxSize := r.cfg.Capacity()
	if maxSize <= 0 {
		return fmt.Errorf("%w: list is unbounded", ErrSkipped)
	}
	l := r.newList()
	for i := 0; i < maxSize; i++ {
		if err := r.append(l, r.value(i)); err != nil {
			return fmt.Errorf("append %q: %w", r.value(i), err)
		}
	}
	if err := r.append(l, "Overflow"); !errors.Is(err, datastructures.ErrListFull) {
		return fmt.Errorf("appending beyond max size should fail with %q, got %v", datastructures.ErrListFull, err)
	}
	if l.Len() != maxSize {
		return fmt.Errorf("size should stay %d, got %d", maxSize, l.Len())
	}
	return nil
}

func (r *Runner) concurrentAppend(ctx context.Context) error {
	return r.appendConcurrently(ctx, r.newList())
}

// share is how many of the Quantity values worker w appends; the first
// Quantity%Workers workers take one extra.
func (r *Runner) share(w int) int {
	n := r.cfg.Quantity / r.cfg.Workers
	if w < r.cfg.Quantity%r.cfg.Workers {
		n++
	}
	return n
}

func (r *Runner) threadValue(w, i int) string {
	return fmt.Sprintf("Thread %d %s", w, r.value(i))
}

func (r *Runner) appendConcurrently(ctx context.Context, l *datastructures.IndexedList) error {
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < r.cfg.Workers; w++ {
		g.Go(func() error {
			for i := 0; i < r.share(w); i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				v := r.threadValue(w, i)
				if err := r.append(l, v); err != nil {
					return fmt.Errorf("append %q: %w", v, err)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if l.Len() != r.cfg.Quantity {
		return fmt.Errorf("size should be %d after concurrent appends, got %d", r.cfg.Quantity, l.Len())
	}
	for w := 0; w < r.cfg.Workers; w++ {
		for i := 0; i < r.share(w); i++ {
			if v := r.threadValue(w, i); !l.Contains(v) {
				return fmt.Errorf("value %q lost", v)
			}
		}
	}
	return nil
}

func (r *Runner) dataIntegrity(context.Context) error {
	l := r.newList()
	for i := 0; i < r.cfg.Quantity; i++ {
		if err := r.append(l, r.value(i)); err != nil {
			return fmt.Errorf("append %q: %w", r.value(i), err)
		}
	}
	half := r.cfg.Quantity / 2
	for i := 0; i < half; i++ {
		if err := r.removeValue(l, r.value(i)); err != nil {
			return fmt.Errorf("remove %q: %w", r.value(i), err)
		}
	}
	if want := r.cfg.Quantity - half; l.Len() != want {
		return fmt.Errorf("size should be %d after removing half the items, got %d", want, l.Len())
	}

	backward := l.ReverseValues()
	slices.Reverse(backward)
	if !slices.Equal(l.Values(), backward) {
		return errors.New("forward traversal is not the reverse of backward traversal")
	}
	return nil
}

func (r *Runner) reverseTraversal(context.Context) error {
	if n := r.cfg.Capacity(); n > 0 && n < 2 {
		return fmt.Errorf("%w: list holds fewer than two values", ErrSkipped)
	}
	l := r.newList()
	for _, v := range []string{"First", "Second"} {
		if err := r.append(l, v); err != nil {
			return err
		}
	}

	got := strings.Join(slices.Collect(l.Backward()), " ")
	if got != "Second First" {
		return fmt.Errorf("reverse traversal should yield 'Second First', got %q", got)
	}
	return nil
}

// samples merges the retained metrics intervals, sorted by name.
func (r *Runner) samples() []Sample {
	merged := make(map[string]*Sample)
	add := func(name string, agg *metrics.AggregateSample, counter bool) {
		if agg == nil {
			return
		}
		s, ok := merged[name]
		if !ok {
			s = &Sample{Name: name}
			merged[name] = s
		}
		if counter {
			s.Count += int(agg.Sum)
			return
		}
		total := s.Mean*float64(s.Count) + agg.Sum
		s.Count += agg.Count
		if s.Count > 0 {
			s.Mean = total / float64(s.Count)
		}
		s.Max = max(s.Max, agg.Max)
	}

	for _, interval := range r.sink.Data() {
		for name, v := range interval.Samples {
			add(name, v.AggregateSample, false)
		}
		for name, v := range interval.Counters {
			add(name, v.AggregateSample, true)
		}
	}

	out := make([]Sample, 0, len(merged))
	for _, s := range merged {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
