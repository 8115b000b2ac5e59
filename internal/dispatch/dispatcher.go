package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/roach88/nutridash/internal/filter"
	"github.com/roach88/nutridash/internal/menu"
	"github.com/roach88/nutridash/internal/view"
)

// OutputState is the lifecycle state of one output slot.
type OutputState string

const (
	OutputIdle      OutputState = "idle"
	OutputComputing OutputState = "computing"
	OutputRendered  OutputState = "rendered"
	OutputError     OutputState = "error"
)

// Slot is the last known state of an output.
type Slot struct {
	Output   OutputID      `json:"output"`
	State    OutputState   `json:"state"`
	Artifact view.Artifact `json:"artifact"`

	// Seq is the cycle that produced Artifact, 0 while idle.
	Seq int64 `json:"seq"`
}

// Cycle reports what one Dispatch call did.
type Cycle struct {
	Seq     int64     `json:"seq"`
	ID      string    `json:"id"`
	Changed []InputID `json:"changed"`

	// Status is the filter outcome, zero when no recomputed output filtered.
	Status filter.Status `json:"-"`

	// Recomputed lists the outputs whose generators ran, in declaration order.
	Recomputed []OutputID `json:"recomputed"`

	Artifacts map[OutputID]view.Artifact `json:"artifacts"`
	Faults    []*GeneratorFault          `json:"-"`
}

// Sink receives the outcome of every cycle processed by Run.
type Sink func(*Cycle, error)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithIDGenerator overrides the cycle ID generator (default UUIDv7).
func WithIDGenerator(g IDGenerator) Option {
	return func(d *Dispatcher) { d.ids = g }
}

// WithMetrics records cycle and generator metrics.
func WithMetrics(m *Metrics) Option {
	return func(d *Dispatcher) { d.metrics = m }
}

// WithSink receives cycle reports from Run.
func WithSink(s Sink) Option {
	return func(d *Dispatcher) { d.sink = s }
}

// Dispatcher is the reactive dependency graph between inputs and outputs.
//
// Thread-safety model:
//   - Dispatch and Run must be driven from one goroutine at a time
//   - Enqueue and Stop are safe from any goroutine
//   - Slot and Slots must not race with Dispatch
//
// INVARIANTS:
//   - bindings order never changes after construction
//   - output IDs are unique
//   - an output's artifact only changes in a cycle whose changed inputs
//     intersect its declared inputs
type Dispatcher struct {
	dataset  *menu.Dataset
	bindings []Binding
	slots    map[OutputID]*Slot
	last     *filter.Criteria

	clock   *Clock
	ids     IDGenerator
	queue   *snapshotQueue
	metrics *Metrics
	sink    Sink
}

// New validates bindings and creates a Dispatcher over ds. Every output
// starts Idle.
func New(ds *menu.Dataset, bindings []Binding, opts ...Option) (*Dispatcher, error) {
	if ds == nil {
		return nil, &ConfigError{Message: "dataset is required"}
	}

	d := &Dispatcher{
		dataset:  ds,
		bindings: make([]Binding, len(bindings)),
		slots:    make(map[OutputID]*Slot, len(bindings)),
		clock:    NewClock(),
		ids:      UUIDv7Generator{},
		queue:    newSnapshotQueue(),
	}
	copy(d.bindings, bindings)

	for _, b := range d.bindings {
		if b.Output == "" {
			return nil, &ConfigError{Message: "binding without output id"}
		}
		if _, dup := d.slots[b.Output]; dup {
			return nil, &ConfigError{Output: b.Output, Message: "declared twice"}
		}
		if b.Generate == nil {
			return nil, &ConfigError{Output: b.Output, Message: "missing generator"}
		}
		if len(b.Inputs) == 0 {
			return nil, &ConfigError{Output: b.Output, Message: "no declared inputs"}
		}
		for _, in := range b.Inputs {
			if _, err := ParseInputID(string(in)); err != nil {
				return nil, &ConfigError{Output: b.Output, Message: err.Error()}
			}
		}
		d.slots[b.Output] = &Slot{Output: b.Output, State: OutputIdle}
	}

	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Dispatch processes one input snapshot synchronously.
//
// Malformed input is rejected with a *filter.CriteriaError and leaves every
// output untouched. Otherwise only outputs whose declared inputs changed
// are recomputed; generator faults are reported on the Cycle and never
// returned as an error.
func (d *Dispatcher) Dispatch(ctx context.Context, in filter.Input) (*Cycle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	crit, err := filter.NewCriteria(d.dataset, in)
	if err != nil {
		return nil, fmt.Errorf("reject input: %w", err)
	}

	start := time.Now()
	cycle := &Cycle{
		Seq:       d.clock.Next(),
		ID:        d.ids.Generate(),
		Changed:   changedInputs(d.last, crit),
		Artifacts: make(map[OutputID]view.Artifact),
	}
	d.last = &crit

	slog.Debug("dispatch cycle",
		"seq", cycle.Seq,
		"cycle", cycle.ID,
		"changed", cycle.Changed,
	)

	frame := &Frame{Dataset: d.dataset, Criteria: crit}
	for _, b := range d.bindings {
		if !b.dependsOn(cycle.Changed) {
			continue
		}
		d.render(cycle, frame, b)
	}
	if frame.computed {
		cycle.Status = frame.result.Status
	}

	d.metrics.observeCycle(time.Since(start))
	slog.Debug("dispatch cycle done",
		"seq", cycle.Seq,
		"cycle", cycle.ID,
		"recomputed", cycle.Recomputed,
		"status", cycle.Status.String(),
	)
	return cycle, nil
}

// render runs one generator and records its outcome on the slot.
func (d *Dispatcher) render(cycle *Cycle, frame *Frame, b Binding) {
	slot := d.slots[b.Output]
	slot.State = OutputComputing
	d.metrics.recompute(b.Output)

	artifact, err := safeGenerate(b, frame)
	if err != nil {
		fault := &GeneratorFault{Output: b.Output, CycleID: cycle.ID, Cause: err}
		slog.Error("generator fault",
			"output", b.Output,
			"cycle", cycle.ID,
			"seq", cycle.Seq,
			"error", err,
		)
		d.metrics.fault(b.Output)
		cycle.Faults = append(cycle.Faults, fault)
		artifact = view.Error(b.Kind, fault)
		slot.State = OutputError
	} else {
		slot.State = OutputRendered
	}

	slot.Artifact = artifact
	slot.Seq = cycle.Seq
	cycle.Recomputed = append(cycle.Recomputed, b.Output)
	cycle.Artifacts[b.Output] = artifact
}

// safeGenerate converts a generator panic into an error.
func safeGenerate(b Binding, frame *Frame) (a view.Artifact, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return b.Generate(frame)
}

// Slot returns a copy of one output's state.
func (d *Dispatcher) Slot(id OutputID) (Slot, bool) {
	s, ok := d.slots[id]
	if !ok {
		return Slot{}, false
	}
	return *s, true
}

// Slots returns a copy of every output's state in declaration order.
func (d *Dispatcher) Slots() []Slot {
	out := make([]Slot, 0, len(d.bindings))
	for _, b := range d.bindings {
		out = append(out, *d.slots[b.Output])
	}
	return out
}

// Outputs returns the declared output IDs in declaration order.
func (d *Dispatcher) Outputs() []OutputID {
	out := make([]OutputID, len(d.bindings))
	for i, b := range d.bindings {
		out[i] = b.Output
	}
	return out
}

// Enqueue submits a snapshot to the Run loop. Returns false after Stop.
func (d *Dispatcher) Enqueue(in filter.Input) bool {
	return d.queue.Enqueue(in)
}

// QueueLen returns the number of pending snapshots.
func (d *Dispatcher) QueueLen() int {
	return d.queue.Len()
}

// Stop closes the queue. Run drains what is pending, then returns.
func (d *Dispatcher) Stop() {
	d.queue.Close()
}

// Run is the single-writer loop: it dispatches queued snapshots one at a
// time until ctx is cancelled or Stop is called and the queue is drained.
//
// Rejected input is logged and reported to the sink; the loop continues.
func (d *Dispatcher) Run(ctx context.Context) error {
	slog.Info("dispatcher starting", "outputs", len(d.bindings))

	for {
		if err := ctx.Err(); err != nil {
			slog.Info("dispatcher stopping: context cancelled")
			d.queue.Close()
			return err
		}

		in, ok := d.queue.TryDequeue()
		if ok {
			cycle, err := d.Dispatch(ctx, in)
			if err != nil {
				slog.Warn("input rejected", "error", err)
			}
			if d.sink != nil {
				d.sink(cycle, err)
			}
			continue
		}

		if d.queue.Closed() {
			slog.Info("dispatcher stopping: queue closed")
			return nil
		}

		select {
		case <-ctx.Done():
			slog.Info("dispatcher stopping: context cancelled")
			d.queue.Close()
			return ctx.Err()
		case <-d.queue.Wait():
		}
	}
}
