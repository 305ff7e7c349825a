package actuators

import (
	"errors"
	"sync"
	"time"

	"github.com/mlongus/MECH-EINF/services/hw"
	"github.com/mlongus/MECH-EINF/timing"
)

// StepMode selects the coil sequence table.
type StepMode int

const (
	// FullStep energises two coils per state, 4 states per cycle.
	FullStep StepMode = iota
	// HalfStep alternates one and two energised coils, 8 states per cycle.
	HalfStep
)

// full-step sequence of the rig's motor; direction reverses the traversal
var fullStepTable = [][4]int{
	{0, 1, 0, 1},
	{0, 1, 1, 0},
	{1, 0, 1, 0},
	{1, 0, 0, 1},
}

var halfStepTable = [][4]int{
	{0, 1, 0, 1},
	{0, 1, 0, 0},
	{0, 1, 1, 0},
	{0, 0, 1, 0},
	{1, 0, 1, 0},
	{1, 0, 0, 0},
	{1, 0, 0, 1},
	{0, 0, 0, 1},
}

// Stepper drives the four coils of the stepper motor through the driver
// board. The two enable pins gate the driver outputs.
type Stepper struct {
	coils    [4]hw.Output
	d1, d2   hw.Output
	table    [][4]int
	stepTime time.Duration
	sleeper  timing.Sleeper

	idx      int
	position int
}

// NewStepper wires the coil and enable lines. The sleeper controls the
// inter-step delay precision; NewBusy is the default for rig use.
func NewStepper(coils [4]hw.Output, d1, d2 hw.Output, mode StepMode, stepTime time.Duration, sleeper timing.Sleeper) *Stepper {
	table := fullStepTable
	if mode == HalfStep {
		table = halfStepTable
	}
	if sleeper == nil {
		sleeper = timing.NewBusy()
	}
	return &Stepper{
		coils:    coils,
		d1:       d1,
		d2:       d2,
		table:    table,
		stepTime: stepTime,
		sleeper:  sleeper,
		// first forward step applies table state 0
		idx: len(table) - 1,
	}
}

// Enable switches the driver output pins on.
func (s *Stepper) Enable() error {
	return errors.Join(s.d1.SetValue(1), s.d2.SetValue(1))
}

// Disable switches the driver output pins off.
func (s *Stepper) Disable() error {
	return errors.Join(s.d1.SetValue(0), s.d2.SetValue(0))
}

// Step advances the motor by n steps, negative n reverses. Each step
// applies the next coil state and waits the configured step time.
func (s *Stepper) Step(n int) error {
	dir := 1
	if n < 0 {
		dir = -1
		n = -n
	}
	for i := 0; i < n; i++ {
		if err := s.advance(dir); err != nil {
			return err
		}
		s.sleeper.Sleep(s.stepTime)
	}
	return nil
}

func (s *Stepper) advance(dir int) error {
	s.idx = (s.idx + dir + len(s.table)) % len(s.table)
	s.position += dir
	return s.apply(s.table[s.idx])
}

func (s *Stepper) apply(state [4]int) error {
	var err error
	for i, c := range s.coils {
		err = errors.Join(err, c.SetValue(state[i]))
	}
	return err
}

// Position returns the net step count since start.
func (s *Stepper) Position() int {
	return s.position
}

// Stop turns off all coils and disables the driver outputs. The one-step
// wait lets the de-energised state settle before the drivers are gated.
func (s *Stepper) Stop() error {
	if err := s.Enable(); err != nil {
		return err
	}
	if err := s.apply([4]int{0, 0, 0, 0}); err != nil {
		return err
	}
	s.sleeper.Sleep(s.stepTime)
	return s.Disable()
}

// Runner steps a motor continuously from a background goroutine on an
// absolute deadline schedule, so step jitter does not accumulate.
type Runner struct {
	stepper *Stepper
	dir     int

	once sync.Once
	stop chan struct{}
	done chan struct{}
	err  error
}

// NewRunner prepares a runner for continuous stepping in dir.
func NewRunner(stepper *Stepper, dir Direction) *Runner {
	d := 1
	if dir == Reverse {
		d = -1
	}
	return &Runner{
		stepper: stepper,
		dir:     d,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start launches the stepping goroutine.
func (r *Runner) Start() {
	go r.run()
}

func (r *Runner) run() {
	defer close(r.done)

	next := time.Now()
	for {
		select {
		case <-r.stop:
			return
		default:
		}

		if err := r.stepper.advance(r.dir); err != nil {
			r.err = err
			return
		}

		next = next.Add(r.stepper.stepTime)
		if wait := time.Until(next); wait > 0 {
			r.stepper.sleeper.Sleep(wait)
		}
	}
}

// Stop halts the goroutine, waits for it and de-energises the motor.
func (r *Runner) Stop() error {
	r.once.Do(func() { close(r.stop) })
	<-r.done
	if r.err != nil {
		return r.err
	}
	return r.stepper.Stop()
}

// Wait blocks until the runner goroutine has exited.
func (r *Runner) Wait() {
	<-r.done
}
