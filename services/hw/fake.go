package hw

import (
	"sync"
)

// Test doubles shared by the sensor, actuator and controller tests.

// FakeLine records every value written to it and serves scripted reads.
type FakeLine struct {
	mu     sync.Mutex
	writes []int
	reads  []int
	value  int
}

func (f *FakeLine) SetValue(v int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, v)
	f.value = v
	return nil
}

func (f *FakeLine) Value() (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.reads) > 0 {
		v := f.reads[0]
		f.reads = f.reads[1:]
		return v, nil
	}
	return f.value, nil
}

// QueueReads scripts the values returned by subsequent Value calls.
func (f *FakeLine) QueueReads(values ...int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads = append(f.reads, values...)
}

// Writes returns a copy of every value written so far.
func (f *FakeLine) Writes() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int{}, f.writes...)
}

// Last returns the most recently written value, or -1 before any write.
func (f *FakeLine) Last() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.writes) == 0 {
		return -1
	}
	return f.writes[len(f.writes)-1]
}

// FakeAnalog serves scripted raw counts per channel and can inject errors.
type FakeAnalog struct {
	mu     sync.Mutex
	counts map[int][]uint16
	errs   map[int][]error
}

func NewFakeAnalog() *FakeAnalog {
	return &FakeAnalog{
		counts: map[int][]uint16{},
		errs:   map[int][]error{},
	}
}

// Queue scripts raw counts for a channel. The last value repeats forever.
func (f *FakeAnalog) Queue(channel int, values ...uint16) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts[channel] = append(f.counts[channel], values...)
}

// Fail injects an error before the remaining queued counts of a channel.
func (f *FakeAnalog) Fail(channel int, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[channel] = append(f.errs[channel], err)
}

func (f *FakeAnalog) Read(channel int) (uint16, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if errs := f.errs[channel]; len(errs) > 0 {
		err := errs[0]
		f.errs[channel] = errs[1:]
		return 0, err
	}
	vals := f.counts[channel]
	switch len(vals) {
	case 0:
		return 0, nil
	case 1:
		return vals[0], nil
	default:
		v := vals[0]
		f.counts[channel] = vals[1:]
		return v, nil
	}
}

// FakePWM records duty cycle changes.
type FakePWM struct {
	mu     sync.Mutex
	duties []float64
}

func (f *FakePWM) SetDuty(percent float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.duties = append(f.duties, percent)
	return nil
}

// Duties returns a copy of every duty value set so far.
func (f *FakePWM) Duties() []float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]float64{}, f.duties...)
}

// LastDuty returns the most recent duty value, or -1 before any set.
func (f *FakePWM) LastDuty() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.duties) == 0 {
		return -1
	}
	return f.duties[len(f.duties)-1]
}
