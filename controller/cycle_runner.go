package controller

import (
	"context"
	"time"

	"github.com/mlongus/MECH-EINF/services/actuators"
	"github.com/mlongus/MECH-EINF/utils"
)

// Movement executes one slide movement in the given direction: a fixed
// step count for the stepper, a fixed drivetime for the DC motor.
type Movement func(dir actuators.Direction) error

// CycleRunner repeats alternating-direction movements for the measurement
// labs: one cycle is a movement up and a movement down the guideway.
type CycleRunner struct {
	cycles   int
	startDir actuators.Direction
	pause    time.Duration
	log      *utils.Logger

	sleep func(time.Duration)
}

func NewCycleRunner(cycles int, startDir actuators.Direction, pause time.Duration) *CycleRunner {
	return &CycleRunner{
		cycles:   cycles,
		startDir: startDir,
		pause:    pause,
		log:      utils.L(),
		sleep:    time.Sleep,
	}
}

// Run executes 2*cycles movements, pausing between them but not after the
// last one. Cancelling the context stops before the next movement.
func (r *CycleRunner) Run(ctx context.Context, move Movement) error {
	movements := r.cycles * 2
	dir := r.startDir

	for i := 0; i < movements; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		r.log.Info("movement %d/%d  direction=%s", i+1, movements, dir)
		if err := move(dir); err != nil {
			return err
		}
		dir = dir.Flip()

		if i != movements-1 && r.pause > 0 {
			r.sleep(r.pause)
		}
	}
	return nil
}
