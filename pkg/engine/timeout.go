package engine

import (
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
)

// DefaultEvalTimeout is the hard limit for a single evaluation.
const DefaultEvalTimeout = 5 * time.Second

var (
	// ErrTimeout is returned when a script runs past the engine's timeout.
	ErrTimeout = errors.New("evaluation timed out")

	// ErrSuperseded is returned when a newer Evaluate call started while
	// this one was still running.
	ErrSuperseded = errors.New("evaluation superseded by newer request")
)

// evalResult carries one run's results back from its goroutine.
type evalResult struct {
	output *Output
	errors []EvalError
	err    error
}

// generation numbers Evaluate calls. Only the latest call's result counts.
type generation struct {
	n atomic.Uint64
}

func (g *generation) next() uint64 { return g.n.Add(1) }

func (g *generation) latest(id uint64) bool { return g.n.Load() == id }

// await blocks until ch yields a result or timeout expires. On timeout the
// run's goroutine may still be going; ch must be buffered so its late send
// never blocks.
func await(ch <-chan evalResult, id uint64, gen *generation, timeout time.Duration) (*Output, []EvalError, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		if !gen.latest(id) {
			return nil, nil, ErrSuperseded
		}
		return res.output, res.errors, res.err
	case <-timer.C:
		return nil, nil, errors.Wrapf(ErrTimeout, "after %s", timeout)
	}
}
