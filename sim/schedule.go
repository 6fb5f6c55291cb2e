package sim

import (
	"container/heap"
	"context"
	"math"
	"slices"

	"go.uber.org/zap"

	"github.com/wippyai/vhpi/abi"
	"github.com/wippyai/vhpi/simtime"
)

type eventKind uint8

const (
	evTransaction eventKind = iota + 1 // driver update, ignored while forced
	evForce                            // forced update with propagation
	evRelease                          // end of a force
	evCallback                         // delayed callback due
)

type event struct {
	at   int64
	seq  uint64
	kind eventKind
	sig  *object
	val  []int64
	cb   *callback
}

// eventQueue orders events by time, then by insertion.
type eventQueue []*event

func (q eventQueue) Len() int { return len(q) }

func (q eventQueue) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	return q[i].seq < q[j].seq
}

func (q eventQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *eventQueue) Push(x any) { *q = append(*q, x.(*event)) }

func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return e
}

func (s *Simulator) schedule(e *event) {
	s.seq++
	e.seq = s.seq
	heap.Push(&s.queue, e)
}

// popAt removes every event due at t.
func (s *Simulator) popAt(t int64) []*event {
	var batch []*event
	for len(s.queue) > 0 && s.queue[0].at == t {
		batch = append(batch, heap.Pop(&s.queue).(*event))
	}
	return batch
}

// Run simulates until the event queue drains or a callback asks to finish,
// then fires the end of simulation callbacks. Control(Stop) pauses it; call
// Run again to resume.
func (s *Simulator) Run(ctx context.Context) error {
	return s.run(ctx, math.MaxInt64)
}

// RunUntil simulates every time step up to and including limit, then pauses
// with the current time set to limit.
func (s *Simulator) RunUntil(ctx context.Context, limit simtime.Time) error {
	return s.run(ctx, limit.Int64())
}

func (s *Simulator) run(ctx context.Context, limit int64) error {
	if s.finished {
		return nil
	}
	s.stopped = false

	if !s.started {
		s.started = true
		s.log.Debug("start of simulation")
		s.fireReason(abi.CbStartOfSimulation, nil)
		s.step(0)
	}

	for !s.stopped && !s.finishing {
		if err := ctx.Err(); err != nil {
			return err
		}
		if len(s.queue) == 0 {
			s.finishing = true
			break
		}
		next := s.queue[0].at
		if next > limit {
			if limit > s.now {
				s.now = limit
			}
			return nil
		}
		s.step(next)
	}

	if s.finishing {
		s.finish()
	}
	return nil
}

// step executes every delta cycle of one time step.
func (s *Simulator) step(t int64) {
	s.now = t
	s.log.Debug("time step", zap.Stringer("time", simtime.FromInt64(t)))

	for _, c := range s.snapshot() {
		if (c.reason == abi.CbNextTimeStep || c.reason == abi.CbRepNextTimeStep) && c.since < t {
			s.fire(c, nil)
		}
	}

	for {
		batch := s.popAt(t)
		if len(batch) == 0 {
			break
		}
		s.cycles++

		var changed []*object
		for _, e := range batch {
			switch e.kind {
			case evTransaction:
				if s.apply(e.sig, e.val, false) {
					changed = appendUnique(changed, e.sig)
				}
			case evForce:
				if s.apply(e.sig, e.val, true) {
					changed = appendUnique(changed, e.sig)
				}
				s.fireObject(abi.CbForce, e.sig)
			case evRelease:
				s.fireObject(abi.CbRelease, e.sig)
			}
		}
		for _, sig := range changed {
			s.fireObject(abi.CbValueChange, sig)
		}
		for _, e := range batch {
			if e.kind == evCallback {
				s.fireDelayed(e.cb)
			}
		}
	}

	for _, c := range s.snapshot() {
		if c.reason == abi.CbEndOfTimeStep || c.reason == abi.CbRepEndOfTimeStep {
			s.fire(c, nil)
		}
	}
	s.prune()
}

// apply updates a signal and reports whether its value changed.
func (s *Simulator) apply(sig *object, val []int64, force bool) bool {
	if sig.forced && !force {
		return false
	}
	if slices.Equal(sig.value, val) {
		return false
	}
	sig.value = append(sig.value[:0], val...)
	return true
}

func (s *Simulator) finish() {
	if s.finished {
		return
	}
	s.finished = true
	s.log.Debug("end of simulation", zap.Stringer("time", simtime.FromInt64(s.now)))
	s.fireReason(abi.CbEndOfSimulation, nil)
}

func appendUnique(list []*object, o *object) []*object {
	for _, x := range list {
		if x == o {
			return list
		}
	}
	return append(list, o)
}
