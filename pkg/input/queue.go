package input

import (
	"sync"
)

func NewQueue() *Queue {
	return &Queue{wakeup: make(chan struct{}, 1)}
}

// Queue is an unbounded FIFO of events. Any goroutine may Push; a single
// consumer drains it with Next.
type Queue struct {
	l      sync.Mutex
	events []Event
	wakeup chan struct{}
}

// Push appends ev and wakes a consumer waiting on Wakeup.
func (q *Queue) Push(ev Event) {
	q.l.Lock()
	q.events = append(q.events, ev)
	q.l.Unlock()

	select {
	case q.wakeup <- struct{}{}:
	default:
	}
}

// WakeupChan fires after a Push. A single signal may stand for many pushes.
func (q *Queue) WakeupChan() <-chan struct{} {
	return q.wakeup
}

func (q *Queue) Len() int {
	q.l.Lock()
	defer q.l.Unlock()
	return len(q.events)
}

// Next pops one event. Before popping, any run of adjacent Motion events at
// the head is collapsed to its last element; dropped reports how many were
// discarded.
func (q *Queue) Next() (ev Event, dropped int, ok bool) {
	q.l.Lock()
	defer q.l.Unlock()

	if len(q.events) == 0 {
		return nil, 0, false
	}

	for len(q.events) > 1 && isMotion(q.events[0]) && isMotion(q.events[1]) {
		q.events[0] = nil
		q.events = q.events[1:]
		dropped++
	}

	ev = q.events[0]
	q.events[0] = nil
	q.events = q.events[1:]
	if len(q.events) == 0 {
		q.events = nil
	}

	return ev, dropped, true
}

func isMotion(ev Event) bool {
	_, ok := ev.(Motion)
	return ok
}
