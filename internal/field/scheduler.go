package field

// TickID identifies a pending tick request. Zero is never issued.
type TickID uint64

// Scheduler runs callbacks just before the host's next frame
type Scheduler interface {
	RequestTick(fn func()) TickID
	CancelTick(id TickID)
}

type tick struct {
	id TickID
	fn func()
}

// FrameQueue is a Scheduler fired by the host once per frame. Callbacks
// requested while a frame is firing wait for the next one.
type FrameQueue struct {
	seq     TickID
	pending []tick
	firing  []tick
}

// RequestTick queues fn for the next Fire
func (q *FrameQueue) RequestTick(fn func()) TickID {
	q.seq++
	q.pending = append(q.pending, tick{id: q.seq, fn: fn})
	return q.seq
}

// CancelTick drops a queued callback. Unknown or already run ids are ignored.
func (q *FrameQueue) CancelTick(id TickID) {
	q.pending = dropTick(q.pending, id)
	q.firing = dropTick(q.firing, id)
}

// Pending returns the number of callbacks waiting for the next Fire
func (q *FrameQueue) Pending() int { return len(q.pending) }

// Fire runs every callback queued before the call and returns how many ran
func (q *FrameQueue) Fire() int {
	q.firing, q.pending = q.pending, nil
	n := 0
	for len(q.firing) > 0 {
		t := q.firing[0]
		q.firing = q.firing[1:]
		t.fn()
		n++
	}
	q.firing = nil
	return n
}

func dropTick(ticks []tick, id TickID) []tick {
	for i, t := range ticks {
		if t.id == id {
			return append(ticks[:i], ticks[i+1:]...)
		}
	}
	return ticks
}
