package field

// Listeners is a registration list a host uses to fan one kind of event
// out to mounted fields. The zero value is ready to use.
type Listeners[T any] struct {
	next    int
	entries []entry[T]
}

type entry[T any] struct {
	id int
	fn T
}

// Add registers fn and returns its release. Releasing twice is harmless.
func (l *Listeners[T]) Add(fn T) Cancel {
	l.next++
	id := l.next
	l.entries = append(l.entries, entry[T]{id: id, fn: fn})
	return func() { l.remove(id) }
}

func (l *Listeners[T]) remove(id int) {
	l.entries = without(l.entries, id)
}

func without[T any](es []entry[T], id int) []entry[T] {
	for i, e := range es {
		if e.id == id {
			return append(es[:i], es[i+1:]...)
		}
	}
	return es
}

// Each calls call for every listener registered when Each starts, in
// registration order. Listeners may release themselves while being called.
func (l *Listeners[T]) Each(call func(T)) {
	snapshot := append([]entry[T](nil), l.entries...)
	for _, e := range snapshot {
		call(e.fn)
	}
}

func (l *Listeners[T]) Len() int { return len(l.entries) }

// FrameQueue holds one-shot frame callbacks until the host's next repaint,
// the way requestAnimationFrame does. Cancelling a callback that is due in
// the current Run keeps it from running, like cancelAnimationFrame.
type FrameQueue struct {
	next    int
	pending []entry[func()]
	due     []entry[func()]
}

func (q *FrameQueue) Request(fn func()) Cancel {
	q.next++
	id := q.next
	q.pending = append(q.pending, entry[func()]{id: id, fn: fn})
	return func() {
		q.pending = without(q.pending, id)
		q.due = without(q.due, id)
	}
}

// Run invokes the callbacks queued before the call and drops them.
// Callbacks requested while running wait for the next Run.
func (q *FrameQueue) Run() int {
	q.due, q.pending = q.pending, nil
	n := 0
	for len(q.due) > 0 {
		e := q.due[0]
		q.due = q.due[1:]
		e.fn()
		n++
	}
	return n
}

func (q *FrameQueue) Pending() int { return len(q.pending) }
