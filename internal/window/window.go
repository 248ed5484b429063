package window

// #region window
// Window is a fixed-capacity FIFO. Pushing into a full window evicts the
// oldest element and hands it back to the caller.
type Window[T any] struct {
	buf  []T
	head int // index of the oldest element
	size int
}

// New creates an empty window. capacity must be positive.
func New[T any](capacity int) *Window[T] {
	if capacity < 1 {
		panic("window: capacity must be positive")
	}
	return &Window[T]{buf: make([]T, capacity)}
}

// Push appends v. When the window was already full, the evicted oldest
// element is returned with ok=true.
func (w *Window[T]) Push(v T) (evicted T, ok bool) {
	if w.size < len(w.buf) {
		w.buf[(w.head+w.size)%len(w.buf)] = v
		w.size++
		return evicted, false
	}
	evicted = w.buf[w.head]
	w.buf[w.head] = v
	w.head = (w.head + 1) % len(w.buf)
	return evicted, true
}

// Len returns the number of elements held.
func (w *Window[T]) Len() int {
	return w.size
}

// Cap returns the capacity.
func (w *Window[T]) Cap() int {
	return len(w.buf)
}

// Items returns a copy of the contents, oldest first.
func (w *Window[T]) Items() []T {
	out := make([]T, w.size)
	for i := range out {
		out[i] = w.buf[(w.head+i)%len(w.buf)]
	}
	return out
}

// #endregion window
