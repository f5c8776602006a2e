package feature

// Window is a rolling buffer of the most recent values ordered oldest to newest. Once the
// capacity is reached every push evicts the oldest value.
type Window struct {
	capacity int
	values   []float64
}

// NewWindow creates a window with the given capacity seeded with the newest capacity values
// of seed
func NewWindow(capacity int, seed ...float64) *Window {
	if capacity < 1 {
		capacity = 1
	}
	w := &Window{
		capacity: capacity,
		values:   make([]float64, 0, capacity+1),
	}
	for _, v := range seed {
		w.Push(v)
	}
	return w
}

// Push appends a value evicting the oldest if the window exceeds its capacity
func (w *Window) Push(v float64) {
	w.values = append(w.values, v)
	if len(w.values) > w.capacity {
		w.values = append(w.values[:0], w.values[1:]...)
	}
}

// Len returns the number of values held
func (w *Window) Len() int {
	if w == nil {
		return 0
	}
	return len(w.values)
}

// Cap returns the capacity of the window
func (w *Window) Cap() int {
	if w == nil {
		return 0
	}
	return w.capacity
}

// Full reports whether the window holds exactly its capacity
func (w *Window) Full() bool {
	return w.Len() == w.Cap()
}

// Values returns a copy of the window ordered oldest to newest
func (w *Window) Values() []float64 {
	if w == nil {
		return nil
	}
	dst := make([]float64, len(w.values))
	copy(dst, w.values)
	return dst
}

// Lag returns the k-th most recent value where lag 1 is the newest. The boolean is false if
// the window does not hold k values.
func (w *Window) Lag(k int) (float64, bool) {
	if k < 1 || k > w.Len() {
		return 0, false
	}
	return w.values[len(w.values)-k], true
}

// Last returns the newest value or 0 if the window is empty
func (w *Window) Last() float64 {
	v, _ := w.Lag(1)
	return v
}
