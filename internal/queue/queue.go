package queue

// Heap is a binary heap ordered by a caller-supplied less function.
// The element for which less reports true against all others is on top.
type Heap[T any] struct {
	items []T
	less  func(a, b T) bool
}

// New creates an empty heap with room for capacity items.
func New[T any](capacity int, less func(a, b T) bool) *Heap[T] {
	return &Heap[T]{
		items: make([]T, 0, capacity),
		less:  less,
	}
}

// Len returns the number of items in the heap.
func (h *Heap[T]) Len() int {
	return len(h.items)
}

// Top returns the top element of the heap.
func (h *Heap[T]) Top() (T, bool) {
	if len(h.items) == 0 {
		var zero T
		return zero, false
	}
	return h.items[0], true
}

// Push inserts an item while maintaining the heap invariant.
func (h *Heap[T]) Push(item T) {
	h.items = append(h.items, item)
	h.siftUp(len(h.items) - 1)
}

// Pop removes and returns the top element while maintaining the heap invariant.
func (h *Heap[T]) Pop() (T, bool) {
	var zero T
	n := len(h.items)
	if n == 0 {
		return zero, false
	}
	root := h.items[0]
	last := h.items[n-1]
	h.items[n-1] = zero
	h.items = h.items[:n-1]
	if n-1 > 0 {
		h.items[0] = last
		h.siftDown(0)
	}
	return root, true
}

// ReplaceTop overwrites the top element and restores the heap invariant.
// It is cheaper than Pop followed by Push.
func (h *Heap[T]) ReplaceTop(item T) {
	h.items[0] = item
	h.siftDown(0)
}

func (h *Heap[T]) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !h.less(h.items[i], h.items[p]) {
			return
		}
		h.items[i], h.items[p] = h.items[p], h.items[i]
		i = p
	}
}

func (h *Heap[T]) siftDown(i int) {
	n := len(h.items)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		best := l
		r := l + 1
		if r < n && h.less(h.items[r], h.items[l]) {
			best = r
		}
		if !h.less(h.items[best], h.items[i]) {
			return
		}
		h.items[i], h.items[best] = h.items[best], h.items[i]
		i = best
	}
}
