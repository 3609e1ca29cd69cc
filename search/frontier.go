package search

import "container/heap"

// Frontier is the ordered collection of generated but not yet expanded nodes.
// The three implementations differ only in their ordering discipline.
type Frontier interface {
	Push(n *Node)
	// Pop removes and returns the next node. It panics on an empty frontier.
	Pop() *Node
	Len() int
	IsEmpty() bool
}

// FIFO is an unbounded first-in first-out queue. It backs breadth-first search.
type FIFO struct {
	items []*Node
	head  int
}

// NewFIFO returns an empty FIFO queue.
func NewFIFO() *FIFO { return &FIFO{} }

// Push appends n at the tail.
func (q *FIFO) Push(n *Node) { q.items = append(q.items, n) }

// Pop removes the head of the queue.
func (q *FIFO) Pop() *Node {
	if q.IsEmpty() {
		panic("search: Pop on empty FIFO")
	}
	n := q.items[q.head]
	q.items[q.head] = nil
	q.head++
	// reclaim the consumed prefix once it dominates the backing array
	if q.head > 32 && q.head*2 >= len(q.items) {
		q.items = append([]*Node(nil), q.items[q.head:]...)
		q.head = 0
	}

	return n
}

// Len returns the number of queued nodes.
func (q *FIFO) Len() int { return len(q.items) - q.head }

// IsEmpty reports whether the queue holds no node.
func (q *FIFO) IsEmpty() bool { return q.Len() == 0 }

// LIFO is a last-in first-out stack. It backs the depth-first strategies, which
// keep their pending nodes here instead of on the goroutine stack.
type LIFO struct {
	items []*Node
}

// NewLIFO returns an empty stack.
func NewLIFO() *LIFO { return &LIFO{} }

// Push places n on top of the stack.
func (s *LIFO) Push(n *Node) { s.items = append(s.items, n) }

// Pop removes the top of the stack.
func (s *LIFO) Pop() *Node {
	if s.IsEmpty() {
		panic("search: Pop on empty LIFO")
	}
	last := len(s.items) - 1
	n := s.items[last]
	s.items[last] = nil
	s.items = s.items[:last]

	return n
}

// Len returns the number of stacked nodes.
func (s *LIFO) Len() int { return len(s.items) }

// IsEmpty reports whether the stack holds no node.
func (s *LIFO) IsEmpty() bool { return len(s.items) == 0 }

// PriorityQueue is a min-queue keyed by Node.Priority. Entries with equal keys
// pop in push order: each entry carries a monotonically increasing sequence
// number used as secondary sort key.
//
// Stale entries are not removed eagerly; the strategies discard them on pop.
type PriorityQueue struct {
	h   entryHeap
	seq uint64
}

// NewPriorityQueue returns an empty priority queue.
func NewPriorityQueue() *PriorityQueue { return &PriorityQueue{} }

// Push inserts n with key n.Priority.
func (pq *PriorityQueue) Push(n *Node) {
	heap.Push(&pq.h, entry{node: n, seq: pq.seq})
	pq.seq++
}

// Pop removes the entry with the lowest key (oldest first among equals).
func (pq *PriorityQueue) Pop() *Node {
	if pq.IsEmpty() {
		panic("search: Pop on empty PriorityQueue")
	}

	return heap.Pop(&pq.h).(entry).node
}

// Len returns the number of entries, stale ones included.
func (pq *PriorityQueue) Len() int { return pq.h.Len() }

// IsEmpty reports whether the queue holds no entry.
func (pq *PriorityQueue) IsEmpty() bool { return pq.h.Len() == 0 }

// entry pairs a node with its push sequence number.
type entry struct {
	node *Node
	seq  uint64
}

// entryHeap implements heap.Interface ordered by (Priority, seq).
type entryHeap []entry

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool {
	if h[i].node.Priority != h[j].node.Priority {
		return h[i].node.Priority < h[j].node.Priority
	}

	return h[i].seq < h[j].seq
}

func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x interface{}) { *h = append(*h, x.(entry)) }

func (h *entryHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = entry{}
	*h = old[:n-1]

	return item
}

// Compile-time checks.
var (
	_ Frontier = (*FIFO)(nil)
	_ Frontier = (*LIFO)(nil)
	_ Frontier = (*PriorityQueue)(nil)
)
