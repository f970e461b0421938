package search

import "container/heap"

// openItem is one entry of the open list's priority queue: a search node
// plus the priority it was pushed with and the monotonic sequence number
// used to break priority ties FIFO, so two nodes of equal priority come out
// in the order they were inserted regardless of Go's heap implementation
// details.
type openItem struct {
	node     *Node
	priority float64
	seq      int
}

type openHeap []*openItem

func (h openHeap) Len() int { return len(h) }
func (h openHeap) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}
	return h[i].seq < h[j].seq
}
func (h openHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *openHeap) Push(x interface{}) {
	*h = append(*h, x.(*openItem))
}
func (h *openHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// OpenList is a priority queue of search nodes. Equal priorities pop in
// insertion order; BrFS gives every node priority 0, so it is pure FIFO.
// A* uses f = g + h.
type OpenList struct {
	h       openHeap
	nextSeq int
}

// NewOpenList returns an empty open list.
func NewOpenList() *OpenList {
	ol := &OpenList{}
	heap.Init(&ol.h)
	return ol
}

// Push inserts node with the given priority (lower pops first).
func (ol *OpenList) Push(node *Node, priority float64) {
	heap.Push(&ol.h, &openItem{node: node, priority: priority, seq: ol.nextSeq})
	ol.nextSeq++
}

// Pop removes and returns the lowest-priority node, or nil if empty.
func (ol *OpenList) Pop() *Node {
	if ol.h.Len() == 0 {
		return nil
	}
	return heap.Pop(&ol.h).(*openItem).node
}

// Len reports how many nodes remain open.
func (ol *OpenList) Len() int { return ol.h.Len() }
