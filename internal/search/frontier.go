package search

import "container/heap"

// FrontierItem is one A* search state. Path is owned by the item and never shared.
type FrontierItem[NodeType comparable] struct {
	Node     NodeType
	GScore   float64
	FCost    float64
	Sequence uint64
	Path     []NodeType
}

// frontierQueue orders items by FCost, then GScore, then insertion Sequence.
type frontierQueue[NodeType comparable] []*FrontierItem[NodeType]

func (queue frontierQueue[NodeType]) Len() int { return len(queue) }

func (queue frontierQueue[NodeType]) Less(i, j int) bool {
	a, b := queue[i], queue[j]
	if a.FCost != b.FCost {
		return a.FCost < b.FCost
	}
	if a.GScore != b.GScore {
		return a.GScore < b.GScore
	}

	return a.Sequence < b.Sequence
}

func (queue frontierQueue[NodeType]) Swap(i, j int) { queue[i], queue[j] = queue[j], queue[i] }

func (queue *frontierQueue[NodeType]) Push(x any) {
	*queue = append(*queue, x.(*FrontierItem[NodeType]))
}

func (queue *frontierQueue[NodeType]) Pop() any {
	old := *queue
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*queue = old[:n-1]

	return item
}

// PriorityFrontier is the min-ordered work queue of AStar. Entries are never removed early:
// a state superseded by a cheaper one stays queued and is skipped when popped.
type PriorityFrontier[NodeType comparable] struct {
	queue    frontierQueue[NodeType]
	sequence uint64
}

// NewPriorityFrontier returns an empty frontier.
func NewPriorityFrontier[NodeType comparable]() *PriorityFrontier[NodeType] {
	frontier := &PriorityFrontier[NodeType]{}
	heap.Init(&frontier.queue)

	return frontier
}

// Push queues a state with priority fCost.
func (f *PriorityFrontier[NodeType]) Push(node NodeType, gScore, fCost float64, path []NodeType) {
	heap.Push(&f.queue, &FrontierItem[NodeType]{
		Node:     node,
		GScore:   gScore,
		FCost:    fCost,
		Sequence: f.sequence,
		Path:     path,
	})
	f.sequence++
}

// Pop removes the state with the lowest priority. It returns false when the frontier is empty.
func (f *PriorityFrontier[NodeType]) Pop() (*FrontierItem[NodeType], bool) {
	if f.queue.Len() == 0 {
		return nil, false
	}

	return heap.Pop(&f.queue).(*FrontierItem[NodeType]), true
}

// Len returns the number of queued states, stale ones included.
func (f *PriorityFrontier[NodeType]) Len() int {
	return f.queue.Len()
}
