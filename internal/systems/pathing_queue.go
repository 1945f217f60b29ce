package systems

import (
	"container/heap"

	"photocrop-server/internal/domain"
)

// noDirection - стартовая вершина еще не выбрала направление
const noDirection = -1

// turnNode - вершина поиска с минимумом поворотов
type turnNode struct {
	Pos    domain.Position
	Dir    int // noDirection или domain.Direction
	Phase  int
	Turns  int
	Dist   int // квадрат расстояния до цели
	Parent *turnNode

	seq   int // порядок добавления, последний tie-break
	Index int // индекс в куче
}

// turnHeap реализует heap.Interface: (повороты, расстояние, y, x, seq)
type turnHeap []*turnNode

func (h turnHeap) Len() int { return len(h) }

func (h turnHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	if a.Turns != b.Turns {
		return a.Turns < b.Turns
	}
	if a.Dist != b.Dist {
		return a.Dist < b.Dist
	}
	if a.Pos.Y != b.Pos.Y {
		return a.Pos.Y < b.Pos.Y
	}
	if a.Pos.X != b.Pos.X {
		return a.Pos.X < b.Pos.X
	}
	return a.seq < b.seq
}

func (h turnHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].Index = i
	h[j].Index = j
}

func (h *turnHeap) Push(x interface{}) {
	item := x.(*turnNode)
	item.Index = len(*h)
	*h = append(*h, item)
}

func (h *turnHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.Index = -1
	*h = old[0 : n-1]
	return item
}

// turnQueue - обертка с монотонным счетчиком seq
type turnQueue struct {
	items turnHeap
	seq   int
}

func newTurnQueue() *turnQueue {
	return &turnQueue{items: make(turnHeap, 0)}
}

func (q *turnQueue) Len() int { return q.items.Len() }

func (q *turnQueue) push(n *turnNode) {
	n.seq = q.seq
	q.seq++
	heap.Push(&q.items, n)
}

func (q *turnQueue) pop() *turnNode {
	return heap.Pop(&q.items).(*turnNode)
}
