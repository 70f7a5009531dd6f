package edt

import "container/heap"

// bandItem is one narrow-band entry: a Trial pixel with a tentative
// distance. seq records insertion order and breaks value ties so that
// repeated runs freeze pixels in the same order.
type bandItem struct {
	index int
	value float64
	seq   uint64
}

// band is the narrow-band priority queue of the Fast Marching engine.
// It is an indexed binary heap: pos maps a pixel index to its heap slot
// so a Trial pixel's tentative value can be decreased in place.
// Lifetime is one engine invocation.
type band struct {
	items []bandItem
	pos   []int // pixel index -> heap slot, -1 when not queued
	seq   uint64
}

func newBand(pixels int) *band {
	pos := make([]int, pixels)
	for i := range pos {
		pos[i] = -1
	}
	return &band{pos: pos}
}

func (b *band) Len() int { return len(b.items) }

func (b *band) Less(i, j int) bool {
	if b.items[i].value != b.items[j].value {
		return b.items[i].value < b.items[j].value
	}
	// Earliest-inserted wins on equal tentative distance.
	return b.items[i].seq < b.items[j].seq
}

func (b *band) Swap(i, j int) {
	b.items[i], b.items[j] = b.items[j], b.items[i]
	b.pos[b.items[i].index] = i
	b.pos[b.items[j].index] = j
}

func (b *band) Push(x any) {
	it := x.(bandItem)
	b.pos[it.index] = len(b.items)
	b.items = append(b.items, it)
}

func (b *band) Pop() any {
	n := len(b.items) - 1
	it := b.items[n]
	b.items = b.items[:n]
	b.pos[it.index] = -1
	return it
}

// insert queues pixel index with a tentative value.
// The pixel must not already be queued.
func (b *band) insert(index int, value float64) {
	b.seq++
	heap.Push(b, bandItem{index: index, value: value, seq: b.seq})
}

// extractMin removes and returns the queued pixel with the smallest
// tentative value.
func (b *band) extractMin() (index int, value float64) {
	it := heap.Pop(b).(bandItem)
	return it.index, it.value
}

// contains reports whether pixel index is queued.
func (b *band) contains(index int) bool { return b.pos[index] >= 0 }

// value returns the tentative value of a queued pixel.
func (b *band) value(index int) float64 { return b.items[b.pos[index]].value }

// decrease lowers a queued pixel's tentative value and repositions it.
// The pixel keeps its original insertion sequence.
func (b *band) decrease(index int, value float64) {
	slot := b.pos[index]
	b.items[slot].value = value
	heap.Fix(b, slot)
}

// positions returns the coordinates of every queued pixel. Order is the
// heap's internal layout, deterministic for a given call sequence but
// otherwise unspecified.
func (b *band) positions(width int) []Pos {
	ps := make([]Pos, len(b.items))
	for i, it := range b.items {
		ps[i] = Pos{X: it.index % width, Y: it.index / width}
	}
	return ps
}
