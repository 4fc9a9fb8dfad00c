package datastructure

import (
	"math/rand"
	"sort"
	"testing"
)

func TestMinHeapExtractionOrder(t *testing.T) {
	h := NewFourAryHeap[int]()

	ranks := []float64{5, 1, 4, 2, 8, 3, 7, 6}
	for i, r := range ranks {
		h.Insert(NewPriorityQueueNode(r, i))
	}

	prev := -1.0
	for !h.IsEmpty() {
		node, err := h.ExtractMin()
		if err != nil {
			t.Fatalf("ExtractMin: %v", err)
		}
		if node.GetRank() < prev {
			t.Fatalf("extraction out of order: %v after %v", node.GetRank(), prev)
		}
		prev = node.GetRank()
	}
}

func TestMinHeapDecreaseKey(t *testing.T) {
	h := NewBinaryHeap[string]()

	a := NewPriorityQueueNode(10.0, "a")
	b := NewPriorityQueueNode(20.0, "b")
	h.Insert(a)
	h.Insert(b)

	if err := h.DecreaseKey(b, 5.0); err != nil {
		t.Fatalf("DecreaseKey: %v", err)
	}

	min, err := h.ExtractMin()
	if err != nil {
		t.Fatalf("ExtractMin: %v", err)
	}
	if min.GetItem() != "b" {
		t.Errorf("min item = %q, want b", min.GetItem())
	}
}

func TestMinHeapDecreaseKeyRejectsIncrease(t *testing.T) {
	h := NewBinaryHeap[int]()
	n := NewPriorityQueueNode(1.0, 1)
	h.Insert(n)

	if err := h.DecreaseKey(n, 2.0); err == nil {
		t.Error("increasing a key should be rejected")
	}
}

func TestMinHeapExtractedNodeLeavesQueue(t *testing.T) {
	h := NewFourAryHeap[int]()
	n := NewPriorityQueueNode(1.0, 42)
	h.Insert(n)

	if _, err := h.ExtractMin(); err != nil {
		t.Fatalf("ExtractMin: %v", err)
	}
	if n.GetPos() != -1 {
		t.Errorf("extracted node pos = %d, want -1", n.GetPos())
	}
}

func TestMinHeapRandomizedAgainstSort(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for _, d := range []int{2, 4, 8} {
		h := NewdAryHeap[int](d)

		ranks := make([]float64, 200)
		for i := range ranks {
			ranks[i] = rng.Float64() * 1000
			h.Insert(NewPriorityQueueNode(ranks[i], i))
		}
		sort.Float64s(ranks)

		for i, want := range ranks {
			node, err := h.ExtractMin()
			if err != nil {
				t.Fatalf("d=%d ExtractMin #%d: %v", d, i, err)
			}
			if node.GetRank() != want {
				t.Fatalf("d=%d extraction #%d rank = %v, want %v", d, i, node.GetRank(), want)
			}
		}
	}
}
