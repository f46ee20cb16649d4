package queue

import "testing"

func TestFIFOOrder(t *testing.T) {
	q := NewFIFO[uint64]()
	if !q.IsEmpty() {
		t.Fatalf("new queue is not empty")
	}
	for i := uint64(1); i <= 3; i++ {
		q.Push(i)
	}
	if q.Front() != 1 {
		t.Errorf("Front() = %d, want 1", q.Front())
	}
	for want := uint64(1); want <= 3; want++ {
		if got := q.Pop(); got != want {
			t.Errorf("Pop() = %d, want %d", got, want)
		}
	}
	if q.Len() != 0 {
		t.Errorf("Len() = %d, want 0", q.Len())
	}
}
