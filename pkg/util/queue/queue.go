// Copyright 2024 The netplan Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package queue

// FIFO queue used for breadth-first traversals of the routing graph.
// Not thread safe.
type FIFO[T any] struct {
	items []T
}

func NewFIFO[T any]() *FIFO[T] {
	return &FIFO[T]{}
}

// Push to the end of a queue.
func (f *FIFO[T]) Push(val T) {
	f.items = append(f.items, val)
}

// Pop from the front of a queue. Panics on an empty queue.
func (f *FIFO[T]) Pop() T {
	v := f.items[0]
	f.items = f.items[1:]
	return v
}

// Same as Pop but doesn't remove the element from the queue.
func (f *FIFO[T]) Front() T {
	return f.items[0]
}

func (f *FIFO[T]) Len() int {
	return len(f.items)
}

func (f *FIFO[T]) IsEmpty() bool {
	return f.Len() == 0
}
