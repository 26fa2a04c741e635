package utils

import (
	"fmt"

	"github.com/pkg/errors"
)

// Queue is a FIFO queue backed by a circular buffer that holds items
// of a type T.
type Queue[T any] interface {
	Enqueue(...T) error
	Dequeue() (T, error)
	ToSlice() ([]T, error)
	Tail(n int) []T
	Len() int
	Capacity() int
}

// NewDynamicFixedQueue returns a fixed-capacity FIFO queue backed by a
// circular buffer. The queue will accept new items if it is full, overwriting
// the head of the queue with its successor for every new item.
func NewDynamicFixedQueue[T any](capacity int) (Queue[T], error) {
	q, err := newQueue[T](capacity)
	if err != nil {
		return nil, err
	}

	return &dynamicFixedQueue[T]{queue: q}, nil
}

type queue[T any] struct {
	// data is the underlying slice that holds elements.
	data []T

	// head is the index of the next element to dequeue at.
	head int

	// tail is the index of the next slot to enqueue at.
	tail int

	// size is the current number of elements in the queue.
	size int

	// capacity is the maximum number of elements allowed to queue.
	capacity int
}

func newQueue[T any](capacity int) (*queue[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("queue capacity must be > 0; got %d", capacity)
	}

	return &queue[T]{
		data:     make([]T, capacity),
		capacity: capacity,
	}, nil
}

func (q *queue[T]) enqueue(item T) {
	q.data[q.tail] = item
	q.tail = (q.tail + 1) % q.capacity
	q.size++
}

// Dequeue removes and returns the front element.
// Returns an error if the queue is empty.
func (q *queue[T]) Dequeue() (T, error) {
	var zero T

	if q.IsEmpty() {
		return zero, errors.New("dequeue from empty queue")
	}

	item := q.data[q.head]

	// Zero out the slot so evicted entries can be collected.

	q.data[q.head] = zero
	q.head = (q.head + 1) % q.capacity
	q.size--

	return item, nil
}

// IsEmpty reports whether the queue has no elements.
func (q *queue[T]) IsEmpty() bool {
	return q.size == 0
}

// IsFull reports whether the queue is at capacity.
func (q *queue[T]) IsFull() bool {
	return q.size == q.capacity
}

// Len returns the number of elements currently in the queue.
func (q *queue[T]) Len() int {
	return q.size
}

// Capacity returns the fixed maximum number of elements.
func (q *queue[T]) Capacity() int {
	return q.capacity
}

// at returns the i-th element counted from the head.
func (q *queue[T]) at(i int) T {
	return q.data[(q.head+i)%q.capacity]
}

// ToSlice generates a slice representation from the queue, oldest first.
// The queue is not emptied.
func (q *queue[T]) ToSlice() ([]T, error) {
	arr := make([]T, q.size)

	for i := range q.size {
		arr[i] = q.at(i)
	}

	return arr, nil
}

// Tail returns at most the n most recently enqueued elements, oldest first.
func (q *queue[T]) Tail(n int) []T {
	if n > q.size {
		n = q.size
	}

	if n <= 0 {
		return []T{}
	}

	arr := make([]T, n)
	offset := q.size - n

	for i := range n {
		arr[i] = q.at(offset + i)
	}

	return arr
}

// dynamicFixedQueue drops its oldest element for every item enqueued while
// full.
type dynamicFixedQueue[T any] struct {
	*queue[T]
}

func (q *dynamicFixedQueue[T]) Enqueue(items ...T) error {
	if len(items) == 0 {
		return errors.New("no items provided to enqueue")
	}

	for _, item := range items {
		if q.IsFull() {
			_, err := q.Dequeue()
			if err != nil {
				return errors.Wrap(err, "failed to overwrite item in queue")
			}
		}

		q.enqueue(item)
	}

	return nil
}
