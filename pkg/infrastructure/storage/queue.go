package storage

import (
	"sync"

	"github.com/WangYihang/Typosquat-Generator/pkg/domain/entity"
	"github.com/WangYihang/Typosquat-Generator/pkg/domain/repository"
)

// chanQueue is a buffered channel that tolerates sends after close.
type chanQueue[T any] struct {
	items  chan T
	mu     sync.RWMutex
	closed bool
}

func newChanQueue[T any](size int) *chanQueue[T] {
	return &chanQueue[T]{items: make(chan T, max(size, 1))}
}

// put delivers item, blocking only when wait is set and the buffer is full.
func (q *chanQueue[T]) put(item T, wait bool) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return false
	}
	if wait {
		q.items <- item
		return true
	}
	select {
	case q.items <- item:
		return true
	default:
		return false
	}
}

func (q *chanQueue[T]) take() (T, bool) {
	item, ok := <-q.items
	return item, ok
}

func (q *chanQueue[T]) shut() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.items)
}

// TaskQueue holds the domains waiting for a worker
type TaskQueue struct {
	q *chanQueue[*entity.Task]
}

// NewTaskQueue creates a task queue buffering size tasks
func NewTaskQueue(size int) repository.TaskQueue {
	return &TaskQueue{q: newChanQueue[*entity.Task](size)}
}

// Enqueue adds a task without blocking. It reports false when the queue is
// full or closed.
func (t *TaskQueue) Enqueue(task *entity.Task) bool { return t.q.put(task, false) }

// Dequeue blocks until a task is available or the queue is closed and drained
func (t *TaskQueue) Dequeue() (*entity.Task, bool) { return t.q.take() }

// Len returns the number of buffered tasks
func (t *TaskQueue) Len() int { return len(t.q.items) }

// Close stops accepting tasks. Buffered tasks can still be dequeued.
func (t *TaskQueue) Close() { t.q.shut() }

// ResultQueue carries finished domains from workers to the coordinator
type ResultQueue struct {
	q *chanQueue[*entity.DomainResult]
}

// NewResultQueue creates a result queue buffering size results
func NewResultQueue(size int) repository.ResultQueue {
	return &ResultQueue{q: newChanQueue[*entity.DomainResult](size)}
}

// Send hands a result to the coordinator. Results sent after Close are dropped.
func (r *ResultQueue) Send(result *entity.DomainResult) { r.q.put(result, true) }

// Receive blocks until a result arrives or the queue is closed and drained
func (r *ResultQueue) Receive() (*entity.DomainResult, bool) { return r.q.take() }

// Close stops accepting results
func (r *ResultQueue) Close() { r.q.shut() }
