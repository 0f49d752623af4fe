package io

import (
	"sync"
)

// Queue dispatches output values to a device from a separate goroutine.
// Values reach the device in the order they were sent.
type Queue struct {
	device Output
	values chan int64
	done   chan struct{}

	pending sync.WaitGroup // Values sent but not yet delivered.

	mutex  sync.Mutex
	err    error
	closed bool
}

// NewQueue starts a queue of the given depth in front of device.
func NewQueue(device Output, depth int) (q *Queue) {
	q = &Queue{
		device: device,
		values: make(chan int64, depth),
		done:   make(chan struct{}),
	}

	go q.drain()

	return
}

func (q *Queue) drain() {
	defer close(q.done)

	for value := range q.values {
		if q.Err() == nil {
			err := q.device.Send(value)
			if err != nil {
				q.mutex.Lock()
				q.err = err
				q.mutex.Unlock()
			}
		}
		q.pending.Done()
	}
}

// Err returns the first error reported by the device.
func (q *Queue) Err() error {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	return q.err
}

// Send queues a value, blocking only while the queue is full.
// The first device error is returned on the following Send.
func (q *Queue) Send(value int64) (err error) {
	q.mutex.Lock()
	closed := q.closed
	err = q.err
	q.mutex.Unlock()

	if closed {
		err = ErrQueueClosed
		return
	}
	if err != nil {
		return
	}

	q.pending.Add(1)
	q.values <- value

	return
}

// Flush waits until every queued value has reached the device, and
// returns the first device error. Send must not be called concurrently
// with Flush.
func (q *Queue) Flush() error {
	q.pending.Wait()
	return q.Err()
}

// Close waits for every queued value to reach the device.
// Send must not be called concurrently with Close.
func (q *Queue) Close() (err error) {
	q.mutex.Lock()
	if q.closed {
		q.mutex.Unlock()
		err = ErrQueueClosed
		return
	}
	q.closed = true
	q.mutex.Unlock()

	close(q.values)
	<-q.done

	return q.Err()
}
