package services

import (
	"sync"

	"rgbdslam/internal/logging"
	"rgbdslam/internal/ports"
)

var _ ports.MainThread = (*EventLoop)(nil)

// EventLoop runs posted closures one at a time, in posting order, on a
// single goroutine. All capture session state is owned by this goroutine.
type EventLoop struct {
	done    chan struct{}
	mu      sync.Mutex
	closed  bool
	pending []func()
	wake    chan struct{}
}

// NewEventLoop starts a new loop
func NewEventLoop() *EventLoop {
	l := &EventLoop{
		done: make(chan struct{}),
		wake: make(chan struct{}, 1),
	}
	go l.run()
	return l
}

// Post queues fn. Posting never blocks; closures posted after Close are dropped.
func (l *EventLoop) Post(fn func()) {
	l.enqueue(fn)
}

// Sync runs fn on the loop and waits for it. It returns false when the loop
// is closed. Must not be called from the loop itself.
func (l *EventLoop) Sync(fn func()) bool {
	ran := make(chan struct{})
	if !l.enqueue(func() {
		defer close(ran)
		fn()
	}) {
		return false
	}
	select {
	case <-ran:
		return true
	case <-l.done:
		return false
	}
}

// Close drains what was already posted and stops the loop. Must not be
// called from the loop itself.
func (l *EventLoop) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()
	l.signal()
	<-l.done
}

func (l *EventLoop) enqueue(fn func()) bool {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		logging.Logger.Debug("Dropping closure posted to closed event loop")
		return false
	}
	l.pending = append(l.pending, fn)
	l.mu.Unlock()
	l.signal()
	return true
}

func (l *EventLoop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

func (l *EventLoop) run() {
	defer close(l.done)
	for {
		l.mu.Lock()
		batch := l.pending
		l.pending = nil
		closed := l.closed
		l.mu.Unlock()

		for _, fn := range batch {
			l.invoke(fn)
		}
		if len(batch) > 0 {
			continue
		}
		if closed {
			return
		}
		<-l.wake
	}
}

func (l *EventLoop) invoke(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logging.Logger.Error("Panic on event loop", "panic", r)
		}
	}()
	fn()
}
