// Package observable provides the two pub/sub primitives the engine
// exposes to consumers: a latest-value state holder and a bounded,
// drop-oldest event stream. Subscribers attach and detach explicitly;
// detaching closes the subscriber channel deterministically.
package observable

import "sync"

// State holds the latest value of type T and fans out updates to
// subscribers. Each subscriber channel has capacity one and is conflated:
// a slow subscriber sees the newest value, not every intermediate one.
type State[T any] struct {
	mu    sync.RWMutex
	value T
	set   bool
	subs  map[int]chan T
	next  int
}

func NewState[T any]() *State[T] {
	return &State[T]{subs: make(map[int]chan T)}
}

// Get returns the current value and whether one has been published.
func (s *State[T]) Get() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value, s.set
}

// Set publishes a new value and notifies all subscribers without
// blocking on any of them.
func (s *State[T]) Set(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = v
	s.set = true
	for _, ch := range s.subs {
		conflate(ch, v)
	}
}

// Subscribe registers a subscriber. The returned channel immediately
// carries the current value if one exists. The cancel function detaches
// the subscriber and closes the channel.
func (s *State[T]) Subscribe() (<-chan T, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	ch := make(chan T, 1)
	if s.set {
		ch <- s.value
	}
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

func conflate[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
			// Stale value still buffered: replace it.
			select {
			case <-ch:
			default:
			}
		}
	}
}

// Stream is a bounded event stream. When the buffer is full the oldest
// pending event is dropped, so emitters never block on delivery.
type Stream[T any] struct {
	mu sync.Mutex
	ch chan T
}

func NewStream[T any](capacity int) *Stream[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Stream[T]{ch: make(chan T, capacity)}
}

// Emit enqueues an event, evicting the oldest pending one on overflow.
func (s *Stream[T]) Emit(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		select {
		case s.ch <- v:
			return
		default:
			select {
			case <-s.ch:
			default:
			}
		}
	}
}

// C is the receive side of the stream.
func (s *Stream[T]) C() <-chan T {
	return s.ch
}
