package engine

// DefaultBuffer is the frame buffer used when Subscribe gets a size below 1.
const DefaultBuffer = 64

// Subscription delivers frames. When the buffer is full the oldest frame
// is dropped, so a slow subscriber never stalls the game.
type Subscription struct {
	s  *Session
	ch chan Frame
}

// Subscribe registers a new frame subscriber. The channel is closed when the
// session stops or the subscription is closed.
func (s *Session) Subscribe(buffer int) *Subscription {
	if buffer < 1 {
		buffer = DefaultBuffer
	}
	sub := &Subscription{s: s, ch: make(chan Frame, buffer)}

	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	if s.stopped {
		close(sub.ch)
		return sub
	}
	s.subs[sub] = struct{}{}
	return sub
}

// C returns the frame channel.
func (sub *Subscription) C() <-chan Frame {
	return sub.ch
}

// Close unregisters the subscriber. Safe to call multiple times.
func (sub *Subscription) Close() {
	s := sub.s
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	if _, ok := s.subs[sub]; ok {
		delete(s.subs, sub)
		close(sub.ch)
	}
}

func (s *Session) publish(f Frame) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	for sub := range s.subs {
		select {
		case sub.ch <- f:
			continue
		default:
		}
		// Buffer full, drop oldest and retry
		select {
		case <-sub.ch:
		default:
		}
		select {
		case sub.ch <- f:
		default:
		}
	}
}
