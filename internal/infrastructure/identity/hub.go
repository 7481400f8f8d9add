package identity

import (
	"sync"

	"github.com/Venkat-Kolasani/Oilseed-Mitra/domain"
)

// sessionHub fans session changes out to registered observers. Every
// observer drains its own queue on a dedicated goroutine, so delivery is
// asynchronous (an observer never runs in the turn that registered it), a
// slow callback never blocks the provider or other observers, and each
// observer sees values in publish order. Values are queued to observers in
// registration order.
type sessionHub struct {
	mu        sync.Mutex
	observers []*sessionObserver
	nextID    uint64
}

type sessionObserver struct {
	id uint64
	ch chan *domain.Session

	// deliverMu serialises callback invocation against cancellation, so
	// cancel() returning guarantees no further delivery.
	deliverMu sync.Mutex
	cancelled bool
}

func newSessionHub() *sessionHub {
	return &sessionHub{}
}

// observe registers cb and queues current as its initial value. It returns
// a cancel function that stops all future deliveries to cb.
func (h *sessionHub) observe(cb domain.SessionCallback, current *domain.Session) domain.CancelFunc {
	h.mu.Lock()
	obs := &sessionObserver{id: h.nextID, ch: make(chan *domain.Session, 16)}
	h.nextID++
	h.observers = append(h.observers, obs)
	obs.push(current)
	h.mu.Unlock()

	go func() {
		for s := range obs.ch {
			obs.deliverMu.Lock()
			if obs.cancelled {
				obs.deliverMu.Unlock()
				return
			}
			cb(s)
			obs.deliverMu.Unlock()
		}
	}()

	return func() { h.remove(obs) }
}

// publish queues s to every registered observer, in registration order.
func (h *sessionHub) publish(s *domain.Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, obs := range h.observers {
		obs.push(s)
	}
}

func (h *sessionHub) remove(target *sessionObserver) {
	h.mu.Lock()
	found := false
	for i, obs := range h.observers {
		if obs.id == target.id {
			h.observers = append(h.observers[:i], h.observers[i+1:]...)
			found = true
			break
		}
	}
	if found {
		// No publisher can reach the channel anymore; closing ends the
		// drain goroutine.
		close(target.ch)
	}
	h.mu.Unlock()

	target.deliverMu.Lock()
	target.cancelled = true
	target.deliverMu.Unlock()
}

// push enqueues without ever blocking the publisher: when the observer's
// queue is full the oldest value is dropped, which keeps delivery monotonic
// while favouring the newest state.
func (o *sessionObserver) push(s *domain.Session) {
	for {
		select {
		case o.ch <- s:
			return
		default:
			select {
			case <-o.ch:
			default:
			}
		}
	}
}
