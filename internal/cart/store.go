package cart

import (
	"sync"

	"github.com/sainath-666/storefront/internal/model"
)

const subscriberBuffer = 16

// Store is the reactive cart item list: a single-writer multi-reader cell
// with replay-on-subscribe. Writes carry a monotonic version so a stale
// reconciliation fetch that completes late cannot overwrite a newer state.
type Store struct {
	mu      sync.Mutex
	items   []model.CartItem
	version uint64
	subs    map[int]chan []model.CartItem
	nextSub int
}

func NewStore() *Store {
	return &Store{subs: map[int]chan []model.CartItem{}}
}

func (s *Store) Snapshot() []model.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItems(s.items)
}

func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Apply runs mutate against a copy of the current list and installs the
// result, unless version is older than the last applied one. Subscribers
// receive the new state; a subscriber that has fallen subscriberBuffer
// states behind misses intermediate ones.
func (s *Store) Apply(version uint64, mutate func(items []model.CartItem) []model.CartItem) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if version < s.version {
		return false
	}
	s.version = version
	s.items = mutate(cloneItems(s.items))
	for _, sub := range s.subs {
		select {
		case sub <- cloneItems(s.items):
		default:
		}
	}
	return true
}

// Subscribe registers a listener that immediately receives the current
// state and then every subsequent one. The returned func unsubscribes and
// closes the channel.
func (s *Store) Subscribe() (<-chan []model.CartItem, func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	ch := make(chan []model.CartItem, subscriberBuffer)
	ch <- cloneItems(s.items)
	s.subs[id] = ch
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func cloneItems(items []model.CartItem) []model.CartItem {
	cloned := make([]model.CartItem, len(items))
	copy(cloned, items)
	return cloned
}
