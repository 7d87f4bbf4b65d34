// Package store holds the client-side state for the inventory search:
// the user's filter criteria, the location cache, and the stock cache
// with its local filter pipeline. Each store is a single shared mutable
// container with an enumerated mutation surface; reads go through
// snapshot accessors and change notifications, never ad-hoc writes.
//
// All mutations are atomic with respect to the store's mutex and every
// derived computation re-runs fully from the current snapshot. List
// sizes are small (tens to low hundreds of entries), so simplicity wins
// over incremental updates.
package store

import "sync"

// notifier fans out change notifications to subscribers. Callbacks run
// outside the owning store's lock.
type notifier struct {
	mu   sync.Mutex
	subs map[int]func()
	next int
}

// subscribe registers fn and returns a cancel function.
func (n *notifier) subscribe(fn func()) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.subs == nil {
		n.subs = make(map[int]func())
	}
	id := n.next
	n.next++
	n.subs[id] = fn
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

// notify invokes every subscriber.
func (n *notifier) notify() {
	n.mu.Lock()
	fns := make([]func(), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
