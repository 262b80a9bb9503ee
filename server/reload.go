package server

import (
	"sync"
)

// ReloadNotifier fans out change notifications to any number of subscribers.
// Each subscriber gets a buffered channel that receives a single empty struct
// whenever a change occurs.
type ReloadNotifier struct {
	mutex   sync.Mutex
	closed  bool
	nextID  int
	clients map[int]chan struct{}
}

func newReloadNotifier() *ReloadNotifier {
	return &ReloadNotifier{
		clients: make(map[int]chan struct{}),
	}
}

// Subscribe registers a new listener and returns a function removing it again
// together with the channel delivering reload signals. A closed notifier
// returns a nil channel.
func (notifier *ReloadNotifier) Subscribe() (func(), <-chan struct{}) {
	notifier.mutex.Lock()
	defer notifier.mutex.Unlock()

	if notifier.closed {
		return func() {}, nil
	}

	id := notifier.nextID
	notifier.nextID++

	ch := make(chan struct{}, 1)
	notifier.clients[id] = ch

	return func() { notifier.unsubscribe(id) }, ch
}

func (notifier *ReloadNotifier) unsubscribe(id int) {
	notifier.mutex.Lock()
	defer notifier.mutex.Unlock()

	if ch, ok := notifier.clients[id]; ok {
		close(ch)
		delete(notifier.clients, id)
	}
}

// Notify broadcasts a reload signal to every active listener without blocking
// on slow readers.
func (notifier *ReloadNotifier) Notify() {
	notifier.mutex.Lock()
	defer notifier.mutex.Unlock()

	if notifier.closed {
		return
	}

	for _, ch := range notifier.clients {
		select {
		case ch <- struct{}{}:
		default:
			// already pending
		}
	}
}

// Close closes every subscriber channel. No further reload events will arrive.
func (notifier *ReloadNotifier) Close() {
	notifier.mutex.Lock()
	defer notifier.mutex.Unlock()

	if notifier.closed {
		return
	}

	notifier.closed = true

	for id, ch := range notifier.clients {
		close(ch)
		delete(notifier.clients, id)
	}
}
