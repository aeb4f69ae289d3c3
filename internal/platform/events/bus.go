// Package events is the in-process publish/subscribe channel for
// "something changed" signals shared between independent components.
package events

import "sync"

// Topic names a process-wide signal. Signals carry no payload; subscribers
// re-read the state they care about.
type Topic string

const (
	NotificationsChanged Topic = "notifications:changed"
	ProgressChanged      Topic = "progress:changed"
	SessionChanged       Topic = "session:changed"
	TimerChanged         Topic = "timer:changed"
)

// Publisher raises signals.
type Publisher interface {
	Publish(topic Topic)
}

// Subscriber registers listeners. The returned func removes the listener and
// is safe to call more than once.
type Subscriber interface {
	Subscribe(topic Topic, fn func()) (unsubscribe func())
}

type subscription struct {
	id uint64
	fn func()
}

// Bus invokes every listener registered for a topic synchronously, on the
// publishing goroutine, after the publisher's mutation completed.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[Topic][]subscription
}

func NewBus() *Bus {
	return &Bus{subs: map[Topic][]subscription{}}
}

func (b *Bus) Subscribe(topic Topic, fn func()) func() {
	b.mu.Lock()
	b.nextID++
	subID := b.nextID
	b.subs[topic] = append(b.subs[topic], subscription{id: subID, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(topic, subID) })
	}
}

func (b *Bus) remove(topic Topic, subID uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	current := b.subs[topic]
	kept := make([]subscription, 0, len(current))
	for _, s := range current {
		if s.id != subID {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		delete(b.subs, topic)
		return
	}
	b.subs[topic] = kept
}

func (b *Bus) Publish(topic Topic) {
	b.mu.RLock()
	listeners := make([]func(), 0, len(b.subs[topic]))
	for _, s := range b.subs[topic] {
		listeners = append(listeners, s.fn)
	}
	b.mu.RUnlock()

	// Listeners may subscribe or unsubscribe while being notified.
	for _, fn := range listeners {
		fn()
	}
}

// Close drops every listener. Publishing afterwards is a no-op.
func (b *Bus) Close() {
	b.mu.Lock()
	b.subs = map[Topic][]subscription{}
	b.mu.Unlock()
}
