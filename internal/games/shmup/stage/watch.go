package stage

import (
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce drops repeated notifications for one file arriving closer than this.
const debounce = 100 * time.Millisecond

// subscriptionBuffer is how many changes a slow subscriber may fall behind
// before further changes are dropped for it.
const subscriptionBuffer = 16

// Watcher reports stage files that change on disk to its subscribers.
type Watcher struct {
	watcher *fsnotify.Watcher
	closeCh chan struct{}
	once    sync.Once

	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

// Subscription receives the changes seen by a watcher from the moment it
// subscribed until it is closed. Both channels are closed by Close or when
// the watcher stops.
type Subscription struct {
	Events <-chan string
	Errors <-chan error

	w      *Watcher
	events chan string
	errs   chan error
	closed bool
}

// NewWatcher starts watching the given directories.
func NewWatcher(dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("stage: watch: %w", err)
	}

	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("stage: watch %s: %w", dir, err)
		}
	}

	w := &Watcher{
		watcher: fw,
		closeCh: make(chan struct{}),
		subs:    make(map[*Subscription]struct{}),
	}
	go w.run()
	return w, nil
}

// Subscribe registers a new receiver of changes. A subscription taken after
// the watcher stopped is returned already closed.
func (w *Watcher) Subscribe() *Subscription {
	s := &Subscription{
		w:      w,
		events: make(chan string, subscriptionBuffer),
		errs:   make(chan error, 1),
	}
	s.Events, s.Errors = s.events, s.errs

	w.mu.Lock()
	defer w.mu.Unlock()
	select {
	case <-w.closeCh:
		s.shut()
	default:
		w.subs[s] = struct{}{}
	}
	return s
}

// Close stops the subscription and closes its channels. It is safe to call
// more than once.
func (s *Subscription) Close() {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()
	delete(s.w.subs, s)
	s.shut()
}

// shut closes the channels; the watcher lock is held.
func (s *Subscription) shut() {
	if s.closed {
		return
	}
	s.closed = true
	close(s.events)
	close(s.errs)
}

// Close stops the watcher and every subscription. It is safe to call more
// than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		w.mu.Lock()
		close(w.closeCh)
		for s := range w.subs {
			s.shut()
		}
		clear(w.subs)
		w.mu.Unlock()
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !IsStageFile(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < debounce {
				continue
			}
			last[event.Name] = now
			w.publish(func(s *Subscription) {
				select {
				case s.events <- event.Name:
				default:
				}
			})
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.publish(func(s *Subscription) {
				select {
				case s.errs <- err:
				default: // an error is already pending
				}
			})
		case <-w.closeCh:
			return
		}
	}
}

// publish offers a change to every live subscription without blocking.
// A subscriber whose buffer is full misses the change.
func (w *Watcher) publish(send func(*Subscription)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for s := range w.subs {
		send(s)
	}
}
