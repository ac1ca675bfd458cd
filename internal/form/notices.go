package form

import (
	"sync"
	"time"
)

const NoticeTTL = 5 * time.Second

// Notices shows one banner at a time. A banner clears itself after the ttl and a new
// one replaces the visible one at once.
type Notices struct {
	sink       NoticeSink
	ttl        time.Duration
	timer      *time.Timer
	generation uint64
	mu         sync.Mutex
}

func NewNotices(sink NoticeSink) *Notices {
	return NewNoticesWithTTL(sink, NoticeTTL)
}

func NewNoticesWithTTL(sink NoticeSink, ttl time.Duration) *Notices {
	return &Notices{
		sink: sink,
		ttl:  ttl,
	}
}

func (n *Notices) Success(message string) {
	n.Show(Notice{Kind: NoticeSuccess, Message: message})
}

func (n *Notices) Error(message string) {
	n.Show(Notice{Kind: NoticeError, Message: message})
}

func (n *Notices) Show(notice Notice) {
	if n == nil || n.sink == nil {
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
	}

	n.generation++
	generation := n.generation

	n.sink.ShowNotice(notice)
	n.timer = time.AfterFunc(n.ttl, func() {
		n.expire(generation)
	})
}

// Stop cancels the pending clear, if any.
func (n *Notices) Stop() {
	if n == nil {
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.generation++
}

func (n *Notices) expire(generation uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	// a newer notice owns the banner
	if generation != n.generation {
		return
	}

	n.timer = nil
	n.sink.ClearNotice()
}
