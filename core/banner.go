package core

import (
	"sync"
	"time"
)

// BannerKind distinguishes success from error notices.
type BannerKind int

const (
	BannerNone BannerKind = iota
	BannerSuccess
	BannerError
)

// Banner holds one transient notice. Show arms a timer that clears the
// message after the configured delay; the timer is not cancelled on manual
// dismissal, so a sequence counter guards against a stale timer wiping a
// newer message.
type Banner struct {
	mu     sync.Mutex
	kind   BannerKind
	msg    string
	sticky bool
	seq    int
}

// Show displays a transient message that auto-dismisses after delay.
func (b *Banner) Show(kind BannerKind, msg string, delay time.Duration) {
	b.mu.Lock()
	b.seq++
	seq := b.seq
	b.kind = kind
	b.msg = msg
	b.sticky = false
	b.mu.Unlock()

	time.AfterFunc(delay, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.seq == seq {
			b.kind = BannerNone
			b.msg = ""
		}
	})
}

// ShowSticky displays a message that stays until dismissed or replaced.
// Used for the persistent load-error + retry affordance.
func (b *Banner) ShowSticky(kind BannerKind, msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	b.kind = kind
	b.msg = msg
	b.sticky = true
}

func (b *Banner) Dismiss() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	b.kind = BannerNone
	b.msg = ""
	b.sticky = false
}

func (b *Banner) Message() (BannerKind, string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.kind, b.msg
}

func (b *Banner) Sticky() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sticky
}
