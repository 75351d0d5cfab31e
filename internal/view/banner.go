package view

import (
	"sync"
	"time"
)

// DismissDelay is how long an auto-dismissing banner stays up.
const DismissDelay = 3 * time.Second

type BannerKind string

const (
	BannerNone    BannerKind = ""
	BannerSuccess BannerKind = "success"
	BannerError   BannerKind = "error"
)

// Banner holds the one transient message of a screen.
type Banner struct {
	mu    sync.Mutex
	text  string
	kind  BannerKind
	delay time.Duration
	timer *time.Timer
	gen   uint64
}

// NewBanner returns a banner that clears itself after delay, or a sticky one
// when delay is zero.
func NewBanner(delay time.Duration) *Banner {
	return &Banner{delay: delay}
}

func (b *Banner) Error(text string)   { b.show(BannerError, text) }
func (b *Banner) Success(text string) { b.show(BannerSuccess, text) }

func (b *Banner) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stop()
	b.text, b.kind = "", BannerNone
}

// Message returns the text and kind currently shown.
func (b *Banner) Message() (string, BannerKind) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text, b.kind
}

func (b *Banner) show(kind BannerKind, text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stop()
	b.text, b.kind = text, kind
	if b.delay <= 0 {
		return
	}

	gen := b.gen
	b.timer = time.AfterFunc(b.delay, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		// A newer message owns the banner now.
		if b.gen == gen {
			b.text, b.kind = "", BannerNone
		}
	})
}

// stop cancels the pending dismissal. Callers hold mu.
func (b *Banner) stop() {
	b.gen++
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}
