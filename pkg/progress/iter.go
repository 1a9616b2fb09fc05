package progress

import (
	"iter"
	"slices"
	"time"

	"github.com/purrgress/purrgress/pkg/logger"
)

// Each wraps seq in a progress session. The bar opens on the first pull,
// paints each item's frame before handing it to the loop body, counts the
// item after the body returns, and closes when the source drains or the
// loop breaks. Pass UnknownTotal when the length is not known up front.
//
// A bad configuration cannot surface through an iterator, so it is logged
// and the sequence runs through undecorated.
func Each[T any](seq iter.Seq[T], total int64, opts ...Option) iter.Seq[T] {
	return func(yield func(T) bool) {
		bar, err := New(total, opts...)
		if err != nil {
			logger.Errorf("progress bar disabled: %v", err)
			for v := range seq {
				if !yield(v) {
					return
				}
			}
			return
		}
		_ = bar.Open()
		defer func() { _ = bar.Close() }()
		for v := range seq {
			bar.paintStep()
			if !yield(v) {
				return
			}
			bar.advance(1)
			bar.pace()
		}
	}
}

// EachSlice tracks iteration over items, taking the total from its length.
func EachSlice[T any](items []T, opts ...Option) iter.Seq[T] {
	return Each(slices.Values(items), int64(len(items)), opts...)
}

// Range yields 0 through n-1 under a progress bar.
func Range(n int, opts ...Option) iter.Seq[int] {
	seq := func(yield func(int) bool) {
		for i := 0; i < n; i++ {
			if !yield(i) {
				return
			}
		}
	}
	return Each(seq, int64(n), opts...)
}

// paintStep is the driver-side paint before an item is yielded. It shows
// the committed count and goes through the normal refresh throttle.
func (b *Bar) paintStep() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != stateActive {
		return
	}
	b.paintLocked(false)
}

// advance is the driver-side silent increment; the next paint shows it.
func (b *Bar) advance(n int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != stateActive {
		return
	}
	b.advanceLocked(n)
}

func (b *Bar) pace() {
	if b.cfg.sleepPer > 0 {
		time.Sleep(b.cfg.sleepPer)
	}
}
