package progress

import (
	"fmt"
	"iter"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purrgress/purrgress/pkg/display"
)

func seqOf[T any](items ...T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range items {
			if !yield(v) {
				return
			}
		}
	}
}

func iterOpts(w *recWriter) []Option {
	return []Option{
		WithWriter(w),
		WithSurface(display.SurfaceANSI),
		WithWidth(10),
		WithRefreshRate(0),
		WithCentered(false),
	}
}

func TestEachSliceYieldsAllItems(t *testing.T) {
	w := &recWriter{}
	var got []string
	for v := range EachSlice([]string{"a", "b", "c"}, iterOpts(w)...) {
		got = append(got, v)
	}
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Contains(t, w.all(), "3/3 (100.0%)", "closing paint shows the drained total")
}

func TestEachPaintsBeforeYield(t *testing.T) {
	w := &recWriter{}
	i := 0
	for range Range(3, iterOpts(w)...) {
		assert.Contains(t, w.last(), fmt.Sprintf("%d/3", i),
			"the paint for this item lands before the body runs")
		i++
	}
	assert.Equal(t, 3, i)
}

func TestEachCountsAfterBody(t *testing.T) {
	w := &recWriter{}
	seen := 0
	for range Range(5, iterOpts(w)...) {
		// the item in hand is not counted yet
		assert.NotContains(t, w.last(), fmt.Sprintf("%d/5", seen+1))
		seen++
	}
	assert.Equal(t, 5, seen)
}

func TestEachClosesOnEarlyBreak(t *testing.T) {
	w := &recWriter{}
	for v := range Range(5, iterOpts(w)...) {
		if v == 1 {
			break
		}
	}

	require.NotEmpty(t, w.chunks)
	assert.Equal(t, "\n", w.last(), "break still releases the cursor")
	closing := w.chunks[len(w.chunks)-2]
	assert.Contains(t, closing, "1/5 (20.0%)", "final paint shows only counted items")
}

func TestEachInvalidConfigPassesThrough(t *testing.T) {
	w := &recWriter{}
	var got []int
	for v := range Each(seqOf(1, 2, 3), -7, iterOpts(w)...) {
		got = append(got, v)
	}
	assert.Equal(t, []int{1, 2, 3}, got, "items flow even when the bar cannot be built")
	assert.Empty(t, w.chunks, "no partial output from a rejected configuration")
}

func TestEachUnknownTotal(t *testing.T) {
	w := &recWriter{}
	count := 0
	for range Each(seqOf("x", "y", "z", "w"), UnknownTotal, iterOpts(w)...) {
		count++
	}
	assert.Equal(t, 4, count)
	assert.Contains(t, strings.Join(w.chunks, ""), "\x1b[4F", "bar still paints in place")
}

func TestEachKeepsYieldingWhenWriterFails(t *testing.T) {
	w := &brokenWriter{}
	var got []int
	for v := range Range(5,
		WithWriter(w),
		WithSurface(display.SurfaceANSI),
		WithWidth(10),
		WithRefreshRate(0),
	) {
		got = append(got, v)
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got, "a dead stream never stalls the loop")
}

func TestEachSliceEmpty(t *testing.T) {
	w := &recWriter{}
	ran := false
	for range EachSlice([]int{}, iterOpts(w)...) {
		ran = true
	}
	assert.False(t, ran)
	assert.Contains(t, w.all(), "0/0 (0.0%)", "empty input still opens and closes cleanly")
}

func TestRangeCountsFromZero(t *testing.T) {
	var got []int
	for v := range Range(4, WithWriter(&recWriter{}), WithSurface(display.SurfaceStatic)) {
		got = append(got, v)
	}
	assert.Equal(t, []int{0, 1, 2, 3}, got)
}
