// Package frames turns a progress fraction or step count into a discrete
// animation frame. Selection is pure arithmetic over caller-supplied
// sequences; the package also ships the stock cat art.
package frames

import (
	"strings"
	"unicode/utf8"
)

// DefaultCadence is how many steps pass between secondary-modifier
// changes (the tail flip).
const DefaultCadence = 3

// CatArtWidth is the cell width of the widest stock cat line.
const CatArtWidth = 18

// FrameSpec is an immutable ordered set of visual states plus an ordered
// set of secondary modifiers that advance on a coarser cadence.
type FrameSpec struct {
	Frames    []string
	Modifiers []string
	Cadence   int
}

// Index maps a completion fraction onto n equal-width buckets. The last
// frame is returned exactly at 1.0 and the fraction is clamped to [0,1].
// With one frame or fewer there is nothing to animate and the index is 0.
func Index(fraction float64, n int) int {
	if n <= 1 {
		return 0
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	i := int(fraction * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// StepIndex cycles through n frames by raw step count, for sessions with
// no known total.
func StepIndex(step, n int) int {
	if n <= 1 {
		return 0
	}
	if step < 0 {
		step = 0
	}
	return step % n
}

// CadenceIndex advances every cadence steps through n modifier values,
// independent of the primary frame index.
func CadenceIndex(step, cadence, n int) int {
	if n <= 1 {
		return 0
	}
	if cadence <= 0 {
		cadence = 1
	}
	if step < 0 {
		step = 0
	}
	return (step / cadence) % n
}

// Select returns the frame and modifier for the given progress point.
// When the total is known the frame follows the completion fraction;
// otherwise it cycles by step count. The modifier always advances on the
// spec's cadence. Empty sequences yield empty strings.
func (s FrameSpec) Select(fraction float64, step int, known bool) (frame, modifier string) {
	if len(s.Frames) > 0 {
		if known {
			frame = s.Frames[Index(fraction, len(s.Frames))]
		} else {
			frame = s.Frames[StepIndex(step, len(s.Frames))]
		}
	}
	if len(s.Modifiers) > 0 {
		cadence := s.Cadence
		if cadence == 0 {
			cadence = DefaultCadence
		}
		modifier = s.Modifiers[CadenceIndex(step, cadence, len(s.Modifiers))]
	}
	return frame, modifier
}

// Animated reports whether the spec has more than one primary frame.
func (s FrameSpec) Animated() bool {
	return len(s.Frames) > 1
}

// CatLines renders the three-line cat with the given eyes and tail. Eyes
// are centered into a five-cell slot and truncated when longer.
func CatLines(eyes, tail string) []string {
	return []string{
		"    |\\__/,|   " + tail,
		"  _.|" + padEyes(eyes) + "|_   ) )",
		"-(((---(((--------",
	}
}

// CatBlock joins the cat lines into a paintable block. A positive indent
// shifts the whole cat right; otherwise a positive width centers it.
func CatBlock(eyes, tail string, width, indent int) string {
	lines := CatLines(eyes, tail)
	if indent > 0 {
		pad := strings.Repeat(" ", indent)
		for i, line := range lines {
			lines[i] = pad + line
		}
	} else if width > 0 {
		max := 0
		for _, line := range lines {
			if n := utf8.RuneCountInString(line); n > max {
				max = n
			}
		}
		if pad := (width - max) / 2; pad > 0 {
			prefix := strings.Repeat(" ", pad)
			for i, line := range lines {
				lines[i] = prefix + line
			}
		}
	}
	return strings.Join(lines, "\n")
}

// padEyes fits an eye string into exactly five cells, centered with the
// spare cell on the right, truncated past five.
func padEyes(eyes string) string {
	runes := []rune(eyes)
	if len(runes) > 5 {
		return string(runes[:5])
	}
	pad := 5 - len(runes)
	left := pad / 2
	return strings.Repeat(" ", left) + string(runes) + strings.Repeat(" ", pad-left)
}

// FaceFor picks the face matching a completion fraction from an ordered
// ladder of faces.
func FaceFor(fraction float64, faces []string) string {
	if len(faces) == 0 {
		return ""
	}
	return faces[Index(fraction, len(faces))]
}
