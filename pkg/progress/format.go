package progress

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Field is one ordered key=value pair shown after the metrics section.
// Values are formatted by type; anything unrecognized falls back to its
// fmt representation.
type Field struct {
	Key   string
	Value interface{}
}

// formatNumber renders n for the metrics section. With scaling off the
// value is shown as a plain integer; with scaling on it walks the unit
// ladder by divisor and keeps one decimal for non-integer steps.
func formatNumber(n float64, scale bool, divisor float64) string {
	if !scale {
		return strconv.FormatFloat(n, 'f', 0, 64)
	}
	for _, unit := range []string{"", "K", "M", "G", "T"} {
		if n < divisor {
			if n == math.Trunc(n) {
				return fmt.Sprintf("%d%s", int64(n), unit)
			}
			return fmt.Sprintf("%.1f%s", n, unit)
		}
		n /= divisor
	}
	return fmt.Sprintf("%.1fP", n)
}

// formatInterval renders a duration as H:MM:SS with unpadded hours.
func formatInterval(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d.Seconds())
	return fmt.Sprintf("%d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
}

// formatPostfixValue renders one postfix value. Small floats keep three
// decimals, large ones a single decimal, and big integers get thousands
// separators.
func formatPostfixValue(v interface{}) string {
	switch val := v.(type) {
	case float64:
		return formatPostfixFloat(val)
	case float32:
		return formatPostfixFloat(float64(val))
	case int:
		return formatPostfixInt(int64(val))
	case int32:
		return formatPostfixInt(int64(val))
	case int64:
		return formatPostfixInt(val)
	case string:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}

func formatPostfixFloat(v float64) string {
	if math.Abs(v) < 100 {
		return fmt.Sprintf("%.3f", v)
	}
	return fmt.Sprintf("%.1f", v)
}

func formatPostfixInt(v int64) string {
	if v > 1000 {
		return groupThousands(v)
	}
	return strconv.FormatInt(v, 10)
}

func groupThousands(v int64) string {
	s := strconv.FormatInt(v, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteString(",")
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// joinFields renders the postfix pairs as "k=v, k=v" in insertion order.
func joinFields(fields []Field) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f.Key+"="+formatPostfixValue(f.Value))
	}
	return strings.Join(parts, ", ")
}

// metricsLine builds the counters section shown after the bar glyphs.
// A zero total reports the fixed empty form, an unknown total drops the
// percentage, and rate plus ETA only appear once time has visibly passed.
func metricsLine(current, total int64, elapsed time.Duration, scale bool, divisor float64, unit string) string {
	if total == 0 {
		return "0/0 (0.0%)"
	}
	if total < 0 {
		base := formatNumber(float64(current), scale, divisor)
		if current <= 0 || elapsed <= 0 {
			return base
		}
		rate := float64(current) / elapsed.Seconds()
		return fmt.Sprintf("%s [%s, %s%s/s]",
			base, formatInterval(elapsed), formatNumber(rate, scale, divisor), unit)
	}

	pct := float64(current) / float64(total) * 100
	base := fmt.Sprintf("%s/%s (%.1f%%)",
		formatNumber(float64(current), scale, divisor),
		formatNumber(float64(total), scale, divisor), pct)
	if current <= 0 {
		return base
	}
	if elapsed <= 0 {
		return fmt.Sprintf("%s [%s, ?%s/s]", base, formatInterval(elapsed), unit)
	}
	rate := float64(current) / elapsed.Seconds()
	eta := time.Duration(float64(total-current) / rate * float64(time.Second))
	return fmt.Sprintf("%s [%s<%s, %s%s/s]",
		base, formatInterval(elapsed), formatInterval(eta),
		formatNumber(rate, scale, divisor), unit)
}
