package tagcloud

import "fmt"

// Default font sizes, matching the classes of the stock tagcloud.css.
const (
	DefaultFontMin = 11
	DefaultFontMax = 48
)

// FontRange is the inclusive range of font sizes a cloud is rendered with.
type FontRange struct {
	Min int
	Max int
}

// DefaultFontRange returns [DefaultFontMin, DefaultFontMax].
func DefaultFontRange() FontRange {
	return FontRange{Min: DefaultFontMin, Max: DefaultFontMax}
}

// Validate checks that the range is non-negative and not inverted.
func (f FontRange) Validate() error {
	if f.Min < 0 {
		return fmt.Errorf("%w: min %d is negative", ErrInvalidFontRange, f.Min)
	}
	if f.Min > f.Max {
		return fmt.Errorf("%w: min %d is greater than max %d", ErrInvalidFontRange, f.Min, f.Max)
	}
	return nil
}

// Entry is a selected tag together with the font size it is rendered with.
type Entry struct {
	TagStat
	FontSize int
}

// Size maps count linearly onto the font range, rounding up.
// Counts at or below minCount get f.Min, maxCount gets f.Max.
// A collapsed count range (maxCount <= minCount) is widened by one so that
// every count in it maps to f.Min.
func (f FontRange) Size(count, minCount, maxCount int) int {
	if maxCount <= minCount {
		maxCount = minCount + 1
	}
	if count <= minCount {
		return f.Min
	}
	if count >= maxCount {
		return f.Max
	}
	num := (f.Max - f.Min) * (count - minCount)
	den := maxCount - minCount
	return f.Min + (num+den-1)/den
}

// CountRange returns the smallest and largest occurrence counts in stats,
// or (0, 0) when stats is empty.
func CountRange(stats []TagStat) (minCount, maxCount int) {
	for i, s := range stats {
		if i == 0 || s.OccurrenceCount < minCount {
			minCount = s.OccurrenceCount
		}
		if i == 0 || s.OccurrenceCount > maxCount {
			maxCount = s.OccurrenceCount
		}
	}
	return minCount, maxCount
}

// Scale annotates every stat with its font size, keeping the input order.
func Scale(stats []TagStat, minCount, maxCount int, fonts FontRange) []Entry {
	entries := make([]Entry, 0, len(stats))
	for _, s := range stats {
		entries = append(entries, Entry{
			TagStat:  s,
			FontSize: fonts.Size(s.OccurrenceCount, minCount, maxCount),
		})
	}
	return entries
}
