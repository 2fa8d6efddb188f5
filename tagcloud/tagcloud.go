package tagcloud

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// TagCloud aggregates statistics about used tags
type TagCloud struct {
	tags  map[string]int
	total int
}

// TagStat represents statistics regarding single tag
type TagStat struct {
	Tag             string
	OccurrenceCount int
}

// New creates an empty TagCloud
func New() *TagCloud {
	return &TagCloud{tags: map[string]int{}}
}

// CountTokens consumes the whole sequence and returns the resulting cloud.
// Empty tokens are ignored.
func CountTokens(tokens iter.Seq[string]) *TagCloud {
	cloud := New()
	for tok := range tokens {
		cloud.AddTag(tok)
	}
	return cloud
}

// AddTag adds a tag to the cloud if it wasn't present and increases its occurrence count
// thread-safety is not needed
func (cloud *TagCloud) AddTag(tag string) {
	if tag == "" {
		return
	}
	cloud.tags[tag]++
	cloud.total++
}

// Count returns how many times tag was added
func (cloud *TagCloud) Count(tag string) int {
	return cloud.tags[tag]
}

// Len returns the number of distinct tags
func (cloud *TagCloud) Len() int {
	return len(cloud.tags)
}

// Total returns the sum of all occurrence counts
func (cloud *TagCloud) Total() int {
	return cloud.total
}

// Stats returns every tag in no particular order
func (cloud *TagCloud) Stats() []TagStat {
	tags := make([]TagStat, 0, len(cloud.tags))
	for tag, count := range cloud.tags {
		tags = append(tags, TagStat{Tag: tag, OccurrenceCount: count})
	}
	return tags
}

// TopN returns top N most frequent tags ordered in descending order by occurrence count.
// Tags with the same occurrence count are ordered by tag, so when the cut falls inside
// a run of equal counts the lexicographically smaller tags are kept.
// If n is greater than TagCloud size then all elements are returned.
// Negative n is rejected with ErrInvalidSelectionSize.
func (cloud *TagCloud) TopN(n int) ([]TagStat, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSelectionSize, n)
	}
	tags := cloud.Stats()
	slices.SortFunc(tags, byCountDesc)
	if len(tags) < n {
		n = len(tags)
	}
	return tags[:n:n], nil
}

func byCountDesc(a, b TagStat) int {
	if a.OccurrenceCount != b.OccurrenceCount {
		return b.OccurrenceCount - a.OccurrenceCount
	}
	return strings.Compare(a.Tag, b.Tag)
}

func byTag(a, b TagStat) int {
	if c := strings.Compare(a.Tag, b.Tag); c != 0 {
		return c
	}
	return a.OccurrenceCount - b.OccurrenceCount
}

// Alphabetize returns a copy of stats sorted by tag, then by ascending count.
func Alphabetize(stats []TagStat) []TagStat {
	sorted := slices.Clone(stats)
	slices.SortFunc(sorted, byTag)
	return sorted
}
