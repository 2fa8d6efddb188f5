package tagcloud

import (
	"fmt"
	"iter"
	"log/slog"
	"strconv"
	"strings"
)

// Config controls how many tags are kept and how they are sized.
type Config struct {
	Size  int
	Fonts FontRange
}

// DefaultConfig keeps the 100 most frequent words with the default font range.
func DefaultConfig() Config {
	return Config{Size: 100, Fonts: DefaultFontRange()}
}

// Validate rejects negative sizes and bad font ranges.
func (c Config) Validate() error {
	if c.Size < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSelectionSize, c.Size)
	}
	return c.Fonts.Validate()
}

// ParseSize parses a selection size given as text.
func ParseSize(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidSelectionSize, s)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidSelectionSize, n)
	}
	return n, nil
}

// Cloud is the computed tag cloud, ready to be rendered top to bottom.
type Cloud struct {
	// Entries are ordered by tag.
	Entries []Entry
	// MinCount and MaxCount span the selected entries only.
	MinCount int
	MaxCount int
	// Distinct and Total describe the whole input.
	Distinct int
	Total    int
}

// Build runs the whole pipeline over lines: tokenize, count, keep the
// cfg.Size most frequent words, sort them by word and size their fonts.
// Input without any word yields an empty cloud.
func Build(lines iter.Seq[string], cfg Config) (*Cloud, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	counts := CountTokens(Tokens(lines))
	top, err := counts.TopN(cfg.Size)
	if err != nil {
		return nil, err
	}

	sorted := Alphabetize(top)
	minCount, maxCount := CountRange(sorted)
	slog.Debug("Counted words",
		"total", counts.Total(), "distinct", counts.Len(), "selected", len(sorted),
		"min_count", minCount, "max_count", maxCount)

	return &Cloud{
		Entries:  Scale(sorted, minCount, maxCount, cfg.Fonts),
		MinCount: minCount,
		MaxCount: maxCount,
		Distinct: counts.Len(),
		Total:    counts.Total(),
	}, nil
}
