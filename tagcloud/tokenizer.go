package tagcloud

import (
	"iter"
	"strings"
	"unicode/utf8"
)

// separators split words. Everything else, digits and non-ASCII letters included,
// is part of a word.
const separators = " \t\r\n!,-.?[]';:/()"

// sentinel is appended to every line so that a trailing word is always flushed.
const sentinel = '!'

// IsSeparator reports whether r ends a word.
func IsSeparator(r rune) bool {
	return strings.ContainsRune(separators, r)
}

// Tokens lazily splits lines into lower-cased words. Words never span lines.
// The returned sequence pulls from lines as it is ranged over, so it can be
// consumed only as many times as lines itself.
func Tokens(lines iter.Seq[string]) iter.Seq[string] {
	return func(yield func(string) bool) {
		var word strings.Builder
		for line := range lines {
			line += string(sentinel)
			for i := 0; i < len(line); {
				r, size := utf8.DecodeRuneInString(line[i:])
				chunk := line[i : i+size]
				i += size
				if !IsSeparator(r) {
					// Raw bytes, so invalid UTF-8 survives unchanged.
					word.WriteString(chunk)
					continue
				}
				if word.Len() == 0 {
					continue
				}
				tok := lowerASCII(word.String())
				word.Reset()
				if !yield(tok) {
					return
				}
			}
		}
	}
}

// lowerASCII folds A-Z only; every other byte is left untouched.
func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}
