// Package chunker splits document text into overlapping fragments
// suitable for embedding.
package chunker

import "strings"

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 500

// DefaultOverlap is the default number of overlapping characters
// between consecutive chunks.
const DefaultOverlap = 50

// Splitter produces overlapping chunks from raw text. Splitting is a pure
// function: identical input and parameters always yield identical output.
type Splitter struct {
	chunkSize int
	overlap   int
}

// Option configures the splitter.
type Option func(*Splitter)

// WithChunkSize sets the target chunk size in characters.
func WithChunkSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// New creates a splitter with the given options.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Overlap must stay below chunk size or the window cannot advance.
	if s.overlap >= s.chunkSize {
		s.overlap = s.chunkSize / 4
	}

	return s
}

// Split breaks text into overlapping chunks.
//
// The text is first normalised: CRLF and bare CR become LF, runs of three
// or more newlines collapse to a blank line, and surrounding whitespace is
// trimmed. Text that fits in one chunk is returned as-is, even when empty.
// Otherwise a window of chunkSize slides across the text; each window end
// is pulled back to the nearest sentence terminator, line break or space,
// in that order, provided the boundary lies at or after the window
// midpoint. Consecutive chunks overlap by the configured amount.
//
// All sizes and offsets count runes, never bytes, so multibyte text is
// never cut mid-character.
func (s *Splitter) Split(text string) []string {
	clean := normalise(text)
	runes := []rune(clean)

	if len(runes) <= s.chunkSize {
		return []string{clean}
	}

	var chunks []string
	start := 0

	for start < len(runes) {
		// end is left unclamped so the next window start advances past the
		// text on the final iteration.
		end := start + s.chunkSize
		sliceEnd := len(runes)

		if end < len(runes) {
			end = adjustBoundary(runes, start, end, s.chunkSize)
			sliceEnd = end
		}

		chunk := strings.TrimSpace(string(runes[start:sliceEnd]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		next := end - s.overlap
		if next <= start {
			break
		}
		start = next
	}

	return chunks
}

// adjustBoundary pulls the window end back to a natural break point.
// Sentence terminators win over line breaks, which win over spaces, and a
// break is only taken when it falls at or after the window midpoint so
// chunks never degenerate to tiny fragments.
func adjustBoundary(runes []rune, start, end, chunkSize int) int {
	mid := start + chunkSize/2

	for _, sep := range []rune{'.', '\n', ' '} {
		for p := end; p > mid; p-- {
			if runes[p] == sep {
				return p + 1
			}
		}
	}
	return end
}

// normalise collapses line-ending variants and excessive blank lines.
func normalise(text string) string {
	clean := strings.ReplaceAll(text, "\r\n", "\n")
	clean = strings.ReplaceAll(clean, "\r", "\n")

	for strings.Contains(clean, "\n\n\n") {
		clean = strings.ReplaceAll(clean, "\n\n\n", "\n\n")
	}

	return strings.TrimSpace(clean)
}
