package internal

import (
	"bufio"
	"io"
	"iter"
	"unicode"
)

const (
	WORDS_LINE_LIMIT = 1 << 24 // Longest accepted source line, in bytes.
)

// Word is a whitespace separated token, and where it was found.
type Word struct {
	Text   string
	Source int // Index of the reader the word came from.
	Line   int // 1-based line number.
	Column int // 1-based byte column.
}

// Words returns an iterator over the whitespace separated words of r.
// A read failure is yielded once, with an empty Word, and ends the sequence.
func Words(source int, r io.Reader) iter.Seq2[Word, error] {
	return func(yield func(word Word, err error) bool) {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(nil, WORDS_LINE_LIMIT)

		var lineno int
		for scanner.Scan() {
			lineno++
			line := scanner.Text()

			start := -1
			for n, ch := range line {
				if !unicode.IsSpace(ch) {
					if start < 0 {
						start = n
					}
					continue
				}
				if start >= 0 {
					if !yield(Word{Text: line[start:n], Source: source, Line: lineno, Column: start + 1}, nil) {
						return
					}
					start = -1
				}
			}
			if start >= 0 {
				if !yield(Word{Text: line[start:], Source: source, Line: lineno, Column: start + 1}, nil) {
					return
				}
			}
		}

		err := scanner.Err()
		if err != nil {
			yield(Word{}, err)
		}
	}
}
