// Package tokens turns raw text into a lazy stream of normalized, filtered
// words for the frequency aggregator.
//
// The stages compose as iterators:
//
//	sc := tokens.NewScanner(r)
//	words := tokens.Filter(tokens.Normalize(sc.Words()), tokens.MinLength(3))
//	ranked := wordfreq.Aggregate(ctx, words)
//	if err := sc.Err(); err != nil { ... }
//
// Nothing is read until the stream is consumed, and consumption stops as
// soon as the consumer stops.
package tokens

import (
	"bufio"
	"io"
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/h2non/filetype"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/tagcloud/tagcloud/pkg/errors"
)

// maxTokenSize bounds a single whitespace-separated chunk.
const maxTokenSize = 1 << 20

// Scanner splits text into words. Words are maximal runs of letters, digits
// and marks; apostrophes are kept when they sit between letters.
type Scanner struct {
	r   io.Reader
	err error
}

// NewScanner returns a scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{r: r}
}

// Words returns the word stream. It can be ranged over once.
func (s *Scanner) Words() iter.Seq[string] {
	return func(yield func(string) bool) {
		sc := bufio.NewScanner(s.r)
		sc.Buffer(make([]byte, 64*1024), maxTokenSize)
		sc.Split(bufio.ScanWords)
		for sc.Scan() {
			for _, w := range splitWord(sc.Text()) {
				if !yield(w) {
					return
				}
			}
		}
		s.err = sc.Err()
	}
}

// Read returns the words of r. A read error ends the stream silently; use
// [NewScanner] to observe it.
func Read(r io.Reader) iter.Seq[string] {
	return NewScanner(r).Words()
}

// Err returns the first read error, if any, once Words has been consumed.
func (s *Scanner) Err() error { return s.err }

func splitWord(chunk string) []string {
	fields := strings.FieldsFunc(chunk, func(r rune) bool {
		return !isWordRune(r) && r != '\'' && r != '’'
	})
	out := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, "'’")
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

// Sniff rejects input whose leading bytes identify a binary file type
// (images, archives, documents, media) or that is not UTF-8 text.
func Sniff(head []byte) error {
	if kind, err := filetype.Match(head); err == nil && kind != filetype.Unknown {
		return errors.New(errors.ErrCodeInvalidInput, "input looks like %s, not text", kind.MIME.Value)
	}
	// A multi-byte rune may be cut at the end of head.
	trimmed := head
	for i := 0; i < utf8.UTFMax-1 && len(trimmed) > 0 && !utf8.Valid(trimmed); i++ {
		trimmed = trimmed[:len(trimmed)-1]
	}
	if !utf8.Valid(trimmed) || strings.ContainsRune(string(trimmed), 0) {
		return errors.New(errors.ErrCodeInvalidInput, "input is not UTF-8 text")
	}
	return nil
}

// Normalize lowercases words and puts them in NFC form.
func Normalize(words iter.Seq[string]) iter.Seq[string] {
	return func(yield func(string) bool) {
		lower := cases.Lower(language.Und)
		for w := range words {
			if !yield(norm.NFC.String(lower.String(w))) {
				return
			}
		}
	}
}
