package tokens

import (
	"io"
	"iter"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Rule reports whether a normalized word should be kept.
type Rule func(word string) bool

// Filter keeps the words accepted by every rule.
func Filter(words iter.Seq[string], rules ...Rule) iter.Seq[string] {
	return func(yield func(string) bool) {
	next:
		for w := range words {
			for _, keep := range rules {
				if !keep(w) {
					continue next
				}
			}
			if !yield(w) {
				return
			}
		}
	}
}

// MinLength keeps words of at least n runes.
func MinLength(n int) Rule {
	return func(w string) bool { return utf8.RuneCountInString(w) >= n }
}

// StopWords drops words in set.
func StopWords(set map[string]bool) Rule {
	return func(w string) bool { return !set[w] }
}

// NoNumbers drops words made only of digits.
func NoNumbers() Rule {
	return func(w string) bool {
		return strings.IndexFunc(w, func(r rune) bool { return !unicode.IsDigit(r) }) >= 0
	}
}

// defaultStopWords is a short list of English function words.
const defaultStopWords = `a about above after again against all am an and any are as at be because
been before being below between both but by can could did do does doing down during each few for
from further had has have having he her here hers herself him himself his how i if in into is it
its itself just me more most my myself no nor not now of off on once only or other our ours
ourselves out over own same she should so some such than that the their theirs them themselves
then there these they this those through to too under until up very was we were what when where
which while who whom why will with would you your yours yourself yourselves`

// DefaultStopWords returns the built-in English stop word set.
func DefaultStopWords() map[string]bool {
	return StopWordSet(strings.Fields(defaultStopWords))
}

// StopWordSet builds a set from a word list, normalizing each entry.
func StopWordSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for w := range Normalize(slices.Values(words)) {
		set[w] = true
	}
	return set
}

// Options configures [Pipeline].
type Options struct {
	MinLength      int
	StopWords      bool     // apply DefaultStopWords
	ExtraStopWords []string // additional words to drop
	KeepNumbers    bool
}

// Pipeline reads, normalizes and filters text from r. The returned scanner
// reports read errors after the stream has been consumed.
func Pipeline(r io.Reader, opts Options) (iter.Seq[string], *Scanner) {
	sc := NewScanner(r)

	var rules []Rule
	if opts.MinLength > 1 {
		rules = append(rules, MinLength(opts.MinLength))
	}
	if !opts.KeepNumbers {
		rules = append(rules, NoNumbers())
	}
	if opts.StopWords {
		rules = append(rules, StopWords(DefaultStopWords()))
	}
	if len(opts.ExtraStopWords) > 0 {
		rules = append(rules, StopWords(StopWordSet(opts.ExtraStopWords)))
	}
	return Filter(Normalize(sc.Words()), rules...), sc
}
