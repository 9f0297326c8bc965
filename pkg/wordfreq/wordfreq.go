// Package wordfreq turns a stream of normalized tokens into a
// frequency-ranked word list.
//
// # Count Semantics
//
// The first occurrence of a word records a frequency of 0 and every repeat
// adds 1, so a word's Frequency is its occurrence count minus one:
//
//	Aggregate(ctx, slices.Values([]string{"a", "b", "a"}))
//	// [{a 1} {b 0}]
//
// Callers that need raw occurrence counts add one.
//
// # Cancellation
//
// [Aggregate] checks ctx once per consumed token. When ctx is done it stops
// reading and returns the ranking of what was counted so far. Partial work
// is kept and no error is reported.
package wordfreq

import (
	"cmp"
	"context"
	"iter"
	"slices"
)

// WordCount is a word and its frequency. Values are never mutated after
// [Counts.Ranked] produces them.
type WordCount struct {
	Text      string `json:"text"`
	Frequency int    `json:"frequency"`
}

// Counts maps word text to its running count. The zero value is not usable;
// call [NewCounts].
type Counts struct {
	freq  map[string]int
	order []string // first-seen order, used to break ties
}

// NewCounts returns an empty mapping.
func NewCounts() *Counts {
	return &Counts{freq: make(map[string]int)}
}

// Add records one occurrence of word.
func (c *Counts) Add(word string) {
	if _, seen := c.freq[word]; !seen {
		c.freq[word] = 0
		c.order = append(c.order, word)
		return
	}
	c.freq[word]++
}

// Len returns the number of distinct words.
func (c *Counts) Len() int { return len(c.order) }

// Frequency returns the stored frequency of word and whether it was seen.
func (c *Counts) Frequency(word string) (int, bool) {
	f, ok := c.freq[word]
	return f, ok
}

// Ranked converts the mapping into a list sorted by frequency, highest
// first. Ties keep first-seen order.
func (c *Counts) Ranked() []WordCount {
	out := make([]WordCount, len(c.order))
	for i, w := range c.order {
		out[i] = WordCount{Text: w, Frequency: c.freq[w]}
	}
	slices.SortStableFunc(out, func(a, b WordCount) int {
		return cmp.Compare(b.Frequency, a.Frequency)
	})
	return out
}

// Aggregate consumes tokens once and returns the ranked word list.
func Aggregate(ctx context.Context, tokens iter.Seq[string]) []WordCount {
	counts := NewCounts()
	for tok := range tokens {
		if ctx.Err() != nil {
			break
		}
		counts.Add(tok)
	}
	return counts.Ranked()
}

// Top returns the first n entries of a ranked list. n <= 0 keeps all.
func Top(words []WordCount, n int) []WordCount {
	if n <= 0 || n >= len(words) {
		return words
	}
	return words[:n]
}

// MaxFrequency returns the highest frequency in words, or 0 for an empty list.
func MaxFrequency(words []WordCount) int {
	m := 0
	for _, w := range words {
		m = max(m, w.Frequency)
	}
	return m
}
