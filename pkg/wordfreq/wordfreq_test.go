package wordfreq

import (
	"context"
	"iter"
	"slices"
	"testing"
)

func TestAggregateScenario(t *testing.T) {
	got := Aggregate(context.Background(), slices.Values([]string{"a", "b", "a"}))
	want := []WordCount{{"a", 1}, {"b", 0}}
	if !slices.Equal(got, want) {
		t.Errorf("Aggregate() = %v, want %v", got, want)
	}
}

func TestAggregateRanking(t *testing.T) {
	tokens := []string{"go", "rust", "go", "zig", "rust", "go", "c", "c", "c", "c"}
	got := Aggregate(context.Background(), slices.Values(tokens))

	for i := 1; i < len(got); i++ {
		if got[i-1].Frequency < got[i].Frequency {
			t.Fatalf("not sorted descending at %d: %v", i, got)
		}
	}

	want := map[string]int{"c": 3, "go": 2, "rust": 1, "zig": 0}
	if len(got) != len(want) {
		t.Fatalf("got %d words, want %d", len(got), len(want))
	}
	for _, w := range got {
		if w.Frequency != want[w.Text] {
			t.Errorf("Frequency(%q) = %d, want %d", w.Text, w.Frequency, want[w.Text])
		}
	}
}

func TestAggregateTiesKeepFirstSeenOrder(t *testing.T) {
	got := Aggregate(context.Background(), slices.Values([]string{"x", "y", "z"}))
	want := []WordCount{{"x", 0}, {"y", 0}, {"z", 0}}
	if !slices.Equal(got, want) {
		t.Errorf("Aggregate() = %v, want %v", got, want)
	}
}

func TestAggregateEmpty(t *testing.T) {
	got := Aggregate(context.Background(), slices.Values([]string(nil)))
	if len(got) != 0 {
		t.Errorf("Aggregate(empty) = %v, want empty", got)
	}
}

func TestAggregateCancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := Aggregate(ctx, slices.Values([]string{"a", "b", "a"}))
	if len(got) != 0 {
		t.Errorf("Aggregate(cancelled) = %v, want empty", got)
	}
}

// cancelAfter yields tokens and cancels once n of them have been consumed.
func cancelAfter(tokens []string, n int, cancel context.CancelFunc) iter.Seq[string] {
	return func(yield func(string) bool) {
		for i, tok := range tokens {
			if i == n {
				cancel()
			}
			if !yield(tok) {
				return
			}
		}
	}
}

func TestAggregateCancelledMidStreamKeepsPartial(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tokens := []string{"a", "a", "b", "c", "c", "c"}
	got := Aggregate(ctx, cancelAfter(tokens, 3, cancel))

	want := []WordCount{{"a", 1}, {"b", 0}}
	if !slices.Equal(got, want) {
		t.Errorf("Aggregate() = %v, want %v", got, want)
	}
}

func TestAggregateStopsConsuming(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumed := 0
	seq := func(yield func(string) bool) {
		for {
			consumed++
			if consumed == 5 {
				cancel()
			}
			if !yield("w") {
				return
			}
		}
	}

	got := Aggregate(ctx, seq)
	if consumed != 5 {
		t.Errorf("consumed %d tokens, want 5", consumed)
	}
	if len(got) != 1 || got[0].Frequency != 3 {
		t.Errorf("Aggregate() = %v, want [{w 3}]", got)
	}
}

func TestCounts(t *testing.T) {
	c := NewCounts()
	c.Add("hello")
	c.Add("world")
	c.Add("hello")

	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	if f, ok := c.Frequency("hello"); !ok || f != 1 {
		t.Errorf("Frequency(hello) = %d, %v; want 1, true", f, ok)
	}
	if _, ok := c.Frequency("missing"); ok {
		t.Error("Frequency(missing) should report unseen")
	}
}

func TestTop(t *testing.T) {
	words := []WordCount{{"a", 3}, {"b", 2}, {"c", 1}}

	tests := []struct {
		n    int
		want int
	}{
		{0, 3},
		{-1, 3},
		{2, 2},
		{10, 3},
	}

	for _, tt := range tests {
		if got := Top(words, tt.n); len(got) != tt.want {
			t.Errorf("Top(%d) length = %d, want %d", tt.n, len(got), tt.want)
		}
	}
}

func TestMaxFrequency(t *testing.T) {
	if got := MaxFrequency(nil); got != 0 {
		t.Errorf("MaxFrequency(nil) = %d, want 0", got)
	}
	if got := MaxFrequency([]WordCount{{"a", 2}, {"b", 7}}); got != 7 {
		t.Errorf("MaxFrequency() = %d, want 7", got)
	}
}
