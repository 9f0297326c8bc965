package sizing

import (
	"testing"

	"github.com/tagcloud/tagcloud/pkg/wordfreq"
)

func TestLinear(t *testing.T) {
	s := Linear{Min: 10, Max: 50, MaxFrequency: 4}

	tests := []struct {
		freq int
		want float64
	}{
		{0, 10},
		{2, 30},
		{4, 50},
		{9, 50},
	}

	for _, tt := range tests {
		if got := s.FontSize(wordfreq.WordCount{Text: "w", Frequency: tt.freq}); got != tt.want {
			t.Errorf("FontSize(freq=%d) = %g, want %g", tt.freq, got, tt.want)
		}
	}
}

func TestLinearAllZero(t *testing.T) {
	s := Linear{Min: 12, Max: 60}
	if got := s.FontSize(wordfreq.WordCount{Text: "w"}); got != 12 {
		t.Errorf("FontSize() = %g, want 12", got)
	}
}

func TestLogIsMonotonic(t *testing.T) {
	s := Log{Min: 10, Max: 80, MaxFrequency: 100}
	prev := 0.0
	for f := 0; f <= 100; f += 5 {
		got := s.FontSize(wordfreq.WordCount{Frequency: f})
		if got < prev {
			t.Fatalf("FontSize(%d) = %g < previous %g", f, got, prev)
		}
		prev = got
	}
	if prev != 80 {
		t.Errorf("FontSize(max) = %g, want 80", prev)
	}
}

func TestForWords(t *testing.T) {
	words := []wordfreq.WordCount{{Text: "a", Frequency: 8}, {Text: "b", Frequency: 2}}

	s, err := ForWords(ScaleLinear, 10, 90, words)
	if err != nil {
		t.Fatalf("ForWords(linear) error: %v", err)
	}
	if got := s.FontSize(words[0]); got != 90 {
		t.Errorf("top word size = %g, want 90", got)
	}

	if _, err := ForWords(ScaleLog, 10, 90, words); err != nil {
		t.Errorf("ForWords(log) error: %v", err)
	}
	if _, err := ForWords("cubic", 10, 90, words); err == nil {
		t.Error("ForWords(cubic) should fail")
	}
}
