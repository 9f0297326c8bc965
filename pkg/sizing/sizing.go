// Package sizing maps word frequencies to font sizes in pixels.
package sizing

import (
	"fmt"
	"math"

	"github.com/tagcloud/tagcloud/pkg/wordfreq"
)

// Scale names.
const (
	ScaleLinear = "linear"
	ScaleLog    = "log"
)

// Sizer returns the pixel font size for a word.
type Sizer interface {
	FontSize(w wordfreq.WordCount) float64
}

// Func adapts a function to the Sizer interface.
type Func func(w wordfreq.WordCount) float64

// FontSize calls f.
func (f Func) FontSize(w wordfreq.WordCount) float64 { return f(w) }

// Linear interpolates between Min and Max in proportion to
// Frequency/MaxFrequency.
type Linear struct {
	Min, Max     float64
	MaxFrequency int
}

// FontSize implements Sizer.
func (l Linear) FontSize(w wordfreq.WordCount) float64 {
	return lerp(l.Min, l.Max, ratio(float64(w.Frequency), float64(l.MaxFrequency)))
}

// Log interpolates on log(1+frequency), which keeps a single dominant word
// from shrinking everything else to Min.
type Log struct {
	Min, Max     float64
	MaxFrequency int
}

// FontSize implements Sizer.
func (l Log) FontSize(w wordfreq.WordCount) float64 {
	return lerp(l.Min, l.Max, ratio(math.Log1p(float64(w.Frequency)), math.Log1p(float64(l.MaxFrequency))))
}

func ratio(v, hi float64) float64 {
	if hi <= 0 {
		return 0
	}
	return math.Min(1, math.Max(0, v/hi))
}

func lerp(lo, hi, t float64) float64 {
	return math.Round(lo + (hi-lo)*t)
}

// ForWords builds the sizer named by scale for a ranked word list.
func ForWords(scale string, minSize, maxSize float64, words []wordfreq.WordCount) (Sizer, error) {
	top := wordfreq.MaxFrequency(words)
	switch scale {
	case ScaleLinear, "":
		return Linear{Min: minSize, Max: maxSize, MaxFrequency: top}, nil
	case ScaleLog:
		return Log{Min: minSize, Max: maxSize, MaxFrequency: top}, nil
	default:
		return nil, fmt.Errorf("unknown scale %q (must be linear or log)", scale)
	}
}
