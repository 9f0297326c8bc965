// Package palette assigns colors to words.
//
// Colors are parsed and generated with github.com/lucasb-eyer/go-colorful.
// Assignment is index-based: the i-th word in rank order takes the
// i-th color, cycling when the palette is shorter than the word list.
package palette

import (
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/tagcloud/tagcloud/pkg/errors"
	"github.com/tagcloud/tagcloud/pkg/wordfreq"
)

// Palette picks the color for the word at index in rank order.
type Palette interface {
	Color(index int, w wordfreq.WordCount) color.Color
}

// RoundRobin cycles through its colors by index.
type RoundRobin []color.Color

// Color implements Palette. An empty RoundRobin paints black.
func (p RoundRobin) Color(index int, _ wordfreq.WordCount) color.Color {
	if len(p) == 0 {
		return color.Black
	}
	return p[index%len(p)]
}

// Default is the palette used when none is configured.
func Default() RoundRobin {
	p, _ := ParseHex([]string{"#1b9e77", "#d95f02", "#7570b3", "#e7298a", "#66a61e", "#e6ab02", "#a6761d"})
	return p
}

// ParseHex parses "#rrggbb" or "#rgb" strings into a RoundRobin palette.
func ParseHex(list []string) (RoundRobin, error) {
	out := make(RoundRobin, 0, len(list))
	for _, s := range list {
		c, err := ParseColor(s)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Generate returns n evenly spread colors. Hues advance by the golden angle
// from a seed-dependent start, so the same seed gives the same palette.
func Generate(n int, seed uint64) RoundRobin {
	const goldenAngle = 137.50776405
	start := math.Mod(float64(seed%360), 360)

	out := make(RoundRobin, n)
	for i := range out {
		h := math.Mod(start+float64(i)*goldenAngle, 360)
		out[i] = toNRGBA(colorful.Hcl(h, 0.65, 0.55).Clamped())
	}
	return out
}

var named = map[string]color.Color{
	"transparent": color.Transparent,
	"white":       color.White,
	"black":       color.Black,
}

// ParseColor parses a background or palette color: a name (white, black,
// transparent) or a hex string.
func ParseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if c, ok := named[s]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid color %q", s)
	}
	return toNRGBA(c), nil
}

func toNRGBA(c colorful.Color) color.NRGBA {
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// Hex formats c as "#rrggbb", dropping alpha.
func Hex(c color.Color) string {
	cf, _ := colorful.MakeColor(c)
	return cf.Hex()
}
