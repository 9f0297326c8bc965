// Package pkg provides the core libraries for tagcloud word cloud rendering.
//
// # Overview
//
// tagcloud turns text into a word cloud: every distinct word is drawn once,
// sized by how often it occurs, and packed around a center point without
// overlapping any other word. The pkg directory is organized into three
// areas:
//
//  1. Domain logic: counting, sizing, placing and drawing words
//  2. Infrastructure: caching, configuration, errors and observability
//  3. [pipeline]: orchestration (count → place → draw → encode)
//
// # Architecture
//
// The typical data flow through tagcloud:
//
//	Text input
//	     ↓
//	[tokens] package (split, normalize, filter)
//	     ↓
//	[wordfreq] package (ranked word list)
//	     ↓
//	[render] package (size, measure, place, draw on a [canvas] surface)
//	     ↓
//	[output] package (resize, encode PNG/JPEG/GIF/BMP/TIFF)
//
// # Quick Start
//
// Count and render a text file with the defaults:
//
//	import (
//	    "context"
//	    "os"
//
//	    "github.com/tagcloud/tagcloud/pkg/cache"
//	    "github.com/tagcloud/tagcloud/pkg/pipeline"
//	)
//
//	text, _ := os.ReadFile("notes.txt")
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	result, _ := runner.Execute(context.Background(), text, pipeline.Options{})
//	os.WriteFile("notes.png", result.Artifact, 0o644)
//
// # Main Packages
//
// ## Domain Logic
//
// [tokens] - Lazy word streams built from iterators: [tokens.Read] splits
// text, [tokens.Normalize] lowercases into NFC, [tokens.Filter] applies
// length, number and stop word rules. [tokens.Sniff] rejects binary input.
//
// [wordfreq] - Frequency aggregation. Produces the ranked list, highest
// frequency first, ties in first-seen order.
//
// [sizing] - Maps a word's frequency to a font size (linear or log scale).
//
// [palette] - Word colors: fixed hex lists, generated HCL palettes, and
// background color parsing.
//
// [fonts] - Embedded font families (Go fonts, Latin Modern) and fonts
// loaded from disk.
//
// [placement] - The placement strategy contract and the spiral strategy.
// A strategy hands out non-overlapping rectangles one word at a time.
//
// [geom] - Integer points, sizes and rectangles shared by placement,
// canvas and render.
//
// [canvas] - A draw surface centered on the layout origin that grows to
// fit every committed rectangle.
//
// [render] - Drives one run: size, measure, place and paint each word,
// then resize and flatten onto the background.
//
// [output] - Image encoders and the resize filters.
//
// ## Infrastructure
//
// [pipeline] - Complete pipeline (count → render → encode) used by the CLI
// and the HTTP API. Ensures consistent behavior across both entry points.
//
// [cache] - Cache backends for word lists and encoded images: FileCache
// (CLI), RedisCache (shared server cache), NullCache (disabled).
//
// [config] - Optional TOML or YAML config file applied under the CLI flags.
//
// [errors] - Coded errors and validation helpers.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// [buildinfo] - Version information set at link time.
//
// # Testing
//
// Run tests:
//
//	go test ./...                  # All tests
//	go test ./pkg/canvas/...       # Specific package
//	go test -run Spiral ./pkg/...  # Matching tests only
//
// [tokens]: https://pkg.go.dev/github.com/tagcloud/tagcloud/pkg/tokens
// [tokens.Read]: https://pkg.go.dev/github.com/tagcloud/tagcloud/pkg/tokens#Read
// [tokens.Normalize]: https://pkg.go.dev/github.com/tagcloud/tagcloud/pkg/tokens#Normalize
// [tokens.Filter]: https://pkg.go.dev/github.com/tagcloud/tagcloud/pkg/tokens#Filter
// [tokens.Sniff]: https://pkg.go.dev/github.com/tagcloud/tagcloud/pkg/tokens#Sniff
// [wordfreq]: https://pkg.go.dev/github.com/tagcloud/tagcloud/pkg/wordfreq
// [sizing]: https://pkg.go.dev/github.com/tagcloud/tagcloud/pkg/sizing
// [palette]: https://pkg.go.dev/github.com/tagcloud/tagcloud/pkg/palette
// [fonts]: https://pkg.go.dev/github.com/tagcloud/tagcloud/pkg/fonts
// [placement]: https://pkg.go.dev/github.com/tagcloud/tagcloud/pkg/placement
// [geom]: https://pkg.go.dev/github.com/tagcloud/tagcloud/pkg/geom
// [canvas]: https://pkg.go.dev/github.com/tagcloud/tagcloud/pkg/canvas
// [render]: https://pkg.go.dev/github.com/tagcloud/tagcloud/pkg/render
// [output]: https://pkg.go.dev/github.com/tagcloud/tagcloud/pkg/output
// [pipeline]: https://pkg.go.dev/github.com/tagcloud/tagcloud/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/tagcloud/tagcloud/pkg/cache
// [config]: https://pkg.go.dev/github.com/tagcloud/tagcloud/pkg/config
// [errors]: https://pkg.go.dev/github.com/tagcloud/tagcloud/pkg/errors
// [observability]: https://pkg.go.dev/github.com/tagcloud/tagcloud/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/tagcloud/tagcloud/pkg/buildinfo
package pkg
