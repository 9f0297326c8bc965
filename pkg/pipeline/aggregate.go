package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/tagcloud/tagcloud/pkg/cache"
	"github.com/tagcloud/tagcloud/pkg/errors"
	"github.com/tagcloud/tagcloud/pkg/observability"
	"github.com/tagcloud/tagcloud/pkg/tokens"
	"github.com/tagcloud/tagcloud/pkg/wordfreq"
)

// sniffLen is how much of the input is inspected by tokens.Sniff.
const sniffLen = 512

// Aggregate reads input and returns its ranked word list, all of it, before
// MaxWords truncation. A cancelled ctx yields the words counted so far.
func Aggregate(ctx context.Context, input []byte, opts Options) ([]wordfreq.WordCount, error) {
	if err := opts.ValidateForWords(); err != nil {
		return nil, err
	}
	if err := tokens.Sniff(input[:min(len(input), sniffLen)]); err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Pipeline().OnAggregateStart(ctx, len(input))

	seq, sc := tokens.Pipeline(bytes.NewReader(input), opts.TokenOptions())
	words := wordfreq.Aggregate(ctx, seq)

	var err error
	if scanErr := sc.Err(); scanErr != nil {
		err = errors.Wrap(errors.ErrCodeInvalidInput, scanErr, "read input")
	}
	observability.Pipeline().OnAggregateComplete(ctx, len(words), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return words, nil
}

// CountWithCacheInfo returns the ranked words of input, truncated to
// MaxWords, and whether they came from the cache. Partial lists from a
// cancelled ctx are returned but never cached.
func (r *Runner) CountWithCacheInfo(ctx context.Context, input []byte, opts Options) ([]wordfreq.WordCount, int, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForWords(); err != nil {
		return nil, 0, false, err
	}

	key := r.Keyer.WordsKey(cache.Hash(input), opts.WordsKeyOpts())
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached cachedWords
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "words")
				return cached.Words, cached.Unique, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "words")
	}

	all, err := Aggregate(ctx, input, opts)
	if err != nil {
		return nil, 0, false, err
	}
	words := wordfreq.Top(all, opts.MaxWords)

	if ctx.Err() == nil {
		if data, err := json.Marshal(cachedWords{Words: words, Unique: len(all)}); err == nil {
			if err := r.Cache.Set(ctx, key, data, cache.TTLWords); err != nil {
				r.Logger.Warn("cache write failed", "err", err)
			} else {
				observability.Cache().OnCacheSet(ctx, "words", len(data))
			}
		}
	}
	return words, len(all), false, nil
}

// Count is CountWithCacheInfo without the cache and size details.
func (r *Runner) Count(ctx context.Context, input []byte, opts Options) ([]wordfreq.WordCount, error) {
	words, _, _, err := r.CountWithCacheInfo(ctx, input, opts)
	return words, err
}

type cachedWords struct {
	Words  []wordfreq.WordCount `json:"words"`
	Unique int                  `json:"unique"`
}
