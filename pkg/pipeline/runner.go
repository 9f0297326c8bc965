package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/tagcloud/tagcloud/pkg/cache"
	"github.com/tagcloud/tagcloud/pkg/errors"
	"github.com/tagcloud/tagcloud/pkg/observability"
	"github.com/tagcloud/tagcloud/pkg/output"
	"github.com/tagcloud/tagcloud/pkg/wordfreq"
)

// Runner executes the pipeline with caching. It holds no per-run state, so
// one Runner may serve concurrent runs.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner returns a runner. A nil cache disables caching and a nil keyer
// uses cache.DefaultKeyer.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute counts the words of input, renders them and encodes the image.
//
// Options are validated, and the font, palette and strategy resolved,
// before input is read. Counting and drawing run on a background goroutine
// that Execute waits for. See the package documentation for cancellation.
func (r *Runner) Execute(ctx context.Context, input []byte, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	plan, err := newRenderPlan(&opts)
	if err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{Format: opts.Format}
	key := r.Keyer.ArtifactKey(cache.Hash(input), opts.ArtifactKeyOpts())

	if !opts.Refresh && r.loadArtifact(ctx, key, result) {
		r.Logger.Debug("artifact from cache", "format", result.Format, "bytes", len(result.Artifact))
		return result, nil
	}

	var g errgroup.Group
	g.Go(func() error {
		start := time.Now()
		words, unique, hit, err := r.CountWithCacheInfo(ctx, input, opts)
		if err != nil {
			return fmt.Errorf("aggregate: %w", err)
		}
		result.Words = words
		result.Stats.UniqueWords = unique
		result.Stats.DrawnWords = len(words)
		result.Stats.AggregateTime = time.Since(start)
		result.CacheInfo.WordsHit = hit

		if len(words) == 0 && ctx.Err() == nil {
			return errors.New(errors.ErrCodeInvalidInput, "input contains no words to draw")
		}

		start = time.Now()
		img, err := plan.render(ctx, words, opts)
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}
		result.Image = img
		result.Stats.Width, result.Stats.Height = img.Bounds().Dx(), img.Bounds().Dy()
		result.Stats.RenderTime = time.Since(start)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if ctx.Err() != nil {
		result.Cancelled = true
		r.Logger.Warn("run cancelled", "words", len(result.Words))
		return result, nil
	}

	r.Logger.Info("rendered words",
		"words", result.Stats.DrawnWords,
		"size", fmt.Sprintf("%dx%d", result.Stats.Width, result.Stats.Height),
		"duration", result.Stats.AggregateTime+result.Stats.RenderTime)

	start := time.Now()
	data, err := output.EncodeBytes(result.Image, opts.Format)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	result.Artifact = data
	result.Stats.EncodeTime = time.Since(start)

	r.storeArtifact(ctx, key, result)
	return result, nil
}

type cachedArtifact struct {
	Words  []wordfreq.WordCount `json:"words"`
	Unique int                  `json:"unique"`
	Width  int                  `json:"width"`
	Height int                  `json:"height"`
	Data   []byte               `json:"data"`
}

func (r *Runner) loadArtifact(ctx context.Context, key string, result *Result) bool {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "artifact")
		return false
	}
	var c cachedArtifact
	if err := json.Unmarshal(data, &c); err != nil || len(c.Data) == 0 {
		observability.Cache().OnCacheMiss(ctx, "artifact")
		return false
	}
	observability.Cache().OnCacheHit(ctx, "artifact")

	result.Words = c.Words
	result.Artifact = c.Data
	result.Stats.UniqueWords = c.Unique
	result.Stats.DrawnWords = len(c.Words)
	result.Stats.Width, result.Stats.Height = c.Width, c.Height
	result.CacheInfo.WordsHit = true
	result.CacheInfo.ArtifactHit = true
	return true
}

func (r *Runner) storeArtifact(ctx context.Context, key string, result *Result) {
	data, err := json.Marshal(cachedArtifact{
		Words:  result.Words,
		Unique: result.Stats.UniqueWords,
		Width:  result.Stats.Width,
		Height: result.Stats.Height,
		Data:   result.Artifact,
	})
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "artifact", len(data))
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
