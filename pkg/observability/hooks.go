// Package observability lets callers attach instrumentation to the
// tagcloud pipeline without the libraries depending on a backend.
//
// Hooks are registered once at startup, typically by the CLI:
//
//	observability.SetPipelineHooks(observability.NewLogHooks(logger))
//
// Library code emits events through the registry:
//
//	observability.Pipeline().OnAggregateStart(ctx, len(input))
//	words := wordfreq.Aggregate(ctx, tokens)
//	observability.Pipeline().OnAggregateComplete(ctx, len(words), time.Since(start), nil)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from a tagcloud run.
type PipelineHooks interface {
	OnAggregateStart(ctx context.Context, inputBytes int)
	OnAggregateComplete(ctx context.Context, words int, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, words int)
	OnRenderComplete(ctx context.Context, width, height int, duration time.Duration, err error)
}

// CacheHooks receives events from cache lookups. keyType is "words" or
// "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from the HTTP API.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, status int, duration time.Duration)
}

// NoopPipelineHooks ignores every event.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnAggregateStart(context.Context, int)                            {}
func (NoopPipelineHooks) OnAggregateComplete(context.Context, int, time.Duration, error)   {}
func (NoopPipelineHooks) OnRenderStart(context.Context, int)                               {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, int, int, time.Duration, error) {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks ignores every event.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

var (
	hooksMu       sync.RWMutex
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
)

// SetPipelineHooks registers h. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers h. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores the no-op hooks. Tests use it.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
