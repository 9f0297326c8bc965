package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level, and failures at
// warn level.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log through l.
func NewLogHooks(l *log.Logger) *LogHooks {
	return &LogHooks{logger: l.WithPrefix("hooks")}
}

func (h *LogHooks) OnAggregateStart(_ context.Context, inputBytes int) {
	h.logger.Debug("aggregate start", "bytes", inputBytes)
}

func (h *LogHooks) OnAggregateComplete(_ context.Context, words int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("aggregate failed", "err", err, "took", d)
		return
	}
	h.logger.Debug("aggregate done", "words", words, "took", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, words int) {
	h.logger.Debug("render start", "words", words)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, width, height int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("render failed", "err", err, "took", d)
		return
	}
	h.logger.Debug("render done", "width", width, "height", height, "took", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "path", path, "status", status, "took", d)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
