package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnAggregateStart(ctx, 1024)
	p.OnAggregateComplete(ctx, 10, time.Second, nil)
	p.OnRenderStart(ctx, 10)
	p.OnRenderComplete(ctx, 800, 600, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "artifact")
	c.OnCacheMiss(ctx, "words")
	c.OnCacheSet(ctx, "artifact", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/render")
	h.OnResponse(ctx, "POST", "/render", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should default to NoopPipelineHooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should default to NoopCacheHooks")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should default to NoopHTTPHooks")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}
	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}
	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)
	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	h := NewLogHooks(logger)
	ctx := context.Background()

	h.OnAggregateComplete(ctx, 42, time.Millisecond, nil)
	h.OnRenderComplete(ctx, 0, 0, time.Millisecond, errors.New("placement failed"))
	h.OnCacheHit(ctx, "artifact")

	out := buf.String()
	for _, want := range []string{"aggregate done", "words=42", "render failed", "placement failed", "cache hit"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

type testPipelineHooks struct{ NoopPipelineHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
