package cli

import (
	"bytes"
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a bytes.Buffer safe for the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerBasic(t *testing.T) {
	var buf syncBuffer
	s := newSpinnerTo(context.Background(), &buf, "Counting...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !strings.Contains(buf.String(), "Counting...") {
		t.Errorf("spinner output missing message: %q", buf.String())
	}
	if s.Cancelled() {
		t.Error("Stop should not mark the spinner cancelled")
	}
}

func TestSpinnerSetMessage(t *testing.T) {
	var buf syncBuffer
	s := newSpinnerTo(context.Background(), &buf, "first")
	s.SetMessage("second")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !strings.Contains(buf.String(), "second") {
		t.Errorf("spinner output missing updated message: %q", buf.String())
	}
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinnerTo(ctx, &syncBuffer{}, "Rendering...")
	s.Start()
	cancel()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
	s.Stop()
}

func TestSpinnerWithTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := newSpinnerTo(ctx, &syncBuffer{}, "Rendering...")
	s.Start()
	time.Sleep(150 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context timeout")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinnerTo(context.Background(), &syncBuffer{}, "Stopping...")
	s.Start()
	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithSuccess(t *testing.T) {
	var out bytes.Buffer
	stdout = &out
	t.Cleanup(func() { stdout = os.Stdout })

	s := newSpinnerTo(context.Background(), &syncBuffer{}, "Rendering...")
	s.Start()
	s.StopWithSuccess("Done!")

	if !strings.Contains(out.String(), "Done!") {
		t.Errorf("stdout = %q, want success line", out.String())
	}
}
