package cli

import (
	"context"
	"testing"
	"time"
)

func TestSpinnerStopIsNotCancellation(t *testing.T) {
	s := newSpinner("rendering figures")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	if s.Cancelled() {
		t.Error("plain Stop must not count as cancellation")
	}
}

func TestSpinnerStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinnerWithContext(ctx, "assembling document")
	s.Start()
	cancel()

	// Give the animation goroutine time to notice.
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("spinner should report cancellation after context cancel")
	}
}

func TestSpinnerStopsOnContextTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := newSpinnerWithContext(ctx, "rendering figures")
	s.Start()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("spinner should report cancellation after context timeout")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner("writing outputs")
	s.Start()

	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithResult(t *testing.T) {
	s := newSpinner("building")
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.StopWithSuccess("document written")

	s = newSpinner("building")
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.StopWithError("build failed")
}
