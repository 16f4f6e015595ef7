package mdallog

import (
	"testing"

	"github.com/mdal-go/mdal/internal/mdalerr"
)

type recordingSink struct {
	calls []string
}

func (r *recordingSink) Log(severity mdalerr.Severity, tag, message string) {
	r.calls = append(r.calls, tag+":"+message)
}

func TestSetSinkOnlyAppliesOnce(t *testing.T) {
	// Reset package state for this test's own sink install.
	mu.Lock()
	sink = nopSink{}
	set = false
	mu.Unlock()

	first := &recordingSink{}
	second := &recordingSink{}
	SetSink(first)
	SetSink(second)

	Errorf("selafin", "boom %d", 1)

	if len(first.calls) != 1 {
		t.Fatalf("expected the first sink to receive the call, got %v", first.calls)
	}
	if len(second.calls) != 0 {
		t.Fatalf("expected SetSink to be a no-op the second time, got %v", second.calls)
	}
}
