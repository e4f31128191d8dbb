package observability

import (
	"context"
	"testing"
	"time"
)

type recordingEngineHooks struct {
	NoopEngineHooks
	builds int
}

func (h *recordingEngineHooks) OnBuild(context.Context, string, int, time.Duration, error) {
	h.builds++
}

type recordingStoreHooks struct {
	mutations []string
}

func (h *recordingStoreHooks) OnMutation(_ context.Context, op, _ string, _ bool, _ error) {
	h.mutations = append(h.mutations, op)
}

func TestDefaultHooksAreNoop(t *testing.T) {
	// Must not panic.
	Engine().OnBuild(context.Background(), "bom-1", 10, time.Millisecond, nil)
	Engine().OnGuardCheck(context.Background(), "BIKE", "FRAME", true, 0)
	Engine().OnDiff(context.Background(), 0, 0, nil)
	Store().OnMutation(context.Background(), "attach", "bom-1", false, nil)
}

func TestSetEngineHooks(t *testing.T) {
	defer SetEngineHooks(NoopEngineHooks{})

	h := &recordingEngineHooks{}
	SetEngineHooks(h)

	Engine().OnBuild(context.Background(), "bom-1", 10, time.Millisecond, nil)
	Engine().OnBuild(context.Background(), "bom-1", 10, time.Millisecond, nil)
	if h.builds != 2 {
		t.Errorf("builds = %d, want 2", h.builds)
	}

	// Nil registration is ignored.
	SetEngineHooks(nil)
	Engine().OnBuild(context.Background(), "bom-1", 10, time.Millisecond, nil)
	if h.builds != 3 {
		t.Errorf("builds = %d, want 3 after nil registration", h.builds)
	}
}

func TestSetStoreHooks(t *testing.T) {
	defer SetStoreHooks(NoopStoreHooks{})

	h := &recordingStoreHooks{}
	SetStoreHooks(h)

	Store().OnMutation(context.Background(), "attach", "bom-1", false, nil)
	Store().OnMutation(context.Background(), "deactivate", "bom-1", true, nil)

	if len(h.mutations) != 2 || h.mutations[0] != "attach" || h.mutations[1] != "deactivate" {
		t.Errorf("mutations = %v", h.mutations)
	}
}
