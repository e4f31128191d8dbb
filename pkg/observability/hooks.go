// Package observability provides hooks for instrumenting engine operations.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about tree builds, cycle-guard checks, diffs,
// and store mutations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces per event category
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, which keeps the engine
// packages free of observability imports and avoids import cycles.
//
// # Usage
//
//	func main() {
//	    observability.SetEngineHooks(&myEngineHooks{})
//	    // ... run application
//	}
//
// Callers emit events around engine calls:
//
//	start := time.Now()
//	t, err := tree.Build(records, limits)
//	observability.Engine().OnBuild(ctx, bomID, len(records), time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// EngineHooks receives events from engine operations.
type EngineHooks interface {
	// OnBuild records a tree build over one BOM's records.
	OnBuild(ctx context.Context, bomID string, records int, duration time.Duration, err error)

	// OnGuardCheck records a cycle-guard decision.
	OnGuardCheck(ctx context.Context, ownerProductID, componentProductID string, allowed bool, duration time.Duration)

	// OnDiff records a version diff.
	OnDiff(ctx context.Context, differences int, duration time.Duration, err error)
}

// StoreHooks receives events from node-store mutations.
type StoreHooks interface {
	// OnMutation records an attach, update, or deactivate.
	// conflict is true when the mutation lost an optimistic-concurrency race.
	OnMutation(ctx context.Context, op, bomID string, conflict bool, err error)
}

// NoopEngineHooks is a no-op implementation of EngineHooks.
type NoopEngineHooks struct{}

func (NoopEngineHooks) OnBuild(context.Context, string, int, time.Duration, error)        {}
func (NoopEngineHooks) OnGuardCheck(context.Context, string, string, bool, time.Duration) {}
func (NoopEngineHooks) OnDiff(context.Context, int, time.Duration, error)                 {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnMutation(context.Context, string, string, bool, error) {}

var (
	engineHooks EngineHooks = NoopEngineHooks{}
	storeHooks  StoreHooks  = NoopStoreHooks{}
	hooksMu     sync.RWMutex
)

// SetEngineHooks registers custom engine hooks.
// This should be called once at application startup.
func SetEngineHooks(h EngineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		engineHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
// This should be called once at application startup.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// Engine returns the registered engine hooks.
func Engine() EngineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return engineHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}
