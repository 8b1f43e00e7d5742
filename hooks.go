package rostermerge

import (
	"sync"

	"github.com/agentstation/rostermerge/pkg/reconciler"
)

// Hook function types for run events
type (
	// WarningHook is called once per non-fatal issue of a run, such as a
	// sheet skipped for lack of identity columns
	WarningHook func(warning string)

	// ResultHook is called when a run completes successfully
	ResultHook func(result *reconciler.Result)
)

// hooks manages event callbacks for runs
type hooks struct {
	mu        sync.RWMutex
	onWarning []WarningHook
	onResult  []ResultHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnWarning registers a callback for run warnings
func (rm *rostermerge) OnWarning(fn WarningHook) {
	rm.hooks.mu.Lock()
	defer rm.hooks.mu.Unlock()
	rm.hooks.onWarning = append(rm.hooks.onWarning, fn)
}

// OnResult registers a callback for completed runs
func (rm *rostermerge) OnResult(fn ResultHook) {
	rm.hooks.mu.Lock()
	defer rm.hooks.mu.Unlock()
	rm.hooks.onResult = append(rm.hooks.onResult, fn)
}

// trigger calls warning hooks for each warning, then result hooks.
func (h *hooks) trigger(result *reconciler.Result) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, w := range result.Warnings {
		for _, hook := range h.onWarning {
			hook(w)
		}
	}
	for _, hook := range h.onResult {
		hook(result)
	}
}
