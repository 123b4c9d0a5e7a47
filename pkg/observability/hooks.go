// Package observability provides hooks for metrics and tracing.
//
// The tooltip core and the HTTP API report lifecycle events through small hook
// interfaces instead of importing a metrics backend. The defaults are no-ops;
// main registers a real implementation (see internal/metrics) at startup.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetTooltipHooks(collector)
//	    observability.SetHTTPHooks(collector)
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Tooltip().OnOpen(name, triggerID)
//	observability.Tooltip().OnPlace(name, "left")
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Tooltip Hooks
// =============================================================================

// TooltipHooks receives events from tooltip controllers.
// Controllers run on a single UI thread, so no context is passed.
type TooltipHooks interface {
	// OnBind records a controller bound to its triggers.
	OnBind(name string, triggers int)

	// OnOpen records a tooltip opened from the given trigger.
	OnOpen(name, trigger string)

	// OnClose records a tooltip closing.
	OnClose(name string)

	// OnPlace records a placement; clamp is "none", "left", "right" or "both".
	OnPlace(name, clamp string)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP API.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, route string)

	// OnResponse records a completed response.
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopTooltipHooks is a no-op implementation of TooltipHooks.
type NoopTooltipHooks struct{}

func (NoopTooltipHooks) OnBind(string, int)     {}
func (NoopTooltipHooks) OnOpen(string, string)  {}
func (NoopTooltipHooks) OnClose(string)         {}
func (NoopTooltipHooks) OnPlace(string, string) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	tooltipHooks TooltipHooks = NoopTooltipHooks{}
	httpHooks    HTTPHooks    = NoopHTTPHooks{}
	hooksMu      sync.RWMutex
)

// SetTooltipHooks registers custom tooltip hooks.
// This should be called once at application startup before any page is bound.
func SetTooltipHooks(h TooltipHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		tooltipHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before serving.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Tooltip returns the registered tooltip hooks.
func Tooltip() TooltipHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return tooltipHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	tooltipHooks = NoopTooltipHooks{}
	httpHooks = NoopHTTPHooks{}
}
