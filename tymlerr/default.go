package tymlerr

import "sync"

// defaultOnce guards the lazy first-touch initialisation of
// defaultHandler to PanicHandler{}; SetDefaultHandler also consumes it
// so a Set that happens before the first DefaultHandler() call isn't
// clobbered by the lazy default.
var (
	defaultOnce    sync.Once
	defaultHandler Handler
	defaultMu      sync.RWMutex
)

func initDefault() {
	defaultOnce.Do(func() {
		defaultMu.Lock()
		defaultHandler = PanicHandler{}
		defaultMu.Unlock()
	})
}

// DefaultHandler returns the package-wide Handler (spec.md §6.4's
// "initialized on first use, replaceable, resettable" lifecycle). It is
// PanicHandler{} until SetDefaultHandler changes it. The tree, parse,
// resolve and emit packages do not consult it: without a handler option
// they use PanicHandler{} directly.
func DefaultHandler() Handler {
	initDefault()
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultHandler
}

// SetDefaultHandler replaces the package-wide default Handler.
func SetDefaultHandler(h Handler) {
	defaultOnce.Do(func() {}) // a Set before the first Get must win
	defaultMu.Lock()
	defaultHandler = h
	defaultMu.Unlock()
}

// ResetDefaultHandler restores the package-wide default Handler to
// PanicHandler{}.
func ResetDefaultHandler() {
	defaultMu.Lock()
	defaultHandler = PanicHandler{}
	defaultMu.Unlock()
}
