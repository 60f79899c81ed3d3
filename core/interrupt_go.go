//go:build !tinygo

package core

// intrState is a placeholder for interrupt state on regular Go
type intrState uintptr

// disableInterrupts is a no-op on regular Go (for testing)
func disableInterrupts() intrState {
	return 0
}

// restoreInterrupts is a no-op on regular Go (for testing)
func restoreInterrupts(state intrState) {
	// No-op
}
