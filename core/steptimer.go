package core

// SystemCoreClockHz is the core clock the step timer reload math is scaled
// to. The step timer peripheral counts at half the core clock.
const SystemCoreClockHz = 168000000

// StepTimer is the reprogrammable periodic timer that paces step pulses.
// SetReload takes effect on the next period; the expiry callback is bound
// by the target shim to Controller.StepTimerTick.
type StepTimer interface {
	// SetReload programs the timer period in timer ticks
	SetReload(ticks uint32)

	// Enable starts (or resumes) the timer
	Enable()

	// Disable stops the timer without clearing its reload value
	Disable()
}

// StepReloadForHz converts a step frequency into a timer reload value.
// Assumes the half-core-clock count rate; one expiry is one step pulse.
func StepReloadForHz(hz uint32) uint32 {
	return SystemCoreClockHz/(hz*2) - 1
}
