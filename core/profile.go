package core

// Motion configuration constants and the tilt velocity profile.
//
// Gear ratio, step frequencies, safety bounds and the guard constants in
// bus.go are board tuning carried over from bring-up. They are compile-time
// constants, not runtime configuration.

const (
	// TwoPi as used in all angle math
	TwoPi = 6.2832

	// Drive train: motor steps per revolution times configured microstep
	// resolution (200 full steps, 64 microsteps)
	MicrostepsPerRev = 12800

	// Pinion-to-platform gear ratio: the motor turns GearRatioNum times
	// per GearRatioDen platform revolutions
	GearRatioNum = 3.0
	GearRatioDen = 1.0

	// Step rates for the fixed-rate motion states
	DefaultStepFreqHz = 1000
	HomeStepFreqHz    = 400

	// Fixed-rate supervisory tick
	StateMachineHz = 1000

	// Angular travel limits, radians from home. Not exact mechanical
	// stops; protection against runaway after lost steps.
	UpperBoundRad = 3.5
	LowerBoundRad = -0.5

	// Angle the mechanism subtends between the two home-flag transitions,
	// used to re-anchor position when the flag is crossed away from home
	HomeFarAngleRad = 3.14

	// Supervisory ticks between telemetry status reads
	StatusReportDecimation = 25

	// Tick budgets for the bench-test states and the post-home delay
	TestStateTickBudget = 80000
	TestDelayTickBudget = 200
)

// Profile shaping parameters. The sweep accelerates over the first
// profileRampSteps entries, cruises, and decelerates over the last
// profileRampSteps entries; a zero entry terminates the sweep.
const (
	profileSteps     = 4096
	profileRampSteps = 512
	profileSlowHz    = 400
	profileFastHz    = 2400
)

// TiltProfile is the per-microstep step timer reload sequence for one
// sweep. Index advances one entry per step pulse while profile playback is
// active; the trailing zero entry ends the sweep.
var TiltProfile = buildTiltProfile()

func buildTiltProfile() []uint32 {
	p := make([]uint32, profileSteps+1)
	for i := 0; i < profileSteps; i++ {
		hz := uint32(profileFastHz)
		switch {
		case i < profileRampSteps:
			hz = profileSlowHz + uint32(i)*(profileFastHz-profileSlowHz)/profileRampSteps
		case i >= profileSteps-profileRampSteps:
			hz = profileSlowHz + uint32(profileSteps-1-i)*(profileFastHz-profileSlowHz)/profileRampSteps
		}
		p[i] = StepReloadForHz(hz)
	}
	p[profileSteps] = 0 // sweep terminator
	return p
}
