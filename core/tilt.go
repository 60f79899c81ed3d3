package core

// Tilt state machine for the rotating sensor head.
//
// Handles step timing, the home flag sensor, and the supervisory state
// machine. Register-level motor control lives in tmc260.go.
//
// Three interrupt-equivalent entry points exist: Tick (fixed-rate
// supervisory timer), StepTimerTick (reprogrammable step timer) and
// HomeEdge/StallEdge (pin edges). On hardware the step timer and edge
// sources preempt the tick; every handler runs to completion, and all
// mutation of shared position state happens inside these handlers, so no
// locking is used beyond that priority ordering.

// Direction is the current travel direction of the tilt head.
type Direction uint8

const (
	DirStopped Direction = iota
	DirClockwise
	DirCounterClockwise
)

// State enumerates the supervisory states.
type State uint8

const (
	StateInitialize State = iota
	StateHome
	StateTestDelay
	StateTiltTable
	StateTestClockwise
	StateTestCounterClockwise
	StateError
)

func (s State) String() string {
	switch s {
	case StateInitialize:
		return "initialize"
	case StateHome:
		return "home"
	case StateTestDelay:
		return "test-delay"
	case StateTiltTable:
		return "tilt-table"
	case StateTestClockwise:
		return "test-cw"
	case StateTestCounterClockwise:
		return "test-ccw"
	case StateError:
		return "error"
	}
	return "unknown"
}

// ControllerConfig carries the wiring and collaborators of a Controller.
type ControllerConfig struct {
	HomePin  GPIOPin
	StallPin GPIOPin

	// Profile overrides TiltProfile when non-nil (tests)
	Profile []uint32

	Reporter Reporter
	LEDs     *DebugLEDs
}

// Controller owns all mutable tilt state. It is driven entirely by its
// event methods; nothing here spawns goroutines or blocks.
type Controller struct {
	drv   *TMC260
	timer StepTimer
	gpio  GPIODriver
	cfg   ControllerConfig

	profile []uint32

	state      State
	stateTicks uint32

	// lastDir records which way the previous sweep went so TiltTable can
	// alternate. Set on the home transition so the first sweep direction
	// is deterministic.
	lastDir bool

	dir           Direction
	stepsFromHome int32
	angleRad      float32
	profileIndex  uint32

	stallEvents uint32
}

// NewController wires a controller. The zero state is Initialize; the
// first Tick brings up the driver chip.
func NewController(drv *TMC260, timer StepTimer, gpio GPIODriver, cfg ControllerConfig) *Controller {
	profile := cfg.Profile
	if profile == nil {
		profile = TiltProfile
	}
	return &Controller{
		drv:     drv,
		timer:   timer,
		gpio:    gpio,
		cfg:     cfg,
		profile: profile,
		state:   StateInitialize,
	}
}

// InitSensors configures the home and stall-guard inputs. Edge-interrupt
// registration for both pins is the target shim's job.
func (c *Controller) InitSensors() error {
	if err := c.gpio.ConfigureInputPullUp(c.cfg.HomePin); err != nil {
		return err
	}
	return c.gpio.ConfigureInputPullUp(c.cfg.StallPin)
}

// State reports the current supervisory state.
func (c *Controller) State() State { return c.state }

// Direction reports the current travel direction.
func (c *Controller) Direction() Direction { return c.dir }

// StepsFromHome reports the tracked signed microstep count.
func (c *Controller) StepsFromHome() int32 { return c.stepsFromHome }

// Angle reports the tracked angle in radians.
func (c *Controller) Angle() float32 { return c.angleRad }

// Position returns a consistent (steps, angle) pair. Reads cross interrupt
// priority boundaries, so the pair is captured under the interrupt guard.
func (c *Controller) Position() (int32, float32) {
	st := disableInterrupts()
	steps, angle := c.stepsFromHome, c.angleRad
	restoreInterrupts(st)
	return steps, angle
}

// StallEvents reports how many stall-guard edges have fired.
func (c *Controller) StallEvents() uint32 { return c.stallEvents }

func (c *Controller) setState(s State) {
	c.stateTicks = 0
	c.state = s
}

func (c *Controller) setCW() {
	c.dir = DirClockwise
	c.drv.DirClockwise()
}

func (c *Controller) setCCW() {
	c.dir = DirCounterClockwise
	c.drv.DirCounterClockwise()
}

// step issues one microstep and updates the tracked position. Angle is
// recomputed from the step count every time; the two only diverge at the
// home re-anchor.
func (c *Controller) step() {
	switch c.dir {
	case DirClockwise:
		c.stepsFromHome++
	case DirCounterClockwise:
		c.stepsFromHome--
	}
	c.angleRad = angleForSteps(c.stepsFromHome)
	c.drv.Enable()
	c.drv.Step()
}

func angleForSteps(steps int32) float32 {
	return (float32(steps) / float32(MicrostepsPerRev)) * (GearRatioDen / GearRatioNum) * TwoPi
}

// stepsForAngle is the inverse of angleForSteps, used by home reconciliation.
func stepsForAngle(rad float32) int32 {
	return int32((rad * float32(MicrostepsPerRev) * GearRatioNum) / (GearRatioDen * TwoPi))
}

// reportStatus performs one driver status read and hands the decoded result
// to the uplink. Errors are surfaced on the debug channel only; telemetry
// is best-effort.
func (c *Controller) reportStatus(kind StatusKind) {
	st, err := c.drv.ReadStatus(kind)
	if err != nil {
		DebugPrintln("tilt: status read failed: " + err.Error())
		return
	}
	if c.cfg.Reporter != nil {
		c.cfg.Reporter.ReportStatus(StatusReport{
			Position:     st.Position,
			StallGuard:   st.StallGuard,
			CurrentScale: st.CurrentScale,
			StatusByte:   st.StatusByte,
			AngleRad:     c.angleRad,
		})
	}
}

// Tick is the fixed-rate supervisory handler. Bound by the target shim to
// the state machine timer interrupt.
func (c *Controller) Tick() {
	c.cfg.LEDs.Toggle(LEDBlue)

	c.stateTicks++

	if c.stateTicks%StatusReportDecimation == 0 {
		c.reportStatus(StatusStallGuardAndCurrent)
	}

	// Not perfect, but at least some protection from overrotation.
	if c.state != StateHome && c.state != StateInitialize {
		if c.angleRad > UpperBoundRad || c.angleRad < LowerBoundRad {
			c.setState(StateHome)
		}
	}

	switch c.state {
	case StateInitialize:
		if err := c.drv.Initialize(); err != nil {
			DebugPrintln("tilt: driver init failed: " + err.Error())
		}
		c.setState(StateHome)

	case StateHome:
		if c.stateTicks == 1 {
			c.timer.Disable()
			c.timer.SetReload(StepReloadForHz(HomeStepFreqHz))
			c.timer.Enable()

			if c.stepsFromHome == 0 {
				if c.gpio.ReadPin(c.cfg.HomePin) {
					// Flag is uncovered. Go CCW until we cover it.
					c.setCCW()
				} else {
					// Flag is covered. Go CW until we uncover it.
					c.setCW()
				}
			} else {
				if c.angleRad > 0 {
					c.setCCW()
				} else {
					c.setCW()
				}
			}
		}

	case StateTiltTable:
		if c.stateTicks == 1 {
			if c.lastDir {
				c.lastDir = false
				c.setCW()
			} else {
				c.lastDir = true
				c.setCCW()
			}
			c.profileIndex = 0
			c.timer.SetReload(c.profile[0])
		}

	case StateTestClockwise:
		if c.stateTicks == 1 {
			c.timer.SetReload(StepReloadForHz(DefaultStepFreqHz))
			c.setCW()
		}
		if c.stateTicks > TestStateTickBudget {
			c.drv.Disable()
			c.setState(StateTestCounterClockwise)
		}

	case StateTestCounterClockwise:
		if c.stateTicks == 1 {
			c.timer.SetReload(StepReloadForHz(DefaultStepFreqHz))
			c.setCCW()
		}
		if c.stateTicks > TestStateTickBudget {
			c.drv.Disable()
			c.setState(StateTestClockwise)
		}

	case StateTestDelay:
		if c.stateTicks == 1 {
			c.reportStatus(StatusPosition)
		}
		if c.stateTicks > TestDelayTickBudget {
			c.setState(StateTiltTable)
		}

	case StateError:
		// Absorbing; no transition defined.
	}
}

// StepTimerTick is the step timer expiry handler. Pure dispatch on state;
// never blocks.
func (c *Controller) StepTimerTick() {
	c.cfg.LEDs.Toggle(LEDGreen)

	switch c.state {
	case StateTestClockwise, StateTestCounterClockwise, StateHome:
		c.step()

	case StateTiltTable:
		c.profileIndex++
		if int(c.profileIndex) < len(c.profile) && c.profile[c.profileIndex] > 0 {
			c.step()
			c.timer.SetReload(c.profile[c.profileIndex])
		} else {
			// Sweep exhausted: re-enter TiltTable, which restarts the
			// profile in the opposite direction.
			c.setState(StateTiltTable)
		}
	}
}

// HomeEdge is the home flag edge handler, fired on both transitions. The
// same electrical edge means opposite things depending on travel
// direction, so the flag level and current direction together decide
// whether home was just crossed or the far transition was seen.
func (c *Controller) HomeEdge() {
	if c.gpio.ReadPin(c.cfg.HomePin) {
		if c.dir == DirClockwise {
			// Just crossed home.
			c.angleRad = 0
			c.stepsFromHome = 0
			c.cfg.LEDs.Set(LEDRed)
		} else {
			// Far transition: re-anchor to the known offset.
			c.angleRad = HomeFarAngleRad
			c.stepsFromHome = stepsForAngle(HomeFarAngleRad)
			c.cfg.LEDs.Clear(LEDRed)
		}
	} else {
		if c.dir == DirClockwise {
			c.angleRad = HomeFarAngleRad
			c.stepsFromHome = stepsForAngle(HomeFarAngleRad)
			c.cfg.LEDs.Clear(LEDOrange)
		} else {
			c.angleRad = 0
			c.stepsFromHome = 0
			c.cfg.LEDs.Set(LEDOrange)
		}
	}

	if c.stepsFromHome == 0 && c.state == StateHome {
		// Seed the sweep direction, then start tilting.
		c.lastDir = true
		c.setState(StateTestDelay)
	}
}

// StallEdge is the stall-guard edge handler. Intentionally a stub: the
// event is counted and surfaced on the debug LED, but no response policy
// is implemented here. Attach policy externally if needed.
func (c *Controller) StallEdge() {
	c.stallEvents++
	c.cfg.LEDs.Toggle(LEDRed)
}
