package core

// TMC260 driver register model and motion primitives.
//
// The chip's five configuration registers are write-only: a successful SPI
// transaction is assumed to have configured the device, and the last value
// sent is cached here so later rewrites (status readout select) can reuse
// it. A silently dropped write is undetectable; the only recovery is a full
// reinitialization.

import "errors"

// ErrInvalidField is returned when a boolean-like register field is given a
// value outside {0,1}. Nothing is transmitted and the cache is unchanged.
var ErrInvalidField = errors.New("tmc260: register field out of range")

// StatusKind selects which interpretation of the response data lanes the
// chip reports. It maps directly onto the DRVCONF RDSEL field.
type StatusKind uint8

const (
	StatusPosition             StatusKind = 0 // Microstep position counter
	StatusStallGuard           StatusKind = 1 // StallGuard2 level
	StatusStallGuardAndCurrent StatusKind = 2 // StallGuard2 plus current scale
)

// Status is one decoded response. Fields outside the requested kind's scope
// are zero, not absent; callers must dispatch on Kind rather than probing
// for non-zero values. The flag bits are valid for every kind.
type Status struct {
	Kind StatusKind

	Position     uint16 // Kind == StatusPosition
	StallGuard   uint16 // Kind == StatusStallGuard or StatusStallGuardAndCurrent
	CurrentScale uint8  // Kind == StatusStallGuardAndCurrent

	StatusByte uint8 // Raw low byte of the response

	Standstill bool
	OpenLoadB  bool
	OpenLoadA  bool
	ShortB     bool
	ShortA     bool
	OvertempW  bool
	Overtemp   bool
	StallFlag  bool
}

// TMC260Pins is the wiring of the driver chip's discrete lines. The enable
// line is optional; some board revisions strap it in hardware.
type TMC260Pins struct {
	Enable    GPIOPin
	HasEnable bool
	Dir       GPIOPin
	Step      GPIOPin
}

// TMC260 models one driver chip behind a Bus.
type TMC260 struct {
	Bus  *Bus
	GPIO GPIODriver
	Pins TMC260Pins

	// Cached last-written register values (write-only on the device)
	drvctrl  uint32
	chopconf uint32
	smarten  uint32
	sgcsconf uint32
	drvconf  uint32

	stepLevel bool
}

// NewTMC260 wires a driver model to its bus and discrete lines.
func NewTMC260(bus *Bus, gpio GPIODriver, pins TMC260Pins) *TMC260 {
	return &TMC260{Bus: bus, GPIO: gpio, Pins: pins}
}

// Initialize configures the discrete lines and writes the known default
// register set. Mirrors the power-on bring-up sequence of the board.
func (d *TMC260) Initialize() error {
	if d.Pins.HasEnable {
		if err := d.GPIO.ConfigureOutput(d.Pins.Enable); err != nil {
			return err
		}
	}
	if err := d.GPIO.ConfigureOutput(d.Pins.Dir); err != nil {
		return err
	}
	if err := d.GPIO.ConfigureOutput(d.Pins.Step); err != nil {
		return err
	}
	if err := d.GPIO.ConfigureOutput(d.Bus.CSPin); err != nil {
		return err
	}
	// Select line idles high
	if err := d.GPIO.SetPin(d.Bus.CSPin, true); err != nil {
		return err
	}
	return d.InitDefaults()
}

// InitDefaults writes the working register set: step/dir interface, 64
// microsteps, both-edge stepping, spreadCycle chopper, coolStep off, low
// run current.
func (d *TMC260) InitDefaults() error {
	if err := d.SetDrvConf(0, 0, 0, 0, 0, 0, 0, 0); err != nil {
		return err
	}
	// No step interpolation, step on both edges
	if err := d.SetDrvCtrlStepDir(0, 1, MICROSTEP_CONFIG_64); err != nil {
		return err
	}
	if err := d.SetChopConf(0, 1, 0, 0, 0, 4, 4); err != nil {
		return err
	}
	if err := d.SetSmartEn(0, 0, 2, 0, 0); err != nil {
		return err
	}
	return d.SetSGCSConf(1, 0x3F, 0x05)
}

// SendDatasheetDefaults writes the raw register set from the vendor's
// getting-started note. Kept for bench bring-up.
func (d *TMC260) SendDatasheetDefaults() error {
	for _, v := range [...]uint32{0x00000, 0x90131, 0xA0000, 0xD0505, 0xEF440} {
		if err := d.Bus.Write(PackDatagram(v)); err != nil {
			return err
		}
	}
	return nil
}

func (d *TMC260) writeRegister(regval uint32, cache *uint32) error {
	if err := d.Bus.Write(PackDatagram(regval)); err != nil {
		return err
	}
	// Cache only after the transmission went out. Success of the write on
	// the device side cannot be confirmed.
	*cache = regval
	return nil
}

// SetDrvCtrlStepDir writes DRVCTRL in step/direction mode.
// intpol and dedge must be 0 or 1; mres is a MICROSTEP_CONFIG code.
func (d *TMC260) SetDrvCtrlStepDir(intpol, dedge, mres uint8) error {
	if intpol > 1 || dedge > 1 {
		return ErrInvalidField
	}
	regval := uint32(TMC260_DRVCTRL_SDON_BASE)
	regval |= (uint32(intpol) << TMC260_DRVCTRL_SDON_INTPOL_SHIFT) & TMC260_DRVCTRL_SDON_INTPOL_MASK
	regval |= (uint32(dedge) << TMC260_DRVCTRL_SDON_DEDGE_SHIFT) & TMC260_DRVCTRL_SDON_DEDGE_MASK
	regval |= (uint32(mres) << TMC260_DRVCTRL_SDON_MRES_SHIFT) & TMC260_DRVCTRL_SDON_MRES_MASK
	return d.writeRegister(regval, &d.drvctrl)
}

// SetDrvCtrlPhase writes DRVCTRL in direct phase mode (SDOFF=1): explicit
// coil polarities and current magnitudes instead of step/dir.
func (d *TMC260) SetDrvCtrlPhase(phADir, phACur, phBDir, phBCur uint8) error {
	if phADir > 1 || phBDir > 1 {
		return ErrInvalidField
	}
	regval := uint32(TMC260_DRVCTRL_SDOFF_BASE)
	regval |= (uint32(phADir) << TMC260_DRVCTRL_SDOFF_PHA_DIR_SHIFT) & TMC260_DRVCTRL_SDOFF_PHA_DIR_MASK
	regval |= (uint32(phACur) << TMC260_DRVCTRL_SDOFF_PHA_CUR_SHIFT) & TMC260_DRVCTRL_SDOFF_PHA_CUR_MASK
	regval |= (uint32(phBDir) << TMC260_DRVCTRL_SDOFF_PHB_DIR_SHIFT) & TMC260_DRVCTRL_SDOFF_PHB_DIR_MASK
	regval |= (uint32(phBCur) << TMC260_DRVCTRL_SDOFF_PHB_CUR_SHIFT) & TMC260_DRVCTRL_SDOFF_PHB_CUR_MASK
	return d.writeRegister(regval, &d.drvctrl)
}

// SetChopConf writes the chopper configuration. Fields beyond their bit
// width are truncated by masking, matching the device's own tolerance.
func (d *TMC260) SetChopConf(tbl, chm, rndtf, hdec, hend, hstrt, toff uint8) error {
	regval := uint32(TMC260_CHOPCONF_BASE)
	regval |= (uint32(tbl) << TMC260_CHOPCONF_TBL_SHIFT) & TMC260_CHOPCONF_TBL_MASK
	regval |= (uint32(chm) << TMC260_CHOPCONF_CHM_SHIFT) & TMC260_CHOPCONF_CHM_MASK
	regval |= (uint32(rndtf) << TMC260_CHOPCONF_RNDTF_SHIFT) & TMC260_CHOPCONF_RNDTF_MASK
	regval |= (uint32(hdec) << TMC260_CHOPCONF_HDEC_SHIFT) & TMC260_CHOPCONF_HDEC_MASK
	regval |= (uint32(hend) << TMC260_CHOPCONF_HEND_SHIFT) & TMC260_CHOPCONF_HEND_MASK
	regval |= (uint32(hstrt) << TMC260_CHOPCONF_HSTRT_SHIFT) & TMC260_CHOPCONF_HSTRT_MASK
	regval |= (uint32(toff) << TMC260_CHOPCONF_TOFF_SHIFT) & TMC260_CHOPCONF_TOFF_MASK
	return d.writeRegister(regval, &d.chopconf)
}

// SetSmartEn writes the coolStep smart energy control register.
func (d *TMC260) SetSmartEn(seimin, sedn, semax, seup, semin uint8) error {
	regval := uint32(TMC260_SMARTEN_BASE)
	regval |= (uint32(seimin) << TMC260_SMARTEN_SEIMIN_SHIFT) & TMC260_SMARTEN_SEIMIN_MASK
	regval |= (uint32(sedn) << TMC260_SMARTEN_SEDN_SHIFT) & TMC260_SMARTEN_SEDN_MASK
	regval |= (uint32(semax) << TMC260_SMARTEN_SEMAX_SHIFT) & TMC260_SMARTEN_SEMAX_MASK
	regval |= (uint32(seup) << TMC260_SMARTEN_SEUP_SHIFT) & TMC260_SMARTEN_SEUP_MASK
	regval |= (uint32(semin) << TMC260_SMARTEN_SEMIN_SHIFT) & TMC260_SMARTEN_SEMIN_MASK
	return d.writeRegister(regval, &d.smarten)
}

// SetSGCSConf writes the stallGuard2 threshold and current scale register.
func (d *TMC260) SetSGCSConf(sfilt, sgt, cs uint8) error {
	regval := uint32(TMC260_SGCSCONF_BASE)
	regval |= (uint32(sfilt) << TMC260_SGCSCONF_SFILT_SHIFT) & TMC260_SGCSCONF_SFILT_MASK
	regval |= (uint32(sgt) << TMC260_SGCSCONF_SGT_SHIFT) & TMC260_SGCSCONF_SGT_MASK
	regval |= (uint32(cs) << TMC260_SGCSCONF_CS_SHIFT) & TMC260_SGCSCONF_CS_MASK
	return d.writeRegister(regval, &d.sgcsconf)
}

// SetDrvConf writes the driver configuration register. rdsel selects the
// status readout and must be 0-2; 3 is invalid per the datasheet.
func (d *TMC260) SetDrvConf(tst, slph, slpl, diss2g, ts2g, sdoff, vsense, rdsel uint8) error {
	regval := uint32(TMC260_DRVCONF_BASE)
	regval |= (uint32(tst) << TMC260_DRVCONF_TST_SHIFT) & TMC260_DRVCONF_TST_MASK
	regval |= (uint32(slph) << TMC260_DRVCONF_SLPH_SHIFT) & TMC260_DRVCONF_SLPH_MASK
	regval |= (uint32(slpl) << TMC260_DRVCONF_SLPL_SHIFT) & TMC260_DRVCONF_SLPL_MASK
	regval |= (uint32(diss2g) << TMC260_DRVCONF_DISS2G_SHIFT) & TMC260_DRVCONF_DISS2G_MASK
	regval |= (uint32(ts2g) << TMC260_DRVCONF_TS2G_SHIFT) & TMC260_DRVCONF_TS2G_MASK
	regval |= (uint32(sdoff) << TMC260_DRVCONF_SDOFF_SHIFT) & TMC260_DRVCONF_SDOFF_MASK
	regval |= (uint32(vsense) << TMC260_DRVCONF_VSENSE_SHIFT) & TMC260_DRVCONF_VSENSE_MASK
	regval |= (uint32(rdsel) << TMC260_DRVCONF_RDSEL_SHIFT) & TMC260_DRVCONF_RDSEL_MASK
	return d.writeRegister(regval, &d.drvconf)
}

// ReadStatus performs the two-phase status read. The device reports the
// readout selected by the previous transaction, so DRVCONF is written once
// to select the kind and once more to collect the now-valid echo.
func (d *TMC260) ReadStatus(kind StatusKind) (Status, error) {
	st := Status{Kind: kind}

	if d.drvconf == 0 {
		// Never configured: poll using the read-only safe base.
		d.drvconf = TMC260_DRVCONF_READONLY
	}

	d.drvconf &^= uint32(TMC260_DRVCONF_RDSEL_MASK)
	d.drvconf |= (uint32(kind) << TMC260_DRVCONF_RDSEL_SHIFT) & TMC260_DRVCONF_RDSEL_MASK

	if err := d.Bus.Write(PackDatagram(d.drvconf)); err != nil {
		return st, err
	}
	rx, err := d.Bus.Exchange(PackDatagram(d.drvconf))
	if err != nil {
		return st, err
	}
	rd := UnpackResponse(rx)

	st.StatusByte = uint8(rd & 0xFF)
	st.StallFlag = rd&TMC260_STATUS_SG_MASK != 0
	st.Overtemp = rd&TMC260_STATUS_OT_MASK != 0
	st.OvertempW = rd&TMC260_STATUS_OTPW_MASK != 0
	st.ShortA = rd&TMC260_STATUS_S2GA_MASK != 0
	st.ShortB = rd&TMC260_STATUS_S2GB_MASK != 0
	st.OpenLoadA = rd&TMC260_STATUS_OLA_MASK != 0
	st.OpenLoadB = rd&TMC260_STATUS_OLB_MASK != 0
	st.Standstill = rd&TMC260_STATUS_STST_MASK != 0

	switch kind {
	case StatusPosition:
		st.Position = uint16((rd & TMC260_STATUS_MSTEP_MASK) >> TMC260_STATUS_MSTEP_SHIFT)
	case StatusStallGuard:
		st.StallGuard = uint16((rd & TMC260_STATUS_STALLGUARD_MASK) >> TMC260_STATUS_STALLGUARD_SHIFT)
	case StatusStallGuardAndCurrent:
		st.StallGuard = uint16((rd & TMC260_STATUS_CUR_SG_MASK) >> TMC260_STATUS_CUR_SG_SHIFT)
		st.CurrentScale = uint8((rd & TMC260_STATUS_CUR_SE_MASK) >> TMC260_STATUS_CUR_SE_SHIFT)
	}

	return st, nil
}

// Enable drives the chip's enable line active (low).
func (d *TMC260) Enable() {
	if d.Pins.HasEnable {
		_ = d.GPIO.SetPin(d.Pins.Enable, false)
	}
}

// Disable drives the chip's enable line inactive (high). The motor
// freewheels with no holding torque.
func (d *TMC260) Disable() {
	if d.Pins.HasEnable {
		_ = d.GPIO.SetPin(d.Pins.Enable, true)
	}
}

// DirClockwise selects clockwise travel. The level mapping is fixed by the
// board wiring: DIR low is clockwise looking in on the pinion.
func (d *TMC260) DirClockwise() {
	_ = d.GPIO.SetPin(d.Pins.Dir, false)
}

// DirCounterClockwise selects counter-clockwise travel (DIR high).
func (d *TMC260) DirCounterClockwise() {
	_ = d.GPIO.SetPin(d.Pins.Dir, true)
}

// Step toggles the step line once. With DEDGE set the chip steps on both
// edges, so every toggle is one microstep; if the chip were configured for
// rising-edge stepping instead, this would silently halve the step rate.
func (d *TMC260) Step() {
	d.stepLevel = !d.stepLevel
	_ = d.GPIO.SetPin(d.Pins.Step, d.stepLevel)
}

// RegValues reports the cached register values (for tests and diagnostics).
func (d *TMC260) RegValues() (drvctrl, chopconf, smarten, sgcsconf, drvconf uint32) {
	return d.drvctrl, d.chopconf, d.smarten, d.sgcsconf, d.drvconf
}
