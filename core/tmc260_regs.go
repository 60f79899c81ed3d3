package core

// TMC260 Register Definitions
// Based on TMC260/TMC261 datasheet Rev. 2.05
// Trinamic Motion Control GmbH & Co. KG
//
// The TMC260 has no register addresses in the usual sense. Each 20-bit
// datagram carries its register selector in the top bits, so every register
// here is expressed as a base template that already contains the selector
// bits, OR-ed with shifted and masked field values.

// Register base templates (selector bits pre-set, all fields zero)
const (
	TMC260_DRVCTRL_SDON_BASE  = 0x00000 // DRVCTRL, step/direction mode (SDOFF=0)
	TMC260_DRVCTRL_SDOFF_BASE = 0x00000 // DRVCTRL, direct phase mode (SDOFF=1)
	TMC260_CHOPCONF_BASE      = 0x80000 // Chopper configuration
	TMC260_SMARTEN_BASE       = 0xA0000 // CoolStep smart energy control
	TMC260_SGCSCONF_BASE      = 0xC0000 // StallGuard2 threshold and current scale
	TMC260_DRVCONF_BASE       = 0xE0000 // Driver configuration
)

// DRVCTRL fields, step/direction mode (SDOFF=0)
const (
	TMC260_DRVCTRL_SDON_INTPOL_SHIFT = 9 // Step pulse interpolation (16x)
	TMC260_DRVCTRL_SDON_INTPOL_MASK  = 0x00200
	TMC260_DRVCTRL_SDON_DEDGE_SHIFT  = 8 // Step on both edges of STEP
	TMC260_DRVCTRL_SDON_DEDGE_MASK   = 0x00100
	TMC260_DRVCTRL_SDON_MRES_SHIFT   = 0 // Microstep resolution
	TMC260_DRVCTRL_SDON_MRES_MASK    = 0x0000F
)

// DRVCTRL fields, direct phase mode (SDOFF=1)
const (
	TMC260_DRVCTRL_SDOFF_PHA_DIR_SHIFT = 17 // Phase A current polarity
	TMC260_DRVCTRL_SDOFF_PHA_DIR_MASK  = 0x20000
	TMC260_DRVCTRL_SDOFF_PHA_CUR_SHIFT = 9 // Phase A current magnitude
	TMC260_DRVCTRL_SDOFF_PHA_CUR_MASK  = 0x1FE00
	TMC260_DRVCTRL_SDOFF_PHB_DIR_SHIFT = 8 // Phase B current polarity
	TMC260_DRVCTRL_SDOFF_PHB_DIR_MASK  = 0x00100
	TMC260_DRVCTRL_SDOFF_PHB_CUR_SHIFT = 0 // Phase B current magnitude
	TMC260_DRVCTRL_SDOFF_PHB_CUR_MASK  = 0x000FF
)

// CHOPCONF fields
const (
	TMC260_CHOPCONF_TBL_SHIFT   = 15 // Blanking time
	TMC260_CHOPCONF_TBL_MASK    = 0x18000
	TMC260_CHOPCONF_CHM_SHIFT   = 14 // Chopper mode: 0=spreadCycle, 1=constant toff
	TMC260_CHOPCONF_CHM_MASK    = 0x04000
	TMC260_CHOPCONF_RNDTF_SHIFT = 13 // Random toff time
	TMC260_CHOPCONF_RNDTF_MASK  = 0x02000
	TMC260_CHOPCONF_HDEC_SHIFT  = 11 // Hysteresis decrement / fast decay mode
	TMC260_CHOPCONF_HDEC_MASK   = 0x01800
	TMC260_CHOPCONF_HEND_SHIFT  = 7 // Hysteresis end / sine offset
	TMC260_CHOPCONF_HEND_MASK   = 0x00780
	TMC260_CHOPCONF_HSTRT_SHIFT = 4 // Hysteresis start / fast decay time
	TMC260_CHOPCONF_HSTRT_MASK  = 0x00070
	TMC260_CHOPCONF_TOFF_SHIFT  = 0 // Slow decay duration, 0 disables the driver
	TMC260_CHOPCONF_TOFF_MASK   = 0x0000F
)

// SMARTEN fields
const (
	TMC260_SMARTEN_SEIMIN_SHIFT = 15 // Minimum coolStep current
	TMC260_SMARTEN_SEIMIN_MASK  = 0x08000
	TMC260_SMARTEN_SEDN_SHIFT   = 13 // Current decrement speed
	TMC260_SMARTEN_SEDN_MASK    = 0x06000
	TMC260_SMARTEN_SEMAX_SHIFT  = 8 // Upper coolStep threshold
	TMC260_SMARTEN_SEMAX_MASK   = 0x00F00
	TMC260_SMARTEN_SEUP_SHIFT   = 5 // Current increment size
	TMC260_SMARTEN_SEUP_MASK    = 0x00060
	TMC260_SMARTEN_SEMIN_SHIFT  = 0 // Lower coolStep threshold, 0 disables coolStep
	TMC260_SMARTEN_SEMIN_MASK   = 0x0000F
)

// SGCSCONF fields
const (
	TMC260_SGCSCONF_SFILT_SHIFT = 16 // StallGuard2 filter (4 full steps)
	TMC260_SGCSCONF_SFILT_MASK  = 0x10000
	TMC260_SGCSCONF_SGT_SHIFT   = 8 // StallGuard2 threshold (two's complement)
	TMC260_SGCSCONF_SGT_MASK    = 0x07F00
	TMC260_SGCSCONF_CS_SHIFT    = 0 // Current scale
	TMC260_SGCSCONF_CS_MASK     = 0x0001F
)

// DRVCONF fields
const (
	TMC260_DRVCONF_TST_SHIFT    = 16 // Reserved test mode
	TMC260_DRVCONF_TST_MASK     = 0x10000
	TMC260_DRVCONF_SLPH_SHIFT   = 14 // Slope control, high side
	TMC260_DRVCONF_SLPH_MASK    = 0x0C000
	TMC260_DRVCONF_SLPL_SHIFT   = 12 // Slope control, low side
	TMC260_DRVCONF_SLPL_MASK    = 0x03000
	TMC260_DRVCONF_DISS2G_SHIFT = 10 // Disable short-to-ground protection
	TMC260_DRVCONF_DISS2G_MASK  = 0x00400
	TMC260_DRVCONF_TS2G_SHIFT   = 8 // Short-to-ground detection timer
	TMC260_DRVCONF_TS2G_MASK    = 0x00300
	TMC260_DRVCONF_SDOFF_SHIFT  = 7 // Disable the step/direction interface
	TMC260_DRVCONF_SDOFF_MASK   = 0x00080
	TMC260_DRVCONF_VSENSE_SHIFT = 6 // Sense resistor voltage scaling
	TMC260_DRVCONF_VSENSE_MASK  = 0x00040
	TMC260_DRVCONF_RDSEL_SHIFT  = 4 // Status readout select
	TMC260_DRVCONF_RDSEL_MASK   = 0x00030
)

// Response status byte flags, valid for every readout select
const (
	TMC260_STATUS_SG_SHIFT   = 0 // StallGuard2 threshold reached
	TMC260_STATUS_SG_MASK    = 0x00001
	TMC260_STATUS_OT_SHIFT   = 1 // Overtemperature shutdown
	TMC260_STATUS_OT_MASK    = 0x00002
	TMC260_STATUS_OTPW_SHIFT = 2 // Overtemperature pre-warning
	TMC260_STATUS_OTPW_MASK  = 0x00004
	TMC260_STATUS_S2GA_SHIFT = 3 // Short to ground, phase A
	TMC260_STATUS_S2GA_MASK  = 0x00008
	TMC260_STATUS_S2GB_SHIFT = 4 // Short to ground, phase B
	TMC260_STATUS_S2GB_MASK  = 0x00010
	TMC260_STATUS_OLA_SHIFT  = 5 // Open load, phase A
	TMC260_STATUS_OLA_MASK   = 0x00020
	TMC260_STATUS_OLB_SHIFT  = 6 // Open load, phase B
	TMC260_STATUS_OLB_MASK   = 0x00040
	TMC260_STATUS_STST_SHIFT = 7 // Standstill
	TMC260_STATUS_STST_MASK  = 0x00080
)

// Response data lanes, meaning depends on the RDSEL written beforehand
const (
	// RDSEL=0: microstep position counter
	TMC260_STATUS_MSTEP_SHIFT = 10
	TMC260_STATUS_MSTEP_MASK  = 0xFFC00

	// RDSEL=1: stallGuard2 level
	TMC260_STATUS_STALLGUARD_SHIFT = 10
	TMC260_STATUS_STALLGUARD_MASK  = 0xFFC00

	// RDSEL=2: stallGuard2 upper bits plus smart energy current scale
	TMC260_STATUS_CUR_SG_SHIFT = 15
	TMC260_STATUS_CUR_SG_MASK  = 0xF8000
	TMC260_STATUS_CUR_SE_SHIFT = 10
	TMC260_STATUS_CUR_SE_MASK  = 0x07C00
)

// Safe DRVCONF base used for status polling before any configuration
// write has happened. Matches the chip's reset defaults with RDSEL=0.
const TMC260_DRVCONF_READONLY = 0xEF000

// Microstep resolution codes for the DRVCTRL MRES field
const (
	MICROSTEP_CONFIG_256 = 0x0
	MICROSTEP_CONFIG_128 = 0x1
	MICROSTEP_CONFIG_64  = 0x2
	MICROSTEP_CONFIG_32  = 0x3
	MICROSTEP_CONFIG_16  = 0x4
	MICROSTEP_CONFIG_8   = 0x5
	MICROSTEP_CONFIG_4   = 0x6
	MICROSTEP_CONFIG_2   = 0x7
	MICROSTEP_CONFIG_1   = 0x8
)
