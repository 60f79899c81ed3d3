//go:build stm32f4disc

package main

import (
	"machine"
	"time"

	"tiltstep/core"
)

// Board wiring. DIR low is clockwise looking in on the pinion; the home
// flag reads low while the vane covers the sensor.
const (
	pinEnable     = core.GPIOPin(machine.PA0)
	pinDir        = core.GPIOPin(machine.PA1)
	pinStep       = core.GPIOPin(machine.PA2)
	pinChipSelect = core.GPIOPin(machine.PC13)
	pinHomeFlag   = core.GPIOPin(machine.PC1)
	pinStallGuard = core.GPIOPin(machine.PC2)
)

// Discovery board LEDs
const (
	pinLEDGreen  = core.GPIOPin(machine.PD12)
	pinLEDOrange = core.GPIOPin(machine.PD13)
	pinLEDRed    = core.GPIOPin(machine.PD14)
	pinLEDBlue   = core.GPIOPin(machine.PD15)
)

// controller is package-level so the timer interrupt handlers can reach it.
var controller *core.Controller

func main() {
	uart := machine.UART1
	_ = uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.PB6,
		RX:       machine.PB7,
	})
	core.SetDebugWriter(func(s string) {
		_, _ = uart.Write([]byte(s))
		_, _ = uart.Write([]byte("\r\n"))
	})

	gpio := NewSTM32GPIODriver()
	for _, led := range []core.GPIOPin{pinLEDGreen, pinLEDOrange, pinLEDRed, pinLEDBlue} {
		_ = gpio.ConfigureOutput(led)
	}

	link, err := configureSPI()
	if err != nil {
		core.SetDebugEnabled(true)
		core.DebugPrintln("spi configure failed: " + err.Error())
		return
	}

	bus := &core.Bus{
		Link:  link,
		GPIO:  gpio,
		CSPin: pinChipSelect,
		Guard: core.GuardDelay,
	}
	drv := core.NewTMC260(bus, gpio, core.TMC260Pins{
		Enable:    pinEnable,
		HasEnable: true,
		Dir:       pinDir,
		Step:      pinStep,
	})

	reporter := newTelemetryReporter(512)
	controller = core.NewController(drv, tim9StepTimer{}, gpio, core.ControllerConfig{
		HomePin:  pinHomeFlag,
		StallPin: pinStallGuard,
		Reporter: reporter,
		LEDs: &core.DebugLEDs{
			GPIO:   gpio,
			Red:    pinLEDRed,
			Orange: pinLEDOrange,
			Green:  pinLEDGreen,
			Blue:   pinLEDBlue,
		},
	})
	if err := controller.InitSensors(); err != nil {
		core.SetDebugEnabled(true)
		core.DebugPrintln("sensor init failed: " + err.Error())
		return
	}

	// Both home transitions matter; stall only signals on assertion.
	_ = machine.Pin(pinHomeFlag).SetInterrupt(machine.PinToggle, func(machine.Pin) {
		controller.HomeEdge()
	})
	_ = machine.Pin(pinStallGuard).SetInterrupt(machine.PinFalling, func(machine.Pin) {
		controller.StallEdge()
	})

	initTimers()

	// The interrupt handlers do all the motion work; the main loop only
	// drains queued telemetry frames into the UART.
	var out [64]byte
	for {
		if n := reporter.txq.Read(out[:]); n > 0 {
			_, _ = uart.Write(out[:n])
			continue
		}
		time.Sleep(time.Millisecond)
	}
}
