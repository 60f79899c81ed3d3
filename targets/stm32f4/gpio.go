//go:build stm32f4disc

package main

import (
	"machine"

	"tiltstep/core"
)

// STM32GPIODriver implements core.GPIODriver on TinyGo's machine.Pin.
// core.GPIOPin values are machine.Pin numbers, so the conversion is direct.
type STM32GPIODriver struct{}

func NewSTM32GPIODriver() *STM32GPIODriver {
	return &STM32GPIODriver{}
}

func (d *STM32GPIODriver) ConfigureOutput(pin core.GPIOPin) error {
	machine.Pin(pin).Configure(machine.PinConfig{Mode: machine.PinOutput})
	return nil
}

func (d *STM32GPIODriver) ConfigureInputPullUp(pin core.GPIOPin) error {
	machine.Pin(pin).Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return nil
}

func (d *STM32GPIODriver) SetPin(pin core.GPIOPin, value bool) error {
	machine.Pin(pin).Set(value)
	return nil
}

func (d *STM32GPIODriver) ReadPin(pin core.GPIOPin) bool {
	return machine.Pin(pin).Get()
}
