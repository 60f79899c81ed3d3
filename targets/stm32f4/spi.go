//go:build stm32f4disc

package main

import (
	"machine"

	"tinygo.org/x/drivers"

	"tiltstep/core"
)

// spiByteLink adapts a drivers.SPI bus to core.ByteLink. machine.SPI
// satisfies drivers.SPI, so the hardware bus plugs in directly; tests and
// other boards can substitute any conforming bus.
type spiByteLink struct {
	bus drivers.SPI
}

func newSPIByteLink(bus drivers.SPI) *spiByteLink {
	return &spiByteLink{bus: bus}
}

func (l *spiByteLink) Transfer(b byte) (byte, error) {
	return l.bus.Transfer(b)
}

// WaitIdle is a no-op here: machine.SPI.Transfer returns only after the
// shift register has drained, so the byte is already on the wire when the
// chip select is released.
func (l *spiByteLink) WaitIdle() {}

// configureSPI brings up SPI1 on PA5/PA6/PA7 in mode 3, the clock phase
// the driver chip samples on. The chip tolerates at most 4 MHz; 1 MHz
// leaves margin over the board's wiring.
func configureSPI() (*spiByteLink, error) {
	spi := machine.SPI0
	err := spi.Configure(machine.SPIConfig{
		Frequency: 1_000_000,
		SCK:       machine.PA5,
		SDO:       machine.PA7,
		SDI:       machine.PA6,
		Mode:      3,
	})
	if err != nil {
		return nil, err
	}
	return newSPIByteLink(spi), nil
}

var _ core.ByteLink = (*spiByteLink)(nil)
