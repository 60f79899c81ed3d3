// Package serial abstracts the host-side serial port so the monitor can
// run against real hardware, a pseudo-terminal, or a test double.
package serial

import "io"

// Port is an open serial connection.
type Port interface {
	io.ReadWriteCloser
}

// Config holds serial port configuration.
type Config struct {
	// Device path (e.g. "/dev/ttyUSB0", "COM3")
	Device string

	// Baud rate; must match the firmware's UART setting
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultConfig returns the settings matching the firmware's UART.
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		ReadTimeout: 100,
	}
}
