// Package monitor decodes the telemetry stream from the tilt firmware and
// renders one line per status report.
package monitor

import (
	"fmt"
	"io"

	"tiltstep/protocol"
)

// Monitor scans a serial byte stream for status report frames.
type Monitor struct {
	in  io.Reader
	out io.Writer
	buf *protocol.FifoBuffer

	// ShowRaw additionally prints each frame payload in hex.
	ShowRaw bool

	frames  uint64
	skipped uint64
}

// New wires a monitor to its input stream and output sink.
func New(in io.Reader, out io.Writer) *Monitor {
	return &Monitor{
		in:  in,
		out: out,
		buf: protocol.NewFifoBuffer(4096),
	}
}

// Run reads the stream until it ends, printing each decoded report.
// Returns nil on a clean end of stream.
func (m *Monitor) Run() error {
	chunk := make([]byte, 256)
	for {
		n, err := m.in.Read(chunk)
		if n > 0 {
			m.buf.Write(chunk[:n])
			for {
				payload, ok := protocol.NextFrame(m.buf)
				if !ok {
					break
				}
				m.handleFrame(payload)
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Frames reports how many valid frames have been decoded.
func (m *Monitor) Frames() uint64 { return m.frames }

// Skipped reports how many frames carried an unknown or malformed payload.
func (m *Monitor) Skipped() uint64 { return m.skipped }

func (m *Monitor) handleFrame(payload []byte) {
	if m.ShowRaw {
		fmt.Fprintf(m.out, "raw % x\n", payload)
	}

	r, err := protocol.DecodeReport(payload)
	if err != nil {
		m.skipped++
		fmt.Fprintf(m.out, "skip %d bytes: %v\n", len(payload), err)
		return
	}
	m.frames++

	fmt.Fprintf(m.out, "angle=%+8.4f rad  pos=%4d  sg=%4d  cs=%2d  %s\n",
		float64(r.AngleMicroRad)/1e6,
		r.Position, r.StallGuard, r.CurrentScale,
		flagString(r.StatusByte))
}

// flagString renders the driver status byte as the datasheet flag names.
func flagString(b uint8) string {
	flags := [8]string{"SG", "OT", "OTPW", "S2GA", "S2GB", "OLA", "OLB", "STST"}
	s := ""
	for i, name := range flags {
		if b&(1<<i) != 0 {
			if s != "" {
				s += ","
			}
			s += name
		}
	}
	if s == "" {
		return "flags=-"
	}
	return "flags=" + s
}
