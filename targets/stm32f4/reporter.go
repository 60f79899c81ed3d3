//go:build stm32f4disc

package main

import (
	"tiltstep/core"
	"tiltstep/protocol"
)

// telemetryReporter frames each status report and queues the bytes for the
// main loop to drain into the UART. It runs inside the supervisory tick
// interrupt, so it never blocks: when the queue is full the report is
// dropped and the next decimated read supersedes it.
type telemetryReporter struct {
	scratch *protocol.ScratchOutput
	enc     *protocol.FrameEncoder
	txq     *protocol.FifoBuffer
}

func newTelemetryReporter(queueSize int) *telemetryReporter {
	scratch := protocol.NewScratchOutput()
	return &telemetryReporter{
		scratch: scratch,
		enc:     protocol.NewFrameEncoder(scratch),
		txq:     protocol.NewFifoBuffer(queueSize),
	}
}

func (r *telemetryReporter) ReportStatus(sr core.StatusReport) {
	r.scratch.Reset()
	r.enc.Encode(func(output protocol.OutputBuffer) {
		protocol.EncodeReport(output, protocol.Report{
			Position:      sr.Position,
			StallGuard:    sr.StallGuard,
			CurrentScale:  sr.CurrentScale,
			StatusByte:    sr.StatusByte,
			AngleMicroRad: int32(sr.AngleRad * 1e6),
		})
	})
	r.txq.Write(r.scratch.Result())
}

var _ core.Reporter = (*telemetryReporter)(nil)
