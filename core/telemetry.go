package core

// StatusReport is the telemetry record emitted after each completed driver
// status read. Framing, queuing and retransmission belong to the uplink
// collaborator, not to this package.
type StatusReport struct {
	Position     uint16
	StallGuard   uint16
	CurrentScale uint8
	StatusByte   uint8
	AngleRad     float32
}

// Reporter queues one outbound status report. Implementations must not
// block: ReportStatus is called from the supervisory tick handler.
type Reporter interface {
	ReportStatus(StatusReport)
}
