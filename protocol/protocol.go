// Package protocol implements the telemetry uplink framing: Klipper-style
// message blocks carrying VLQ-encoded status reports from the motor
// controller to a host monitor. The link is egress-only; the firmware
// encodes, the host scans and decodes.
package protocol

// Frame layout constants. A block is [len][seq] payload [crc16 hi,lo][sync].
const (
	MessageHeaderSize  = 2
	MessageTrailerSize = 3
	MessageLengthMin   = MessageHeaderSize + MessageTrailerSize
	MessageLengthMax   = 64

	MessagePositionLen = 0
	MessagePositionSeq = 1
	MessageTrailerCRC  = 3
	MessageTrailerSync = 1

	MessageValueSync = 0x7E
	MessageDest      = 0x10
	MessageSeqMask   = 0x0F
)
