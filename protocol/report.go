package protocol

import "errors"

var ErrUnknownMessage = errors.New("unknown message id")

// MsgStatusReport identifies the motor status report message.
const MsgStatusReport = 0x21

// Report is the decoded form of one status report message: the driver
// chip's readout lanes plus the controller's tracked angle. Angle travels
// as signed microradians so the wire format stays integer-only.
type Report struct {
	Position      uint16
	StallGuard    uint16
	CurrentScale  uint8
	StatusByte    uint8
	AngleMicroRad int32
}

// EncodeReport writes the message id and fields; framing is the caller's
// FrameEncoder.
func EncodeReport(output OutputBuffer, r Report) {
	EncodeVLQUint(output, MsgStatusReport)
	EncodeVLQUint(output, uint32(r.Position))
	EncodeVLQUint(output, uint32(r.StallGuard))
	EncodeVLQUint(output, uint32(r.CurrentScale))
	EncodeVLQUint(output, uint32(r.StatusByte))
	EncodeVLQInt(output, r.AngleMicroRad)
}

// DecodeReport parses one status report from a frame payload.
func DecodeReport(payload []byte) (Report, error) {
	var r Report

	id, err := DecodeVLQUint(&payload)
	if err != nil {
		return r, err
	}
	if id != MsgStatusReport {
		return r, ErrUnknownMessage
	}

	pos, err := DecodeVLQUint(&payload)
	if err != nil {
		return r, err
	}
	sg, err := DecodeVLQUint(&payload)
	if err != nil {
		return r, err
	}
	cs, err := DecodeVLQUint(&payload)
	if err != nil {
		return r, err
	}
	status, err := DecodeVLQUint(&payload)
	if err != nil {
		return r, err
	}
	angle, err := DecodeVLQInt(&payload)
	if err != nil {
		return r, err
	}

	r.Position = uint16(pos)
	r.StallGuard = uint16(sg)
	r.CurrentScale = uint8(cs)
	r.StatusByte = uint8(status)
	r.AngleMicroRad = angle
	return r, nil
}
