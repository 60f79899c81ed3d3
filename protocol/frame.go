package protocol

// FrameEncoder wraps payloads into message blocks on the firmware side.
// The sequence field carries the destination bits plus a 4-bit counter;
// with no reverse channel there is no ACK handshake, the counter just lets
// the host notice dropped frames.
type FrameEncoder struct {
	out OutputBuffer
	seq uint8
}

// NewFrameEncoder wires an encoder to its output buffer.
func NewFrameEncoder(out OutputBuffer) *FrameEncoder {
	return &FrameEncoder{out: out, seq: MessageDest}
}

// Encode writes one framed message: length and sequence header, the
// payload produced by the callback, CRC over header plus payload, and the
// sync byte. The length byte is patched in after the payload is written.
func (e *FrameEncoder) Encode(payload func(OutputBuffer)) {
	cursor := e.out.CurPosition()

	e.out.Output([]byte{0, e.seq})
	payload(e.out)

	body := len(e.out.DataSince(cursor))
	e.out.Update(cursor, uint8(body+MessageTrailerSize))

	crc := CRC16(e.out.DataSince(cursor))
	e.out.Output([]byte{
		uint8(crc >> 8),
		uint8(crc & 0xFF),
		MessageValueSync,
	})

	e.seq = ((e.seq + 1) & MessageSeqMask) | MessageDest
}

// NextFrame scans the queue for one complete valid frame and returns its
// payload, popping everything up to and including the frame. Bytes that
// cannot start a valid frame are discarded one at a time, so the scanner
// regains sync after line noise. Returns false when no complete frame is
// queued yet.
func NextFrame(buf *FifoBuffer) ([]byte, bool) {
	data := buf.Data()
	consumed := 0

	for {
		d := data[consumed:]
		if len(d) < MessageLengthMin {
			break
		}
		if d[0] == MessageValueSync {
			consumed++
			continue
		}

		msgLen := int(d[MessagePositionLen])
		if msgLen < MessageLengthMin || msgLen > MessageLengthMax ||
			d[MessagePositionSeq]&^uint8(MessageSeqMask) != MessageDest {
			consumed++
			continue
		}
		if len(d) < msgLen {
			break
		}
		if d[msgLen-MessageTrailerSync] != MessageValueSync {
			consumed++
			continue
		}

		frameCRC := uint16(d[msgLen-MessageTrailerCRC])<<8 |
			uint16(d[msgLen-MessageTrailerCRC+1])
		if frameCRC != CRC16(d[:msgLen-MessageTrailerSize]) {
			consumed++
			continue
		}

		payload := append([]byte(nil), d[MessageHeaderSize:msgLen-MessageTrailerSize]...)
		buf.Pop(consumed + msgLen)
		return payload, true
	}

	buf.Pop(consumed)
	return nil, false
}
