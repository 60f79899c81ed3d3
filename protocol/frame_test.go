package protocol

import "testing"

func encodeReportFrame(enc *FrameEncoder, r Report) {
	enc.Encode(func(output OutputBuffer) {
		EncodeReport(output, r)
	})
}

func TestReportFrameRoundTrip(t *testing.T) {
	out := NewScratchOutput()
	enc := NewFrameEncoder(out)

	want := Report{
		Position:      0x2A7,
		StallGuard:    512,
		CurrentScale:  17,
		StatusByte:    0x81,
		AngleMicroRad: -523599,
	}
	encodeReportFrame(enc, want)

	buf := NewFifoBuffer(256)
	buf.Write(out.Result())

	payload, ok := NextFrame(buf)
	if !ok {
		t.Fatalf("no frame found in %v", out.Result())
	}
	got, err := DecodeReport(payload)
	if err != nil {
		t.Fatalf("DecodeReport: %v", err)
	}
	if got != want {
		t.Errorf("report mismatch: got %+v, want %+v", got, want)
	}
	if !buf.IsEmpty() {
		t.Errorf("%d bytes left after frame", buf.Available())
	}
}

func TestFrameHeaderAndTrailer(t *testing.T) {
	out := NewScratchOutput()
	enc := NewFrameEncoder(out)
	encodeReportFrame(enc, Report{})

	frame := out.Result()
	if int(frame[MessagePositionLen]) != len(frame) {
		t.Errorf("length byte = %d, frame is %d bytes", frame[MessagePositionLen], len(frame))
	}
	if frame[MessagePositionSeq] != MessageDest {
		t.Errorf("first sequence = %#x, want %#x", frame[MessagePositionSeq], MessageDest)
	}
	if frame[len(frame)-1] != MessageValueSync {
		t.Errorf("missing trailing sync byte: % x", frame)
	}

	crc := uint16(frame[len(frame)-3])<<8 | uint16(frame[len(frame)-2])
	if crc != CRC16(frame[:len(frame)-MessageTrailerSize]) {
		t.Errorf("frame CRC mismatch")
	}
}

func TestFrameSequenceAdvances(t *testing.T) {
	out := NewScratchOutput()
	enc := NewFrameEncoder(out)

	seqs := make([]uint8, 0, 17)
	for i := 0; i < 17; i++ {
		out.Reset()
		encodeReportFrame(enc, Report{Position: uint16(i)})
		seqs = append(seqs, out.Result()[MessagePositionSeq])
	}

	for i, seq := range seqs {
		want := uint8(MessageDest | (i & MessageSeqMask))
		if seq != want {
			t.Errorf("frame %d sequence = %#x, want %#x", i, seq, want)
		}
		if seq&^uint8(MessageSeqMask) != MessageDest {
			t.Errorf("frame %d lost destination bits: %#x", i, seq)
		}
	}
}

func TestNextFrameResyncsAfterNoise(t *testing.T) {
	out := NewScratchOutput()
	enc := NewFrameEncoder(out)
	want := Report{Position: 42, AngleMicroRad: 1000}
	encodeReportFrame(enc, want)

	buf := NewFifoBuffer(256)
	buf.Write([]byte{0xDE, 0xAD, MessageValueSync, 0x03}) // line noise
	buf.Write(out.Result())

	payload, ok := NextFrame(buf)
	if !ok {
		t.Fatalf("scanner did not recover from noise")
	}
	got, err := DecodeReport(payload)
	if err != nil {
		t.Fatalf("DecodeReport: %v", err)
	}
	if got != want {
		t.Errorf("report mismatch after resync: got %+v, want %+v", got, want)
	}
}

func TestNextFramePartialFrame(t *testing.T) {
	out := NewScratchOutput()
	enc := NewFrameEncoder(out)
	want := Report{Position: 7}
	encodeReportFrame(enc, want)
	frame := out.Result()

	buf := NewFifoBuffer(256)
	buf.Write(frame[:len(frame)-2])

	if _, ok := NextFrame(buf); ok {
		t.Fatalf("scanner returned an incomplete frame")
	}
	// Incomplete frame must stay queued for the rest to arrive.
	if buf.Available() != len(frame)-2 {
		t.Fatalf("scanner dropped %d buffered bytes", len(frame)-2-buf.Available())
	}

	buf.Write(frame[len(frame)-2:])
	payload, ok := NextFrame(buf)
	if !ok {
		t.Fatalf("frame not found after completion")
	}
	if got, err := DecodeReport(payload); err != nil || got != want {
		t.Errorf("DecodeReport = %+v, %v; want %+v", got, err, want)
	}
}

func TestNextFrameCorruptCRC(t *testing.T) {
	out := NewScratchOutput()
	enc := NewFrameEncoder(out)
	encodeReportFrame(enc, Report{Position: 7})
	frame := append([]byte(nil), out.Result()...)
	frame[3] ^= 0xFF // corrupt payload, CRC now wrong

	buf := NewFifoBuffer(256)
	buf.Write(frame)

	if _, ok := NextFrame(buf); ok {
		t.Errorf("scanner accepted a frame with bad CRC")
	}
}

func TestDecodeReportRejectsForeignMessage(t *testing.T) {
	out := NewScratchOutput()
	EncodeVLQUint(out, MsgStatusReport+1)
	if _, err := DecodeReport(out.Result()); err != ErrUnknownMessage {
		t.Errorf("err = %v, want ErrUnknownMessage", err)
	}
}

func TestDecodeReportTruncatedPayload(t *testing.T) {
	out := NewScratchOutput()
	EncodeVLQUint(out, MsgStatusReport)
	EncodeVLQUint(out, 100) // position only, rest missing
	if _, err := DecodeReport(out.Result()); err != ErrBufferTooSmall {
		t.Errorf("err = %v, want ErrBufferTooSmall", err)
	}
}
