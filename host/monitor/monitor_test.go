package monitor

import (
	"bytes"
	"strings"
	"testing"

	"tiltstep/protocol"
)

func frameBytes(t *testing.T, reports ...protocol.Report) []byte {
	t.Helper()
	var stream []byte
	out := protocol.NewScratchOutput()
	enc := protocol.NewFrameEncoder(out)
	for _, r := range reports {
		out.Reset()
		enc.Encode(func(output protocol.OutputBuffer) {
			protocol.EncodeReport(output, r)
		})
		stream = append(stream, out.Result()...)
	}
	return stream
}

func TestMonitorDecodesStream(t *testing.T) {
	stream := frameBytes(t,
		protocol.Report{Position: 100, StallGuard: 300, CurrentScale: 9, AngleMicroRad: 1570796},
		protocol.Report{Position: 101, StatusByte: 0x81, AngleMicroRad: -500000},
	)

	var out bytes.Buffer
	m := New(bytes.NewReader(stream), &out)
	if err := m.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if m.Frames() != 2 {
		t.Fatalf("frames = %d, want 2", m.Frames())
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("output lines = %d: %q", len(lines), out.String())
	}
	if !strings.Contains(lines[0], "+1.5708") || !strings.Contains(lines[0], "sg= 300") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "-0.5000") || !strings.Contains(lines[1], "flags=SG,STST") {
		t.Errorf("second line = %q", lines[1])
	}
}

func TestMonitorSurvivesNoise(t *testing.T) {
	stream := append([]byte{0x00, 0xFF, 0x7E, 0x13}, frameBytes(t,
		protocol.Report{Position: 7},
	)...)

	var out bytes.Buffer
	m := New(bytes.NewReader(stream), &out)
	if err := m.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if m.Frames() != 1 {
		t.Errorf("frames = %d, want 1", m.Frames())
	}
}

func TestFlagString(t *testing.T) {
	cases := []struct {
		b    uint8
		want string
	}{
		{0x00, "flags=-"},
		{0x01, "flags=SG"},
		{0x81, "flags=SG,STST"},
		{0x06, "flags=OT,OTPW"},
	}
	for _, tc := range cases {
		if got := flagString(tc.b); got != tc.want {
			t.Errorf("flagString(%#x) = %q, want %q", tc.b, got, tc.want)
		}
	}
}
