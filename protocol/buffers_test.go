package protocol

import "testing"

func TestFifoWrapAround(t *testing.T) {
	f := NewFifoBuffer(8)

	// Walk the read/write pointers past the wrap point.
	if n := f.Write([]byte{1, 2, 3, 4, 5}); n != 5 {
		t.Fatalf("wrote %d, want 5", n)
	}
	tmp := make([]byte, 4)
	if n := f.Read(tmp); n != 4 {
		t.Fatalf("read %d, want 4", n)
	}

	if n := f.Write([]byte{6, 7, 8, 9}); n != 4 {
		t.Fatalf("wrapped write = %d, want 4", n)
	}
	if f.Available() != 5 {
		t.Fatalf("available = %d, want 5", f.Available())
	}

	// Data must come back contiguous despite the wrap.
	data := f.Data()
	want := []byte{5, 6, 7, 8, 9}
	if len(data) != len(want) {
		t.Fatalf("data = % x, want % x", data, want)
	}
	for i := range want {
		if data[i] != want[i] {
			t.Fatalf("data = % x, want % x", data, want)
		}
	}
}

func TestFifoFullStopsWriting(t *testing.T) {
	f := NewFifoBuffer(4)
	if n := f.Write([]byte{1, 2, 3, 4, 5}); n != 3 {
		t.Errorf("wrote %d into a 4-byte fifo, want 3", n)
	}
	if f.Free() != 0 {
		t.Errorf("free = %d, want 0", f.Free())
	}
}

func TestFifoPopAndReset(t *testing.T) {
	f := NewFifoBuffer(8)
	f.Write([]byte{1, 2, 3})
	f.Pop(2)
	if f.Available() != 1 || f.Data()[0] != 3 {
		t.Errorf("pop left % x", f.Data())
	}
	f.Reset()
	if !f.IsEmpty() {
		t.Errorf("reset left %d bytes", f.Available())
	}
}

func TestScratchOutputPatch(t *testing.T) {
	s := NewScratchOutput()
	s.Output([]byte{0, 0x10})
	s.Output([]byte{0xAA, 0xBB})
	s.Update(0, byte(s.CurPosition()+MessageTrailerSize))

	got := s.Result()
	if got[0] != 7 {
		t.Errorf("patched length = %d, want 7", got[0])
	}
	if since := s.DataSince(2); len(since) != 2 || since[0] != 0xAA {
		t.Errorf("DataSince(2) = % x", since)
	}
}
