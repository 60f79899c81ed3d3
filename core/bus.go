package core

// Chip-select framed exchange of TMC260 datagrams over a blocking byte link.
//
// The TMC260 clocks its SPI shifter from an internal oscillator that needs
// settling time between chip-select edges and data; the guard delays below
// are empirically tuned loop counts carried over from the board bring-up,
// not derived values. Chip-select release is gated on the link's busy flag:
// releasing on time alone corrupts the following transaction.

// ByteLink is the blocking byte-at-a-time serial primitive. Transfer writes
// one byte and returns the byte shifted in during the same clocks. The
// signature matches the SPI interface of tinygo.org/x/drivers, so a machine
// SPI bus satisfies it directly on TinyGo targets.
type ByteLink interface {
	// Transfer blocks until the byte has shifted out and the echoed byte
	// has been received
	Transfer(b byte) (byte, error)

	// WaitIdle blocks until the shifter reports not-busy. Bounded only by
	// hardware guarantee; a stuck link hangs the caller.
	WaitIdle()
}

// SPIGuardDelayLoops is the busy-loop count for one guard delay unit.
const SPIGuardDelayLoops = 500

// Guard-delay multiples around chip-select release
const (
	busGuardPostTransfer = 8
	busGuardPostRelease  = 8
)

// GuardDelay spins for one guard delay unit. Targets may install a
// calibrated implementation via the Bus Guard hook instead.
func GuardDelay() {
	for i := 0; i < SPIGuardDelayLoops; i++ {
		guardSink++
	}
}

// Keeps the guard loop from being optimized away.
var guardSink uint32

// Bus frames datagram exchanges with chip-select and guard timing.
// The select line is active low.
type Bus struct {
	Link  ByteLink
	GPIO  GPIODriver
	CSPin GPIOPin

	// Guard is invoked for each guard delay unit. Nil selects GuardDelay.
	Guard func()
}

func (b *Bus) guard(n int) {
	g := b.Guard
	if g == nil {
		g = GuardDelay
	}
	for i := 0; i < n; i++ {
		g()
	}
}

// Exchange shifts three datagram bytes out while capturing the three bytes
// the device echoes back. The response always describes the transaction
// before this one; the device has no same-transaction read-back.
func (b *Bus) Exchange(tx [DatagramBytes]byte) ([DatagramBytes]byte, error) {
	var rx [DatagramBytes]byte

	b.guard(1)
	if err := b.GPIO.SetPin(b.CSPin, false); err != nil {
		return rx, err
	}
	b.guard(1)

	var firstErr error
	for i := 0; i < DatagramBytes; i++ {
		r, err := b.Link.Transfer(tx[i])
		if err != nil && firstErr == nil {
			firstErr = err
		}
		rx[i] = r
	}

	// All bytes must finish shifting before the select line rises.
	b.Link.WaitIdle()
	b.guard(busGuardPostTransfer)

	if err := b.GPIO.SetPin(b.CSPin, true); err != nil && firstErr == nil {
		firstErr = err
	}
	b.guard(busGuardPostRelease)

	return rx, firstErr
}

// Write sends a datagram and discards the echoed response.
func (b *Bus) Write(tx [DatagramBytes]byte) error {
	_, err := b.Exchange(tx)
	return err
}
