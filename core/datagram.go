package core

// Datagram packing for the TMC260 SPI register protocol.
//
// The chip exchanges fixed 20-bit words. On the wire a word is carried in
// three bytes, MSB first, with the 20 significant bits left-aligned: the
// logical value is shifted left by 8 and the low byte discarded as padding.
// The response travels the same way; reassembling the three echoed bytes
// MSB-first and shifting right by 12 recovers the 20-bit reply.

// DatagramBytes is the fixed on-wire size of one register word.
const DatagramBytes = 3

// DatagramMask covers the 20 significant bits of a register value.
const DatagramMask = 0xFFFFF

// PackDatagram splits a 20-bit register value into its three wire bytes.
func PackDatagram(v uint32) [DatagramBytes]byte {
	s := (v & DatagramMask) << 8
	return [DatagramBytes]byte{
		byte(s >> 24),
		byte(s >> 16),
		byte(s >> 8),
	}
}

// UnpackResponse reassembles the three echoed bytes into the 20-bit reply.
func UnpackResponse(b [DatagramBytes]byte) uint32 {
	r := uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8
	return r >> 12
}
