package crossing

// GrayEncode converts a binary value to its reflected Gray code.
// Consecutive binary values map to codes that differ in exactly one bit,
// which is what makes a multi-bit pointer safe to relay across domains.
func GrayEncode(b uint64) uint64 {
	return b ^ (b >> 1)
}

// GrayDecode recovers the binary value from a reflected Gray code using
// a prefix XOR from the most significant bit downward.
func GrayDecode(g uint64) uint64 {
	b := g
	b ^= b >> 1
	b ^= b >> 2
	b ^= b >> 4
	b ^= b >> 8
	b ^= b >> 16
	b ^= b >> 32
	return b
}
