package stream

import "math"

// GDSII reals are excess-64 base-16 floats: one sign bit, a seven bit
// exponent and a 56 bit mantissa with value mantissa/2^56 * 16^(exp-64).

const mantissaBits = 56

// EncodeReal8 converts f to the GDSII eight-byte real representation.
// Values too small for the format encode as zero; values too large
// saturate to the largest representable magnitude.
func EncodeReal8(f float64) uint64 {
	if f == 0 || math.IsNaN(f) {
		return 0
	}
	var sign uint64
	if f < 0 {
		sign = 1 << 63
		f = -f
	}
	exp := 64
	for f >= 1 {
		f /= 16
		exp++
	}
	for f < 1.0/16 {
		f *= 16
		exp--
	}
	mantissa := uint64(math.Round(f * (1 << mantissaBits)))
	if mantissa >= 1<<mantissaBits {
		mantissa >>= 4
		exp++
	}
	switch {
	case exp < 0:
		return 0
	case exp > 127:
		return sign | 127<<mantissaBits | (1<<mantissaBits - 1)
	}
	return sign | uint64(exp)<<mantissaBits | mantissa
}

// DecodeReal8 converts a GDSII eight-byte real to a float64.
func DecodeReal8(u uint64) float64 {
	mantissa := u & (1<<mantissaBits - 1)
	if mantissa == 0 {
		return 0
	}
	exp := int((u>>mantissaBits)&0x7F) - 64
	f := float64(mantissa) / (1 << mantissaBits) * math.Pow(16, float64(exp))
	if u&(1<<63) != 0 {
		return -f
	}
	return f
}
