package cpu

const (
	MIN_WIDTH = 8  // Narrowest supported word width.
	MAX_WIDTH = 64 // Widest supported word width.
)

// Mask returns the bit mask of a word of the given width.
func Mask(width uint) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << width) - 1
}

// Wrap truncates a value to the given width.
func Wrap(value uint64, width uint) uint64 {
	return value & Mask(width)
}

// WrapInt truncates a signed value to its two's complement bit pattern
// of the given width.
func WrapInt(value int64, width uint) uint64 {
	return uint64(value) & Mask(width)
}

// Signed interprets the low width bits of value as two's complement.
func Signed(value uint64, width uint) int64 {
	value = Wrap(value, width)
	if width >= 64 {
		return int64(value)
	}
	if value&(uint64(1)<<(width-1)) != 0 {
		return int64(value) - int64(uint64(1)<<width)
	}
	return int64(value)
}

// ShiftLeft is a logical left shift within the given width.
func ShiftLeft(value uint64, count uint64, width uint) uint64 {
	if count >= uint64(width) {
		return 0
	}
	return Wrap(value<<count, width)
}

// ShiftRight is a logical right shift within the given width.
func ShiftRight(value uint64, count uint64, width uint) uint64 {
	if count >= uint64(width) {
		return 0
	}
	return Wrap(value, width) >> count
}

// ShiftRightArith is an arithmetic right shift, replicating the
// sign bit of the given width.
func ShiftRightArith(value uint64, count uint64, width uint) uint64 {
	if count >= uint64(width) {
		count = uint64(width) - 1
	}
	return WrapInt(Signed(value, width)>>count, width)
}

// RotateLeft is a circular left shift within the given width.
func RotateLeft(value uint64, count uint64, width uint) uint64 {
	value = Wrap(value, width)
	count %= uint64(width)
	if count == 0 {
		return value
	}
	return Wrap((value<<count)|(value>>(uint64(width)-count)), width)
}

// RotateRight is a circular right shift within the given width.
func RotateRight(value uint64, count uint64, width uint) uint64 {
	count %= uint64(width)
	return RotateLeft(value, uint64(width)-count, width)
}
