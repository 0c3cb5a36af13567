package encoding

// PackedSize is the number of bytes holding count values of bitWidth bits.
func PackedSize(count, bitWidth int) int {
	return (count*bitWidth + 7) / 8
}

// Pack appends values to dst, bitWidth bits each, least significant bit first.
// Bits above bitWidth are ignored.
func Pack(dst []byte, values []uint64, bitWidth int) []byte {
	if bitWidth == 0 || len(values) == 0 {
		return dst
	}

	start := len(dst)
	dst = append(dst, make([]byte, PackedSize(len(values), bitWidth))...)
	out := dst[start:]

	bit := 0
	for _, v := range values {
		for i := 0; i < bitWidth; i++ {
			if v>>uint(i)&1 == 1 {
				out[bit>>3] |= 1 << uint(bit&7)
			}
			bit++
		}
	}

	return dst
}

// Unpack fills dst from src, the inverse of Pack.
// src must hold at least PackedSize(len(dst), bitWidth) bytes.
func Unpack(dst []uint64, src []byte, bitWidth int) {
	if bitWidth == 0 {
		for i := range dst {
			dst[i] = 0
		}

		return
	}

	bit := 0
	for j := range dst {
		var v uint64

		for i := 0; i < bitWidth; i++ {
			if src[bit>>3]>>uint(bit&7)&1 == 1 {
				v |= 1 << uint(i)
			}
			bit++
		}

		dst[j] = v
	}
}

// PackBools packs one bit per value.
func PackBools(dst []byte, values []bool) []byte {
	start := len(dst)
	dst = append(dst, make([]byte, PackedSize(len(values), 1))...)
	out := dst[start:]

	for i, v := range values {
		if v {
			out[i>>3] |= 1 << uint(i&7)
		}
	}

	return dst
}

// UnpackBools fills dst from src, the inverse of PackBools.
func UnpackBools(dst []bool, src []byte) {
	for i := range dst {
		dst[i] = src[i>>3]>>uint(i&7)&1 == 1
	}
}
