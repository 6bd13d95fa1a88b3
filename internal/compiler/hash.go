package compiler

import (
	"strconv"
	"unicode/utf16"
)

const murmurM = 0x5bd1e995

// Hash returns the base36 murmurhash2 (32 bit, seed 1) of s. Input is read
// as UTF-16 code units truncated to their low byte, so class names match the
// ones produced by existing JavaScript tooling.
func Hash(s string) string {
	return strconv.FormatUint(uint64(murmur2(codeUnits(s), 1)), 36)
}

func codeUnits(s string) []byte {
	units := utf16.Encode([]rune(s))
	out := make([]byte, len(units))
	for i, u := range units {
		out[i] = byte(u)
	}
	return out
}

func murmur2(data []byte, seed uint32) uint32 {
	l := len(data)
	h := seed ^ uint32(l)
	i := 0

	for l >= 4 {
		k := uint32(data[i]) | uint32(data[i+1])<<8 | uint32(data[i+2])<<16 | uint32(data[i+3])<<24
		k *= murmurM
		k ^= k >> 24
		k *= murmurM
		h = h*murmurM ^ k
		i += 4
		l -= 4
	}

	switch l {
	case 3:
		h ^= uint32(data[i+2]) << 16
		fallthrough
	case 2:
		h ^= uint32(data[i+1]) << 8
		fallthrough
	case 1:
		h ^= uint32(data[i])
		h *= murmurM
	}

	h ^= h >> 13
	h *= murmurM
	h ^= h >> 15
	return h
}
