package hasher

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Bytes2Elements packs raw bytes into field-element leaves, elementSize
// bytes per element (31 keeps every element below the BN254 modulus). The
// tail element is zero-padded.
func Bytes2Elements(data []byte, elementSize int) []fr.Element {
	numElements := (len(data) + elementSize - 1) / elementSize
	elements := make([]fr.Element, numElements)

	// Reuse one buffer; SetBytes copies, so overwriting it next round is safe.
	buf := make([]byte, elementSize)

	for i := 0; i < numElements; i++ {
		for j := range buf {
			buf[j] = 0
		}

		start := i * elementSize
		end := start + elementSize
		if end > len(data) {
			end = len(data)
		}
		copy(buf, data[start:end])

		elements[i].SetBytes(buf)
	}

	return elements
}

// Elements2Bytes is the inverse of Bytes2Elements: each element contributes
// its low elementSize bytes, and the result is trimmed to originalSize when
// that is shorter.
func Elements2Bytes(elements []fr.Element, elementSize, originalSize int) []byte {
	result := make([]byte, 0, len(elements)*elementSize)

	for i := range elements {
		b := elements[i].Bytes() // canonical 32-byte big-endian
		result = append(result, b[32-elementSize:]...)
	}

	if originalSize > 0 && originalSize < len(result) {
		result = result[:originalSize]
	}
	return result
}
