package packet

import (
	"strings"

	mat "github.com/nathanhack/sparsemat"
	"golang.org/x/exp/slices"
)

// Packet is an ordered sequence of bits, each element is either 0 or 1.
type Packet []uint8

// Clone returns a copy of p that shares no memory with it.
func (p Packet) Clone() Packet {
	return slices.Clone(p)
}

// Flip complements the bit at index i.
func (p Packet) Flip(i int) {
	p[i] ^= 1
}

//HammingDistance calculates number of bits different.
// If p and other are different sizes it assumes they are
// both aligned with the zero index (the difference is at the end)
func (p Packet) HammingDistance(other Packet) int {
	min := len(p)
	max := len(other)
	if min > max {
		min = len(other)
		max = len(p)
	}

	count := 0
	for i := 0; i < min; i++ {
		if p[i] != other[i] {
			count++
		}
	}
	return max - min + count
}

// HammingWeight returns the number of ones.
func (p Packet) HammingWeight() (count int) {
	for _, b := range p {
		if b != 0 {
			count++
		}
	}
	return
}

// Sparse converts the packet into a GF(2) sparse vector of the same length.
func (p Packet) Sparse() mat.SparseVector {
	v := mat.CSRVec(len(p))
	for i, b := range p {
		if b != 0 {
			v.Set(i, 1)
		}
	}
	return v
}

// FromSparse creates a packet from the sparse vector v.
func FromSparse(v mat.SparseVector) Packet {
	p := make(Packet, v.Len())
	for _, i := range v.NonzeroArray() {
		p[i] = 1
	}
	return p
}

func (p Packet) String() string {
	buf := strings.Builder{}
	buf.WriteString("[")
	for i, b := range p {
		if i > 0 {
			buf.WriteString(" ")
		}
		if b != 0 {
			buf.WriteString("1")
		} else {
			buf.WriteString("0")
		}
	}
	buf.WriteString("]")
	return buf.String()
}
