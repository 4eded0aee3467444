// Package parity2d implements the two dimensional (row/column) parity code.
//
// Data bits are split into blocks of Rows*Cols bits, each block is viewed as a
// Rows x Cols matrix (row-major) and transmitted as
//
//	[data bits (Rows*Cols) | column parity (Cols) | row parity (Rows)]
//
// The code corrects exactly one flipped bit per block. Blocks with more errors
// are either left alone or miscorrected.
package parity2d

import (
	"fmt"

	"github.com/nathanhack/fecsim/linearblock"
	"github.com/nathanhack/fecsim/packet"
	mat "github.com/nathanhack/sparsemat"
)

// Shape is the size of the data matrix protected by one round of parity.
type Shape struct {
	Rows int
	Cols int
}

func (s Shape) DataLen() int {
	return s.Rows * s.Cols
}

// CodeLen is the number of bits a block occupies on the channel.
func (s Shape) CodeLen() int {
	return s.DataLen() + s.Rows + s.Cols
}

func (s Shape) CodeRate() float64 {
	return float64(s.DataLen()) / float64(s.CodeLen())
}

// Blocks returns the number of whole blocks found in dataBits bits of data.
func (s Shape) Blocks(dataBits int) int {
	return dataBits / s.DataLen()
}

// Validate reports shapes Encode and Decode can not work with.
func (s Shape) Validate() error {
	if s.Rows <= 0 {
		return fmt.Errorf("rows must be greater than 0 but found %v", s.Rows)
	}
	if s.Cols <= 0 {
		return fmt.Errorf("cols must be greater than 0 but found %v", s.Cols)
	}
	return nil
}

func (s Shape) String() string {
	return fmt.Sprintf("%vx%v", s.Rows, s.Cols)
}

//Encode returns the coded packet for data. Only whole blocks are encoded, any
// trailing bits that do not fill a block are dropped.
func (s Shape) Encode(data packet.Packet) packet.Packet {
	dataLen := s.DataLen()
	codeLen := s.CodeLen()
	blocks := len(data) / dataLen

	coded := make(packet.Packet, blocks*codeLen)
	for b := 0; b < blocks; b++ {
		src := data[b*dataLen : (b+1)*dataLen]
		dst := coded[b*codeLen : (b+1)*codeLen]

		copy(dst, src)
		columnParity := dst[dataLen : dataLen+s.Cols]
		rowParity := dst[dataLen+s.Cols:]
		for r := 0; r < s.Rows; r++ {
			for c := 0; c < s.Cols; c++ {
				bit := src[r*s.Cols+c]
				columnParity[c] ^= bit
				rowParity[r] ^= bit
			}
		}
	}
	return coded
}

//Decode returns the data carried by coded after fixing at most one bit per block.
// A trailing partial block is ignored.
func (s Shape) Decode(coded packet.Packet) packet.Packet {
	dataLen := s.DataLen()
	codeLen := s.CodeLen()
	blocks := len(coded) / codeLen

	decoded := make(packet.Packet, blocks*dataLen)
	for b := 0; b < blocks; b++ {
		block := coded[b*codeLen : (b+1)*codeLen]
		dst := decoded[b*dataLen : (b+1)*dataLen]

		copy(dst, block[:dataLen])

		//only the first failing row and column are used
		row, col := s.locate(block)
		if row >= 0 && col >= 0 {
			dst[row*s.Cols+col] ^= 1
		}
	}
	return decoded
}

// locate returns the first row and the first column whose parity check fails,
// -1 means every check on that axis passed.
func (s Shape) locate(block packet.Packet) (row, col int) {
	row, col = -1, -1
	for c := 0; c < s.Cols; c++ {
		if s.columnCheck(block, c) != 0 {
			col = c
			break
		}
	}
	for r := 0; r < s.Rows; r++ {
		if s.rowCheck(block, r) != 0 {
			row = r
			break
		}
	}
	return
}

func (s Shape) columnCheck(block packet.Packet, c int) uint8 {
	parity := block[s.DataLen()+c]
	for r := 0; r < s.Rows; r++ {
		parity ^= block[r*s.Cols+c]
	}
	return parity
}

func (s Shape) rowCheck(block packet.Packet, r int) uint8 {
	parity := block[s.DataLen()+s.Cols+r]
	for _, bit := range block[r*s.Cols : (r+1)*s.Cols] {
		parity ^= bit
	}
	return parity
}

//Syndrome returns the result of every parity check of one coded block, column checks
// first followed by row checks. A 1 marks a failed check.
func (s Shape) Syndrome(block packet.Packet) packet.Packet {
	if len(block) != s.CodeLen() {
		panic(fmt.Sprintf("block length == %v required but found %v", s.CodeLen(), len(block)))
	}

	syndrome := make(packet.Packet, s.Cols+s.Rows)
	for c := 0; c < s.Cols; c++ {
		syndrome[c] = s.columnCheck(block, c)
	}
	for r := 0; r < s.Rows; r++ {
		syndrome[s.Cols+r] = s.rowCheck(block, r)
	}
	return syndrome
}

// New creates the linear block form of the code for one block of the given shape.
// The parity check matrix has the column checks first followed by the row checks,
// matching the layout produced by Encode.
func New(s Shape) *linearblock.LinearBlock {
	A := mat.CSRMat(s.Cols+s.Rows, s.DataLen())
	for r := 0; r < s.Rows; r++ {
		for c := 0; c < s.Cols; c++ {
			bit := r*s.Cols + c
			A.Set(c, bit, 1)
			A.Set(s.Cols+r, bit, 1)
		}
	}
	return linearblock.NewSystematic(A)
}
