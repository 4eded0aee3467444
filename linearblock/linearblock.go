package linearblock

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nathanhack/fecsim/linearblock/internal"
	mat "github.com/nathanhack/sparsemat"
)

//LinearBlock contains matrices for the parity check matrix H and the systematic generator G.
// Codewords are laid out as [message, parity].
type LinearBlock struct {
	H mat.SparseMat //the parity check matrix
	G mat.SparseMat //the systematic generator matrix
}

//// For JSON unmarshalling
type linearblock struct {
	H mat.CSRMatrix
	G mat.CSRMatrix
}

//NewSystematic creates the linear block whose parity check matrix is H=[A,I] and whose
// generator is G=[I,A^T]. A has one row per parity symbol and one column per message bit.
func NewSystematic(A mat.SparseMat) *LinearBlock {
	m, k := A.Dims()
	n := k + m

	H := mat.CSRMat(m, n)
	H.SetMatrix(A, 0, 0)
	H.SetMatrix(mat.CSRIdentity(m), 0, k)

	G := mat.CSRMat(k, n)
	G.SetMatrix(mat.CSRIdentity(k), 0, 0)
	G.SetMatrix(A.T(), 0, k)

	return &LinearBlock{
		H: H,
		G: G,
	}
}

//UnmarshalJSON is needed because LinearBlock has mat.SparseMat fields and requires special handling
func (l *LinearBlock) UnmarshalJSON(bytes []byte) error {
	var lb linearblock
	err := json.Unmarshal(bytes, &lb)
	if err != nil {
		return err
	}

	l.H = &lb.H
	l.G = &lb.G
	return nil
}

//Encode take in a message and encodes it using the linear block, returning a codeword
func (l *LinearBlock) Encode(message mat.SparseVector) (codeword mat.SparseVector) {
	rows, cols := l.G.Dims()
	if message.Len() != rows {
		panic(fmt.Sprintf("message length == %v is required but found %v", rows, message.Len()))
	}

	codeword = mat.CSRVec(cols)
	codeword.MulMat(message, l.G)
	return codeword
}

//Decode takes in a codeword and returns the message contained in it, no correction is attempted
func (l *LinearBlock) Decode(codeword mat.SparseVector) (message mat.SparseVector) {
	if codeword.Len() != l.CodewordLength() {
		panic(fmt.Sprintf("codeword length == %v required but found %v", l.CodewordLength(), codeword.Len()))
	}
	return codeword.Slice(0, l.MessageLength())
}

//Syndrome returns H*codeword, a zero syndrome means every parity check is satisfied
func (l *LinearBlock) Syndrome(codeword mat.SparseVector) (syndrome mat.SparseVector) {
	syndrome = mat.CSRVec(l.ParitySymbols())
	syndrome.MatMul(l.H, codeword)
	return
}

func (l *LinearBlock) MessageLength() int {
	k, _ := l.G.Dims()
	return k
}
func (l *LinearBlock) ParitySymbols() int {
	m, _ := l.H.Dims()
	return m
}
func (l *LinearBlock) CodewordLength() int {
	_, n := l.H.Dims()
	return n
}
func (l *LinearBlock) CodeRate() float64 {
	return float64(l.MessageLength()) / float64(l.CodewordLength())
}

//Validate will test if this linearblock satisfies G*H.T=0, where G is the generator matrix and H.T is the transpose of H
func (l *LinearBlock) Validate() bool {
	return internal.ValidateHGMatrices(l.G, l.H)
}

func (l *LinearBlock) String() string {
	buf := strings.Builder{}
	buf.WriteString("{\nH:\n")
	buf.WriteString(l.H.String())
	buf.WriteString("G:\n")
	buf.WriteString(l.G.String())
	buf.WriteString("\n}\n")
	return buf.String()
}
