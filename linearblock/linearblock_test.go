package linearblock

import (
	"encoding/json"
	"strconv"
	"testing"

	mat "github.com/nathanhack/sparsemat"
)

// single parity check on 3 bits plus a repetition of the first bit
func smallA() mat.SparseMat {
	return mat.CSRMat(2, 3,
		1, 1, 1,
		1, 0, 0)
}

func TestNewSystematic(t *testing.T) {
	lb := NewSystematic(smallA())

	if lb.MessageLength() != 3 {
		t.Fatalf("expected message length 3 but found %v", lb.MessageLength())
	}
	if lb.ParitySymbols() != 2 {
		t.Fatalf("expected 2 parity symbols but found %v", lb.ParitySymbols())
	}
	if lb.CodewordLength() != 5 {
		t.Fatalf("expected codeword length 5 but found %v", lb.CodewordLength())
	}
	if !lb.Validate() {
		t.Fatalf("expected valid linearblock code")
	}
}

func TestLinearBlock_EncodeDecode(t *testing.T) {
	lb := NewSystematic(smallA())
	tests := []struct {
		message  mat.SparseVector
		expected mat.SparseVector
	}{
		{mat.CSRVec(3, 0, 0, 0), mat.CSRVec(5, 0, 0, 0, 0, 0)},
		{mat.CSRVec(3, 1, 0, 0), mat.CSRVec(5, 1, 0, 0, 1, 1)},
		{mat.CSRVec(3, 0, 1, 1), mat.CSRVec(5, 0, 1, 1, 0, 0)},
		{mat.CSRVec(3, 1, 1, 1), mat.CSRVec(5, 1, 1, 1, 1, 1)},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			codeword := lb.Encode(test.message)
			if !codeword.Equals(test.expected) {
				t.Fatalf("expected %v but found %v", test.expected, codeword)
			}

			if !lb.Syndrome(codeword).IsZero() {
				t.Fatalf("expected zero syndrome for %v", codeword)
			}

			message := lb.Decode(codeword)
			if !message.Equals(test.message) {
				t.Fatalf("expected %v but found %v", test.message, message)
			}
		})
	}
}

func TestLinearBlock_SyndromeDetectsFlip(t *testing.T) {
	lb := NewSystematic(smallA())
	codeword := lb.Encode(mat.CSRVec(3, 1, 0, 1))

	// bit 0 takes part in both checks
	codeword.Set(0, codeword.At(0)+1)
	expected := mat.CSRVec(2, 1, 1)
	actual := lb.Syndrome(codeword)
	if !actual.Equals(expected) {
		t.Fatalf("expected %v but found %v", expected, actual)
	}
}

func TestLinearBlock_JSON(t *testing.T) {
	lb := NewSystematic(smallA())

	bs, err := json.Marshal(lb)
	if err != nil {
		t.Fatalf("expected no error found: %v", err)
	}

	var actual LinearBlock
	err = json.Unmarshal(bs, &actual)
	if err != nil {
		t.Fatalf("expected no error found: %v", err)
	}

	if !actual.H.Equals(lb.H) {
		t.Fatalf("expected \n%v\n but found \n%v\n", lb.H, actual.H)
	}
	if !actual.G.Equals(lb.G) {
		t.Fatalf("expected \n%v\n but found \n%v\n", lb.G, actual.G)
	}
	if !actual.Validate() {
		t.Fatalf("expected valid linearblock code")
	}
	if actual.String() != lb.String() {
		t.Fatalf("expected %v but found %v", lb, &actual)
	}
}
