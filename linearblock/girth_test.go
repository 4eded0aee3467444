package linearblock

import (
	"context"
	"strconv"
	"testing"

	mat "github.com/nathanhack/sparsemat"
)

func TestGirth(t *testing.T) {
	tests := []struct {
		h        mat.SparseMat
		expected int
	}{
		{mat.CSRIdentity(50), -1},
		{mat.CSRMat(2, 2, 1, 1, 1, 1), 4},
		{mat.CSRMat(2, 2, 1, 0, 0, 1), -1},
		{mat.CSRMat(2, 2, 1, 0, 1, 0), -1},
		{mat.CSRMat(4, 8, 1, 1, 1, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 0, 1, 0, 0, 0, 0, 0, 1, 1), 8},
		{mat.CSRMat(3, 6, 1, 1, 1, 0, 0, 0, 0, 0, 1, 1, 1, 0, 1, 0, 0, 0, 1, 1), 6},
		{NewSystematic(smallA()).H, -1},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			actual := Girth(context.Background(), test.h, 2)
			if actual != test.expected {
				t.Fatalf("expected %v but found %v", test.expected, actual)
			}
		})
	}
}

func TestShortestCycle(t *testing.T) {
	adjacent := tanner(mat.CSRMat(3, 6, 1, 1, 1, 0, 0, 0, 0, 0, 1, 1, 1, 0, 1, 0, 0, 0, 1, 1))

	if actual := shortestCycle(adjacent, 0, -1); actual != 6 {
		t.Fatalf("expected 6 but found %v", actual)
	}
	if actual := shortestCycle(adjacent, 0, 6); actual != -1 {
		t.Fatalf("expected -1 but found %v", actual)
	}
}

func BenchmarkGirth(b *testing.B) {
	h := mat.CSRIdentity(1000)
	for i := 0; i < 1000-2; i += 2 {
		h.SetMatrix(mat.CSRMat(2, 2, 1, 1, 1, 1), i, i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Girth(context.Background(), h, 0)
	}
}
