package internal

import (
	mat "github.com/nathanhack/sparsemat"
	"github.com/sirupsen/logrus"
)

//ValidateHGMatrices tests if G*H.T ==0 where H.T is the transpose of H
func ValidateHGMatrices(G, H mat.SparseMat) bool {
	rows, gCols := G.Dims()
	cols, hCols := H.Dims()
	if gCols != hCols {
		logrus.Debugf("G has %v columns but H has %v", gCols, hCols)
		return false
	}

	//we cache the H.T hopefully this is in CSR so this should be way
	// faster than taking the actual H.T() then doing this
	cache := make([]mat.SparseVector, cols)
	for i := 0; i < cols; i++ {
		cache[i] = H.Row(i)
	}
	for i := 0; i < rows; i++ {
		row := G.Row(i)
		for j := 0; j < cols; j++ {
			//equiv to G*H.T
			if row.Dot(cache[j]) > 0 {
				logrus.Debugf("G row %v is not orthogonal to H row %v", i, j)
				return false
			}
		}
	}

	return true
}
