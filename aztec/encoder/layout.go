package encoder

import "github.com/gocodec/aztec/bitutil"

// Symbol is the finished Aztec matrix plus the symbol parameters needed to
// interpret it (spec.md §3, "Symbol parameters").
type Symbol struct {
	Matrix    *bitutil.BitMatrix
	Compact   bool
	Size      int
	Layers    int
	CodeWords int
}

// BuildMatrix lays out the bullseye, reference grid, mode message, and data
// spiral following spec.md §4.G's domino reading order. messageBits is the
// RS-protected, bit-stuffed, padded codeword stream from the assembler.
func BuildMatrix(p *symbolParams, messageBits *bitutil.BitArray) *Symbol {
	compact, layers, wordSize := p.compact, p.layers, p.wordSize
	messageSizeInWords := p.stuffed.Size() / wordSize
	modeMessage := GenerateModeMessage(compact, layers, messageSizeInWords)

	baseMatrixSize := layers*4 + 11
	if !compact {
		baseMatrixSize = layers*4 + 14
	}
	alignmentMap := make([]int, baseMatrixSize)
	var matrixSize int

	if compact {
		matrixSize = baseMatrixSize
		for i := 0; i < baseMatrixSize; i++ {
			alignmentMap[i] = i
		}
	} else {
		// Every 16 modules a reference-grid line displaces the data spiral
		// outward by one module (spec.md §4.G, "Reference grid").
		matrixSize = baseMatrixSize + 1 + 2*((baseMatrixSize/2-1)/15)
		origCenter := baseMatrixSize / 2
		center := matrixSize / 2
		for i := 0; i < origCenter; i++ {
			newOffset := i + i/15
			alignmentMap[origCenter-i-1] = center - newOffset - 1
			alignmentMap[origCenter+i] = center + newOffset + 1
		}
	}

	matrix := bitutil.NewBitMatrix(matrixSize)

	// Data spiral: each layer's four sides (left, bottom, right, top, i.e.
	// counter-clockwise from the top-left corner) are filled in dominoes of
	// two modules, outermost layer first (spec.md §4.G).
	rowOffset := 0
	for i := 0; i < layers; i++ {
		rowSize := (layers-i)*4 + 9
		if !compact {
			rowSize = (layers-i)*4 + 12
		}
		for j := 0; j < rowSize; j++ {
			columnOffset := j * 2
			for k := 0; k < 2; k++ {
				if messageBits.Get(rowOffset + columnOffset + k) {
					matrix.Set(alignmentMap[i*2+k], alignmentMap[i*2+j])
				}
				if messageBits.Get(rowOffset + rowSize*2 + columnOffset + k) {
					matrix.Set(alignmentMap[i*2+j], alignmentMap[baseMatrixSize-1-i*2-k])
				}
				if messageBits.Get(rowOffset + rowSize*4 + columnOffset + k) {
					matrix.Set(alignmentMap[baseMatrixSize-1-i*2-k], alignmentMap[baseMatrixSize-1-i*2-j])
				}
				if messageBits.Get(rowOffset + rowSize*6 + columnOffset + k) {
					matrix.Set(alignmentMap[baseMatrixSize-1-i*2-j], alignmentMap[i*2+k])
				}
			}
		}
		rowOffset += rowSize * 8
	}

	drawModeMessage(matrix, compact, matrixSize, modeMessage)

	if compact {
		drawBullsEye(matrix, matrixSize/2, 5)
	} else {
		drawBullsEye(matrix, matrixSize/2, 7)
		for i, j := 0, 0; i < baseMatrixSize/2-1; i, j = i+15, j+16 {
			for k := (matrixSize / 2) & 1; k < matrixSize; k += 2 {
				matrix.Set(matrixSize/2-j, k)
				matrix.Set(matrixSize/2+j, k)
				matrix.Set(k, matrixSize/2-j)
				matrix.Set(k, matrixSize/2+j)
			}
		}
	}

	return &Symbol{
		Matrix:    matrix,
		Compact:   compact,
		Size:      matrixSize,
		Layers:    layers,
		CodeWords: messageSizeInWords,
	}
}

// drawBullsEye draws the dark centre module and the concentric dark finder
// rings around it (2 rings compact, 3 rings full-range) and the three
// orientation marks used to resolve the
// symbol's rotation (spec.md §4.G, "Bullseye").
func drawBullsEye(matrix *bitutil.BitMatrix, center, size int) {
	for i := 0; i < size; i += 2 {
		for j := center - i; j <= center+i; j++ {
			matrix.Set(j, center-i)
			matrix.Set(j, center+i)
			matrix.Set(center-i, j)
			matrix.Set(center+i, j)
		}
	}
	matrix.Set(center-size, center-size)
	matrix.Set(center-size+1, center-size)
	matrix.Set(center-size, center-size+1)
	matrix.Set(center+size, center-size)
	matrix.Set(center+size, center-size+1)
	matrix.Set(center+size, center+size-1)
}

// drawModeMessage places the mode message bits in a ring around the
// bullseye, top-left to clockwise, skipping the orientation corners; in
// Full mode the middle module of each side (a reference-grid line) is
// skipped as well (spec.md §4.G, "Mode message").
func drawModeMessage(matrix *bitutil.BitMatrix, compact bool, matrixSize int, modeMessage *bitutil.BitArray) {
	center := matrixSize / 2
	if compact {
		for i := 0; i < 7; i++ {
			offset := center - 3 + i
			if modeMessage.Get(i) {
				matrix.Set(offset, center-5)
			}
			if modeMessage.Get(i + 7) {
				matrix.Set(center+5, offset)
			}
			if modeMessage.Get(20 - i) {
				matrix.Set(offset, center+5)
			}
			if modeMessage.Get(27 - i) {
				matrix.Set(center-5, offset)
			}
		}
		return
	}
	for i := 0; i < 10; i++ {
		offset := center - 5 + i + i/5
		if modeMessage.Get(i) {
			matrix.Set(offset, center-7)
		}
		if modeMessage.Get(i + 10) {
			matrix.Set(center+7, offset)
		}
		if modeMessage.Get(29 - i) {
			matrix.Set(offset, center+7)
		}
		if modeMessage.Get(39 - i) {
			matrix.Set(center-7, offset)
		}
	}
}
