package encoder

import (
	"errors"
	"fmt"

	"github.com/gocodec/aztec/bitutil"
	"github.com/gocodec/aztec/reedsolomon"
)

// ErrPayloadTooLarge is returned when the bit-packed payload (plus its
// error-correction overhead) exceeds the largest Aztec symbol's capacity
// (spec.md §7).
var ErrPayloadTooLarge = errors.New("aztec: data too large for any symbol")

// wordSizeTable[layers] gives the codeword bit width for that layer count,
// per spec.md §3: k=6 for layers<=2, k=8 for layers<=8, k=10 for
// layers<=22, k=12 otherwise. Index 0 is the mode message's own width (4).
var wordSizeTable = [33]int{
	4, 6, 6, 8, 8, 8, 8, 8, 8, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10,
	12, 12, 12, 12, 12, 12, 12, 12, 12, 12,
}

// gfForWordSize returns the Galois Field matching a codeword bit width.
func gfForWordSize(ws int) *reedsolomon.GenericGF {
	switch ws {
	case 4:
		return reedsolomon.AztecParam
	case 6:
		return reedsolomon.AztecData6
	case 8:
		return reedsolomon.AztecData8
	case 10:
		return reedsolomon.AztecData10
	case 12:
		return reedsolomon.AztecData12
	default:
		panic(fmt.Sprintf("aztec: unsupported word size %d", ws))
	}
}

// totalBitsInLayer is the raw module capacity (before subtracting the mode
// message / bullseye) of a symbol with the given layer count.
func totalBitsInLayer(layers int, compact bool) int {
	base := 112
	if compact {
		base = 88
	}
	return (base + 16*layers) * layers
}

// stuffBits applies the bit-stuffing rule from spec.md §4.F: a k-bit group
// that is all-zero or all-one is forbidden (those codewords are reserved),
// so its upper bits are kept and the LSB is forced to the opposite polarity,
// with the read position backed up by one bit to resynchronize.
func stuffBits(bits *bitutil.BitArray, wordSize int) *bitutil.BitArray {
	out := bitutil.NewBitArray(0)
	n := bits.Size()
	mask := (1 << uint(wordSize)) - 2 // all bits except the LSB

	for i := 0; i < n; i += wordSize {
		word := 0
		for j := 0; j < wordSize; j++ {
			if i+j >= n || bits.Get(i+j) {
				word |= 1 << uint(wordSize-1-j)
			}
		}
		switch word & mask {
		case mask: // upper bits all 1: force LSB to 0, back up a bit
			out.AppendBits(uint32(word&mask), wordSize)
			i--
		case 0: // upper bits all 0: force LSB to 1, back up a bit
			out.AppendBits(uint32(word|1), wordSize)
			i--
		default:
			out.AppendBits(uint32(word), wordSize)
		}
	}
	return out
}

// symbolParams is the chosen size, carried from ChooseSize into the
// codeword and layout stages.
type symbolParams struct {
	compact          bool
	layers           int
	wordSize         int
	totalBitsInLayer int
	stuffed          *bitutil.BitArray
}

// ChooseSize implements spec.md §4.F's size selection: the smallest
// (compact, layers) whose data-bit capacity accommodates the bit-stuffed
// payload plus ecPercent's error-correction overhead, trying Compact1-4
// then Full4-32 (Full1-3 are skipped: Compact(i+1) has the same module
// count with more usable data bits).
func ChooseSize(bits *bitutil.BitArray, ecPercent int, userLayers int) (*symbolParams, error) {
	eccBits := bits.Size()*ecPercent/100 + 11
	totalSizeBits := bits.Size() + eccBits

	if userLayers != 0 {
		compact := userLayers < 0
		layers := userLayers
		if compact {
			layers = -layers
		}
		maxLayers := 32
		if compact {
			maxLayers = 4
		}
		if layers < 1 || layers > maxLayers {
			return nil, fmt.Errorf("%w: illegal layer value %d", ErrPayloadTooLarge, userLayers)
		}
		inLayer := totalBitsInLayer(layers, compact)
		wordSize := wordSizeTable[layers]
		usableBits := inLayer - (inLayer % wordSize)
		stuffed := stuffBits(bits, wordSize)
		if stuffed.Size()+eccBits > usableBits {
			return nil, fmt.Errorf("%w: for user specified layer", ErrPayloadTooLarge)
		}
		if compact && stuffed.Size() > wordSize*64 {
			return nil, fmt.Errorf("%w: for user specified layer", ErrPayloadTooLarge)
		}
		return &symbolParams{compact: compact, layers: layers, wordSize: wordSize, totalBitsInLayer: inLayer, stuffed: stuffed}, nil
	}

	var stuffed *bitutil.BitArray
	wordSize := 0
	for i := 0; i <= 32; i++ {
		compact := i <= 3
		layers := i
		if compact {
			layers = i + 1
		}
		inLayer := totalBitsInLayer(layers, compact)
		if totalSizeBits > inLayer {
			continue
		}
		if stuffed == nil || wordSize != wordSizeTable[layers] {
			wordSize = wordSizeTable[layers]
			stuffed = stuffBits(bits, wordSize)
		}
		usableBits := inLayer - (inLayer % wordSize)
		if compact && stuffed.Size() > wordSize*64 {
			continue
		}
		if stuffed.Size()+eccBits <= usableBits {
			return &symbolParams{compact: compact, layers: layers, wordSize: wordSize, totalBitsInLayer: inLayer, stuffed: stuffed}, nil
		}
	}
	return nil, ErrPayloadTooLarge
}

// GenerateCheckWords Reed-Solomon-encodes stuffedBits and returns a bit
// stream exactly totalBits long (with leading zero padding before the
// first data codeword, per spec.md §4.F step 4).
func GenerateCheckWords(stuffedBits *bitutil.BitArray, totalBits, wordSize int) *bitutil.BitArray {
	messageSizeInWords := stuffedBits.Size() / wordSize
	totalWords := totalBits / wordSize

	messageWords := bitsToWords(stuffedBits, wordSize, totalWords)

	rs := reedsolomon.NewEncoder(gfForWordSize(wordSize))
	rs.Encode(messageWords, totalWords-messageSizeInWords)

	startPad := totalBits % wordSize
	out := bitutil.NewBitArray(0)
	out.AppendBits(0, startPad)
	for _, w := range messageWords {
		out.AppendBits(uint32(w), wordSize)
	}
	return out
}

func bitsToWords(stuffedBits *bitutil.BitArray, wordSize, totalWords int) []int {
	message := make([]int, totalWords)
	n := stuffedBits.Size() / wordSize
	for i := 0; i < n; i++ {
		value := 0
		for j := 0; j < wordSize; j++ {
			if stuffedBits.Get(i*wordSize + j) {
				value |= 1 << uint(wordSize-1-j)
			}
		}
		message[i] = value
	}
	return message
}

// GenerateModeMessage builds and RS-protects the mode message (spec.md
// §4.G): (layers-1, codewords-1) over GF(16), regardless of the data
// codeword width (spec.md §9, "Mode message RS").
func GenerateModeMessage(compact bool, layers, messageSizeInWords int) *bitutil.BitArray {
	modeMessage := bitutil.NewBitArray(0)
	if compact {
		modeMessage.AppendBits(uint32(layers-1), 2)
		modeMessage.AppendBits(uint32(messageSizeInWords-1), 6)
		return GenerateCheckWords(modeMessage, 28, 4)
	}
	modeMessage.AppendBits(uint32(layers-1), 5)
	modeMessage.AppendBits(uint32(messageSizeInWords-1), 11)
	return GenerateCheckWords(modeMessage, 40, 4)
}

// Assemble runs the codeword assembler (F) and symbol layout (G) stages
// back to back: choose a symbol size for bits, Reed-Solomon protect it,
// and lay out the resulting matrix. This is the entry point component H
// (the facade) calls after the sequencer and bit packer have run.
func Assemble(bits *bitutil.BitArray, ecPercent, layers int) (*Symbol, error) {
	params, err := ChooseSize(bits, ecPercent, layers)
	if err != nil {
		return nil, err
	}
	messageBits := GenerateCheckWords(params.stuffed, params.totalBitsInLayer, params.wordSize)
	return BuildMatrix(params, messageBits), nil
}
