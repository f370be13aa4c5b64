package encoder

import (
	"testing"

	"github.com/gocodec/aztec/bitutil"
)

func bitString(ba *bitutil.BitArray) string {
	b := make([]byte, ba.Size())
	for i := range b {
		if ba.Get(i) {
			b[i] = '1'
		} else {
			b[i] = '0'
		}
	}
	return string(b)
}

// A short BINARY run: Shift(UPPER) (BS signal) + Binary{0xFF}, starting and
// ending in UPPER, produces BS(11111) + length(00001) + the raw byte.
func TestPackBitsShortBinary(t *testing.T) {
	toks := []Token{
		{Kind: TokenShift, Mode: ModeUpper},
		{Kind: TokenBinary, Bytes: []byte{0xFF}},
	}
	got := bitString(PackBits(toks))
	want := "11111" + "00001" + "11111111"
	if got != want {
		t.Errorf("PackBits = %s, want %s", got, want)
	}
}

// A one-digit FLG: Shift(PUNCT) P/S + Flg(1) + one ASCII digit byte, which
// must be packed using DIGIT's codes/width even though no TokenLatch to
// DIGIT occurred.
func TestPackBitsFlgSingleDigit(t *testing.T) {
	toks := []Token{
		{Kind: TokenShift, Mode: ModePunct},
		{Kind: TokenFlg, Flg: 1},
		{Kind: TokenByte, Bytes: []byte{'3'}},
	}
	got := bitString(PackBits(toks))
	// P/S = 00000 (5 bits, UPPER width); FLG header = 00000 + len(1)=001;
	// digit '3' in DIGIT mode = 2+3=5 -> 0101 (4 bits).
	want := "00000" + "00000" + "001" + "0101"
	if got != want {
		t.Errorf("PackBits = %s, want %s", got, want)
	}
}

// A six-digit FLG (the ECI maximum) forces six consecutive bytes into
// DIGIT mode before the counter resets.
func TestPackBitsFlgSixDigits(t *testing.T) {
	toks := []Token{
		{Kind: TokenShift, Mode: ModePunct},
		{Kind: TokenFlg, Flg: 6},
	}
	for _, d := range []byte("811200") {
		toks = append(toks, Token{Kind: TokenByte, Bytes: []byte{d}})
	}
	// After the six digits, a plain UPPER literal must NOT be forced into
	// DIGIT mode.
	toks = append(toks, Token{Kind: TokenByte, Bytes: []byte{'A'}})

	ba := PackBits(toks)
	got := bitString(ba)
	want := "00000" + "00000" + "110" // P/S + FLG header (len=6)
	for _, d := range []byte("811200") {
		want += toBits(digitCodeForTest(d), 4)
	}
	want += toBits(charMap['A'][ModeUpper], 5)
	if got != want {
		t.Errorf("PackBits = %s, want %s", got, want)
	}
}

func digitCodeForTest(d byte) int { return int(d-'0') + 2 }

func toBits(v, width int) string {
	b := make([]byte, width)
	for i := 0; i < width; i++ {
		if v&(1<<uint(width-1-i)) != 0 {
			b[i] = '1'
		} else {
			b[i] = '0'
		}
	}
	return string(b)
}

// A latch from UPPER to LOWER followed by two literals: the latch opcode
// uses UPPER's 5-bit width, and the literals use LOWER's codes.
func TestPackBitsLatch(t *testing.T) {
	toks := []Token{
		{Kind: TokenLatch, Mode: ModeLower},
		{Kind: TokenByte, Bytes: []byte{'a'}},
		{Kind: TokenByte, Bytes: []byte{'b'}},
	}
	got := bitString(PackBits(toks))
	want := toBits(codeUpperLL, 5) + toBits(charMap['a'][ModeLower], 5) + toBits(charMap['b'][ModeLower], 5)
	if got != want {
		t.Errorf("PackBits = %s, want %s", got, want)
	}
}

// A literal PUNCT two-byte fragment packs as a single PUNCT-width code.
func TestPackBitsPunctPair(t *testing.T) {
	toks := []Token{
		{Kind: TokenLatch, Mode: ModeMixed},
		{Kind: TokenLatch, Mode: ModePunct},
		{Kind: TokenByte, Bytes: []byte("\r\n")},
	}
	ba := PackBits(toks)
	// Last 5 bits should be the code for the \r\n fragment (2).
	last5 := ba.Size() - 5
	got := bitString(ba)[last5:]
	if want := toBits(2, 5); got != want {
		t.Errorf("trailing fragment bits = %s, want %s", got, want)
	}
}

// A BINARY run long enough to need the long-form header (32+ bytes) emits
// the extended 16-bit header (5 zero bits + 11-bit extra length).
func TestEmitBinaryLongForm(t *testing.T) {
	out := bitutil.NewBitArray(0)
	payload := make([]byte, 33)
	emitBinary(out, ModeUpper, payload)
	got := bitString(out)
	wantHeader := toBits(codeBS, 5) + toBits(0, 5) + toBits(33-31, 11)
	if got[:len(wantHeader)] != wantHeader {
		t.Errorf("header = %s, want %s", got[:len(wantHeader)], wantHeader)
	}
	if len(got) != len(wantHeader)+33*8 {
		t.Errorf("total length = %d, want %d", len(got), len(wantHeader)+33*8)
	}
}

func TestCodeForModePanicsOnUnknownFragment(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("codeForMode with an unrecognized 2-byte fragment should panic")
		}
	}()
	codeForMode([]byte{'x', 'y'}, ModePunct)
}
