package aztec

import "testing"

func ecp(n int) *int { return &n }

func TestEncodePlainTextProducesSquareMatrix(t *testing.T) {
	res, err := Encode(NewBytePayload([]byte("HELLO WORLD")), Options{})
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	if res.Matrix.Width() != res.Size || res.Matrix.Height() != res.Size {
		t.Fatalf("matrix dimensions = %dx%d, want %dx%d", res.Matrix.Width(), res.Matrix.Height(), res.Size, res.Size)
	}
	if res.Layers < 1 {
		t.Errorf("layers = %d, want >= 1", res.Layers)
	}
}

func TestEncodeDefaultECPercent(t *testing.T) {
	withDefault, err := Encode(NewBytePayload([]byte("X")), Options{})
	if err != nil {
		t.Fatalf("Encode (default): %v", err)
	}
	withExplicit, err := Encode(NewBytePayload([]byte("X")), Options{ECPercent: ecp(DefaultECPercent)})
	if err != nil {
		t.Fatalf("Encode (explicit 23): %v", err)
	}
	if withDefault.Size != withExplicit.Size || withDefault.Layers != withExplicit.Layers {
		t.Error("a nil ECPercent should default to the same result as an explicit 23")
	}
}

// ECPercent: 0 is a legal caller request ("no Reed-Solomon redundancy",
// spec.md §6) and must be reachable through Options, not silently upgraded
// to the default. See TestChooseSizeZeroVsDefaultECPercentDiffer in
// aztec/encoder for a boundary case proving 0 actually changes the
// computed overhead rather than merely being accepted without error.
func TestEncodeZeroECPercentIsAccepted(t *testing.T) {
	if _, err := Encode(NewBytePayload([]byte("X")), Options{ECPercent: ecp(0)}); err != nil {
		t.Fatalf("Encode (ec_percent=0): %v", err)
	}
}

func TestEncodeRejectsInvalidECPercent(t *testing.T) {
	for _, ec := range []int{-1, 101} {
		if _, err := Encode(NewBytePayload([]byte("x")), Options{ECPercent: ecp(ec)}); err == nil {
			t.Errorf("Encode with ec_percent=%d should return ErrInvalidECParameter", ec)
		}
	}
}

func TestEncodeRejectsUnknownEncoding(t *testing.T) {
	_, err := Encode(Payload{Bytes: []byte("x"), Encoding: "not-a-real-encoding"}, Options{})
	if err == nil {
		t.Fatal("Encode with an unknown encoding name should return an error")
	}
}

func TestNewTextPayloadTranscodesAndTagsEncoding(t *testing.T) {
	p, err := NewTextPayload("café", "iso8859-1")
	if err != nil {
		t.Fatalf("NewTextPayload returned error: %v", err)
	}
	if p.Encoding != "iso8859-1" {
		t.Errorf("Encoding = %q, want iso8859-1", p.Encoding)
	}
	want := []byte{'c', 'a', 'f', 0xE9}
	if string(p.Bytes) != string(want) {
		t.Errorf("Bytes = %v, want %v", p.Bytes, want)
	}
}

func TestEncodeWithECIAnnouncesEncoding(t *testing.T) {
	p, err := NewTextPayload("hello", "iso8859-7")
	if err != nil {
		t.Fatalf("NewTextPayload: %v", err)
	}
	res, err := Encode(p, Options{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if res.Layers < 1 {
		t.Errorf("layers = %d, want >= 1", res.Layers)
	}
}

func TestEncodeRejectsOversizedPayload(t *testing.T) {
	huge := make([]byte, 20000)
	for i := range huge {
		huge[i] = byte('0' + i%10)
	}
	if _, err := Encode(NewBytePayload(huge), Options{}); err == nil {
		t.Fatal("Encode with a payload too large for any symbol should return an error")
	}
}
