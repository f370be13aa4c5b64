package reedsolomon

import (
	"testing"

	"pgregory.net/rapid"
)

// These three cases are the reference vectors an Aztec encoder is expected
// to reproduce exactly: the same (message, nd, nc, gf, poly) tuples and
// outputs as the distillation source's test_reed_solomon (see
// original_source/test_aztec_code_generator.py), generalized here to the
// GenericGF/Encoder API.
func TestEncodeKnownVectors(t *testing.T) {
	cases := []struct {
		name     string
		message  []int
		nd, nc   int
		field    *GenericGF
		expected []int
	}{
		{
			name:     "all-zero GF16",
			message:  []int{0, 0},
			nd:       2,
			nc:       2,
			field:    AztecParam,
			expected: []int{0, 0, 0, 0},
		},
		{
			name:     "GF16 with a 9",
			message:  []int{0, 9},
			nd:       2,
			nc:       5,
			field:    AztecParam,
			expected: []int{0, 9, 12, 2, 3, 1, 9},
		},
		{
			name:     "GF64 ten-word message",
			message:  []int{9, 50, 1, 41, 47, 2, 39, 37, 1, 27},
			nd:       10,
			nc:       7,
			field:    AztecData6,
			expected: []int{9, 50, 1, 41, 47, 2, 39, 37, 1, 27, 38, 50, 8, 16, 10, 20, 40},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			toEncode := make([]int, tc.nd+tc.nc)
			copy(toEncode, tc.message)

			NewEncoder(tc.field).Encode(toEncode, tc.nc)

			if len(toEncode) != len(tc.expected) {
				t.Fatalf("len = %d, want %d", len(toEncode), len(tc.expected))
			}
			for i, want := range tc.expected {
				if toEncode[i] != want {
					t.Errorf("codeword[%d] = %d, want %d", i, toEncode[i], want)
				}
			}
		})
	}
}

func TestEncodePanicsWithoutParity(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Encode with ecBytes=0 should panic: nc=0 is a caller error")
		}
	}()
	NewEncoder(AztecData8).Encode([]int{1, 2, 3}, 0)
}

// rs(data=[], nd=0, nc>0) must succeed and emit nc zero codewords rather
// than panic: an empty payload is a legitimate caller input (e.g. encoding
// zero bytes), not a programmer error.
func TestEncodeWithNoDataBytesEmitsZeroParity(t *testing.T) {
	toEncode := make([]int, 5)
	NewEncoder(AztecData8).Encode(toEncode, 5)
	for i, w := range toEncode {
		if w != 0 {
			t.Errorf("codeword[%d] = %d, want 0", i, w)
		}
	}
}

// TestGeneratorPolynomialEvaluatesToZero checks spec.md §8 property #4: the
// full codeword polynomial (data + parity), evaluated at every root of the
// generator used to build it, must equal zero.
func TestGeneratorPolynomialEvaluatesToZero(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		field := AztecData8
		nd := rapid.IntRange(1, 20).Draw(t, "nd")
		nc := rapid.IntRange(2, 10).Draw(t, "nc")

		toEncode := make([]int, nd+nc)
		for i := 0; i < nd; i++ {
			toEncode[i] = rapid.IntRange(0, field.Size()-1).Draw(t, "datum")
		}
		NewEncoder(field).Encode(toEncode, nc)

		poly := newGenericGFPoly(field, toEncode)
		for i := 1; i <= nc; i++ {
			root := field.Exp((i - 1 + field.GeneratorBase()) % (field.Size() - 1))
			if poly.EvaluateAt(root) != 0 {
				t.Fatalf("codeword polynomial nonzero at root alpha^%d", i)
			}
		}
	})
}

func TestGFArithmeticRoundTrip(t *testing.T) {
	field := AztecData10
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.IntRange(1, field.Size()-1).Draw(t, "a")
		b := rapid.IntRange(1, field.Size()-1).Draw(t, "b")
		product := field.Multiply(a, b)
		if product == 0 {
			t.Fatalf("product of two nonzero elements must be nonzero")
		}
		if field.Multiply(product, field.Inverse(b)) != a {
			t.Fatalf("(a*b)*b^-1 != a for a=%d b=%d", a, b)
		}
	})
}

func TestGenericGFPolyBasics(t *testing.T) {
	field := AztecData8
	zero := field.Zero()
	if !zero.IsZero() {
		t.Error("zero should be zero")
	}
	one := field.One()
	if one.IsZero() || one.Degree() != 0 {
		t.Error("one should be nonzero with degree 0")
	}

	p := newGenericGFPoly(field, []int{2, 3}) // p(x) = 2x + 3
	if p.EvaluateAt(0) != 3 {
		t.Errorf("p(0) = %d, want 3", p.EvaluateAt(0))
	}
}
