package grid

import (
	"strings"
	"testing"
)

func TestHeightToN_NtoHeight_RoundTripsThroughEachSlab(t *testing.T) {
	for _, h := range []float64{0, 1, 50, 1000, 8848.86, -100, -5000, -50000} {
		n, sign := heightToN(h)
		var slabBottom, slabTop float64
		if sign == '1' {
			// Magnitude n grows toward more negative heights, so the
			// adjacent slab edge is n-1, not n+1 (§9 height mapping).
			slabBottom, slabTop = nToHeight(n, sign), nToHeight(n-1, sign)
		} else {
			slabBottom, slabTop = nToHeight(n, sign), nToHeight(n+1, sign)
		}
		if h < slabBottom-1e-6 || h >= slabTop+1e-6 {
			t.Errorf("height %v not within its own slab [%v,%v)", h, slabBottom, slabTop)
		}
	}
}

func TestHeightToN_SignDigitMatchesSign(t *testing.T) {
	if _, sign := heightToN(100); sign != '0' {
		t.Errorf("positive height: sign digit = %c, want '0'", sign)
	}
	if _, sign := heightToN(-100); sign != '1' {
		t.Errorf("negative height: sign digit = %c, want '1'", sign)
	}
}

// Scenario 4 of the testable-properties table: encoding a positive height
// through level 5 produces a non-empty code starting with the positive sign
// digit '0'.
func TestEncodeHeight_PositiveHeightStartsWithZero(t *testing.T) {
	code, err := EncodeHeight(50, 5)
	if err != nil {
		t.Fatalf("EncodeHeight(50, 5): %v", err)
	}
	if code == "" {
		t.Fatal("EncodeHeight(50, 5) returned an empty string")
	}
	if code[0] != '0' {
		t.Errorf("EncodeHeight(50, 5) = %q, want to start with '0'", code)
	}
}

func TestEncodeHeight_NegativeHeightStartsWithOne(t *testing.T) {
	code, err := EncodeHeight(-50, 5)
	if err != nil {
		t.Fatalf("EncodeHeight(-50, 5): %v", err)
	}
	if code[0] != '1' {
		t.Errorf("EncodeHeight(-50, 5) = %q, want to start with '1'", code)
	}
}

func TestEncodeHeight_LengthGrowsWithLevel(t *testing.T) {
	prevLen := 0
	for l := MinLevel; l <= MaxLevel; l++ {
		code, err := EncodeHeight(500, l)
		if err != nil {
			t.Fatalf("EncodeHeight(500, %d): %v", l, err)
		}
		if len(code) <= prevLen {
			t.Errorf("level %d: length %d did not grow past %d", l, len(code), prevLen)
		}
		prevLen = len(code)
	}
}

func TestEncodeHeight_RejectsInvalidLevel(t *testing.T) {
	if _, err := EncodeHeight(10, 0); err == nil {
		t.Fatal("expected an error for level 0")
	}
	if _, err := EncodeHeight(10, 11); err == nil {
		t.Fatal("expected an error for level 11")
	}
}

func TestFormatParseHeightFragment_RoundTrip(t *testing.T) {
	for l := MinLevel; l <= MaxLevel; l++ {
		radix := elevationEncoding[l].Radix
		for v := 0; v < radix; v++ {
			s := formatHeightFragment(l, v)
			if len(s) != heightFragmentLen(l) {
				t.Fatalf("level %d value %d: fragment %q has length %d, want %d", l, v, s, len(s), heightFragmentLen(l))
			}
			got, err := parseHeightFragment(l, s)
			if err != nil {
				t.Fatalf("level %d value %d: parseHeightFragment(%q): %v", l, v, s, err)
			}
			if got != v {
				t.Errorf("level %d: parseHeightFragment(%q) = %d, want %d", l, s, got, v)
			}
		}
	}
}

func TestParseHeightFragment_RejectsOutOfRadixDigit(t *testing.T) {
	// Level 3's radix is binary; '2' is not a valid binary digit.
	if _, err := parseHeightFragment(3, "2"); err == nil {
		t.Fatal("expected an error for an out-of-radix digit")
	}
}

func TestHeightFragmentValue_SetHeightFragment_RoundTrip(t *testing.T) {
	for l := MinLevel; l <= MaxLevel; l++ {
		br := heightBitRanges[l]
		maxVal := (1 << uint(br.Hi-br.Lo+1)) - 1
		var n uint32
		for v := 0; v <= maxVal; v++ {
			n = setHeightFragment(0, l, v)
			if got := heightFragmentValue(n, l); got != v {
				t.Errorf("level %d value %d: round trip got %d", l, v, got)
			}
		}
	}
}

func TestEncodeHeight_UsesUpperCaseHexDigitsOnly(t *testing.T) {
	code, err := EncodeHeight(123456, MaxLevel)
	if err != nil {
		t.Fatalf("EncodeHeight: %v", err)
	}
	if strings.ToUpper(code) != code {
		t.Errorf("EncodeHeight(123456, 10) = %q, contains lower-case characters", code)
	}
}
