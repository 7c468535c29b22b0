package grid

import (
	"math"

	"github.com/mohammed-shakir/h3-spatial-cache/internal/griderrors"
)

var errInvalidDigit = griderrors.InvalidArgument("invalid digit")

func errBadHeightDigit(l Level, s string) error {
	return griderrors.InvalidCodef("level %d height fragment %q is not valid radix-%d", l, s, elevationEncoding[l].Radix)
}

// The height mapping is logarithmic: ellipsoidal height maps to a 32-bit
// integer n via theta/theta0 constants taken from GB/T 39409-2020 Annex C.
//
// Two variants of these constants exist in the source this codec is
// grounded on: an earlier one using theta=1/(2048*3600), theta0=1 with
// ln(1+theta0*pi/180), and a later one using theta=pi/(180*3600*2048),
// theta0=pi/180 with ln(1+theta0) — radians throughout. They are
// algebraically equivalent only if the earlier variant is read with theta0
// also converted to radians before the log, which its own formula does not
// do. We ship only the later, radians-consistent variant: no reference
// vectors are available in this pack to adjudicate between the two, and a
// feature flag would just move that ambiguity into the API instead of
// resolving it (§9, §14 of SPEC_FULL.md).
const (
	heightTheta0 = math.Pi / 180
	heightTheta  = math.Pi / (180 * 3600 * 2048)
)

// heightToN maps an ellipsoidal height (metres) to its signed level-10
// magnitude n and sign digit ('0' positive/zero, '1' negative).
func heightToN(height float64) (n uint32, signDigit byte) {
	ratio := (height + EarthRadius) / EarthRadius
	raw := math.Floor((heightTheta0 / heightTheta) * (math.Log(ratio) / math.Log(1+heightTheta0)))
	signDigit = byte('0')
	if raw < 0 {
		signDigit = '1'
		raw = -raw
	}
	return uint32(raw), signDigit
}

// nToHeight is the inverse mapping: the bottom of the slab identified by n
// and its sign digit. The sign flips the exponent, not the result — height
// is monotonic in the signed magnitude n represents, so negating the whole
// positive-branch value would shift every negative-height slab by the gap
// between (1+theta0)^u and -(1+theta0)^u, off by metres at n's upper end.
func nToHeight(n uint32, signDigit byte) float64 {
	exponent := float64(n) * heightTheta / heightTheta0
	if signDigit == '1' {
		exponent = -exponent
	}
	return math.Pow(1+heightTheta0, exponent)*EarthRadius - EarthRadius
}

// heightFragmentValue extracts the bit field level l contributes from the
// 31-bit magnitude n, per the HEIGHT_BIT_RANGES table (§3, §4.5). The bit
// range is 1-indexed from the LSB; shifting and masking by it directly is
// equivalent to, and simpler than, building a 32-character binary string
// and slicing substrings out of it as the original implementation does.
func heightFragmentValue(n uint32, l Level) int {
	br := heightBitRanges[l]
	bits := br.Hi - br.Lo + 1
	mask := uint32(1)<<uint(bits) - 1
	return int((n >> uint(br.Lo-1)) & mask)
}

// setHeightFragment folds a decoded fragment value back into n at level l's
// bit range.
func setHeightFragment(n uint32, l Level, value int) uint32 {
	br := heightBitRanges[l]
	bits := br.Hi - br.Lo + 1
	mask := uint32(1)<<uint(bits) - 1
	return n | (uint32(value) & mask << uint(br.Lo-1))
}

// EncodeHeight renders the height-only fragment of a 3D code through level
// l: the sign digit followed by each level's height fragment, with no 2D
// interleaving. Grounded on BeiDouGridEncoder.encode3DAltitude, which the
// full Encode3D reuses the bit layout of but not this entry point (§12
// supplemented-features).
func EncodeHeight(height float64, l Level) (string, error) {
	if err := checkLevel(l); err != nil {
		return "", err
	}
	n, sign := heightToN(height)
	buf := make([]byte, 0, 1+2*int(l))
	buf = append(buf, sign)
	for i := MinLevel; i <= l; i++ {
		buf = append(buf, formatHeightFragment(i, heightFragmentValue(n, i))...)
	}
	return string(buf), nil
}

const hexDigits = "0123456789ABCDEF"

// formatHeightFragment renders value in the level's radix, upper-case,
// zero-padded to heightFragmentLen(l) characters (2 at level 1, else 1).
func formatHeightFragment(l Level, value int) string {
	radix := elevationEncoding[l].Radix
	width := heightFragmentLen(l)
	buf := make([]byte, width)
	v := value
	for i := width - 1; i >= 0; i-- {
		buf[i] = hexDigits[v%radix]
		v /= radix
	}
	return string(buf)
}

// parseHeightFragment inverts formatHeightFragment.
func parseHeightFragment(l Level, s string) (int, error) {
	radix := elevationEncoding[l].Radix
	v := 0
	for i := 0; i < len(s); i++ {
		d, err := digitValue(s[i])
		if err != nil || d >= radix {
			return 0, errBadHeightDigit(l, s)
		}
		v = v*radix + d
	}
	return v, nil
}

func digitValue(c byte) (int, error) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), nil
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, nil
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, nil
	default:
		return 0, errInvalidDigit
	}
}
