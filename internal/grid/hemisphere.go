package grid

import (
	"strconv"

	"github.com/mohammed-shakir/h3-spatial-cache/internal/griderrors"
)

// Hemisphere is one of the four lat/lon sign combinations a grid code is
// encoded relative to. Zero-coordinates fall in NE (§4.2, GLOSSARY).
type Hemisphere int

const (
	NE Hemisphere = iota
	NW
	SW
	SE
)

func (h Hemisphere) String() string {
	switch h {
	case NE:
		return "NE"
	case NW:
		return "NW"
	case SW:
		return "SW"
	case SE:
		return "SE"
	default:
		return "?"
	}
}

// LatChar is the hemisphere's leading code character: 'N' or 'S'.
func (h Hemisphere) LatChar() byte {
	if h == NE || h == NW {
		return 'N'
	}
	return 'S'
}

// IsEast reports whether the hemisphere's longitude half is east.
func (h Hemisphere) IsEast() bool {
	return h == NE || h == SE
}

// HemisphereFromPoint derives {NE,NW,SE,SW} from a point: 0 latitude is
// treated as N, 0 longitude as E (§4.2).
func HemisphereFromPoint(p GeoPoint) Hemisphere {
	north := p.Latitude >= 0
	east := p.Longitude >= 0
	switch {
	case north && east:
		return NE
	case north && !east:
		return NW
	case !north && east:
		return SE
	default:
		return SW
	}
}

// HemisphereFromCode extracts the hemisphere from a code's first three
// characters: position 1 for lat direction ('N' -> N else S), positions 2-3
// parsed as a two-digit decimal (>=31 => east, else west). Fails with
// InvalidCode if the code is shorter than 3 characters or positions 2-3 do
// not parse as decimal (§4.2).
func HemisphereFromCode(code string) (Hemisphere, error) {
	if len(code) < 3 {
		return 0, griderrors.InvalidCodef("code too short to carry a hemisphere prefix: %q", code)
	}
	north := code[0] == 'N'
	lngPart, err := strconv.Atoi(code[1:3])
	if err != nil {
		return 0, griderrors.InvalidCodef("code positions 2-3 are not a two-digit decimal: %q", code)
	}
	east := lngPart >= 31
	switch {
	case north && east:
		return NE, nil
	case north && !east:
		return NW, nil
	case !north && east:
		return SE, nil
	default:
		return SW, nil
	}
}

// adjustCounts applies the hemisphere-aware index reversal shared by levels
// 2, 4, 5 and 7-10 (§4.3).
func adjustCounts(h Hemisphere, lng, lat, maxLng, maxLat int) (int, int) {
	switch h {
	case NW:
		return lng, maxLat - lat
	case SW:
		return maxLng - lng, maxLat - lat
	case SE:
		return maxLng - lng, lat
	default: // NE
		return lng, lat
	}
}
