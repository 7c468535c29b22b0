package grid

import (
	"github.com/mohammed-shakir/h3-spatial-cache/internal/griderrors"
)

// Decode2D recovers the corner of the cell a 2D code identifies that lies
// nearest the equator and prime meridian (the south-west corner in the NE
// hemisphere; the hemisphere's signs are applied to both coordinates), along
// with the level that code length implies (§4.4).
func Decode2D(code string) (GeoPoint, Level, error) {
	level, err := LevelFromCodeLength2D(len(code))
	if err != nil {
		return GeoPoint{}, 0, err
	}
	hemi, err := HemisphereFromCode(code)
	if err != nil {
		return GeoPoint{}, 0, err
	}

	lngPart := int(code[1]-'0')*10 + int(code[2]-'0')
	if lngPart == 0 {
		return GeoPoint{}, 0, griderrors.UnsupportedPolar("level-1 longitude index 0 is reserved for the unsupported polar region")
	}
	var lngIdx int
	if hemi.IsEast() {
		lngIdx = lngPart - 31
	} else {
		lngIdx = 30 - lngPart
	}
	if lngIdx < 0 || lngIdx > 59 {
		return GeoPoint{}, 0, griderrors.InvalidCodef("code %q has an out-of-range level-1 longitude fragment", code)
	}
	latIdx := int(code[3] - 'A')
	if latIdx < 0 || latIdx > 21 {
		return GeoPoint{}, 0, griderrors.InvalidCodef("code %q has an out-of-range level-1 latitude fragment", code)
	}

	lonSeconds := float64(lngIdx) * gridSizesSeconds[1][0]
	latSeconds := float64(latIdx) * gridSizesSeconds[1][1]

	for l := Level(2); l <= level; l++ {
		start, end := code2DLength[l-1], code2DLength[l]
		if end > len(code) {
			return GeoPoint{}, 0, griderrors.InvalidCodef("code %q is too short for level %d", code, l)
		}
		frag := code[start:end]

		lng, lat, err := decodeFragment2D(l, hemi, frag)
		if err != nil {
			return GeoPoint{}, 0, err
		}
		lonSeconds += float64(lng) * gridSizesSeconds[l][0]
		latSeconds += float64(lat) * gridSizesSeconds[l][1]
	}

	lon := lonSeconds / 3600.0
	lat := latSeconds / 3600.0
	if !hemi.IsEast() {
		lon = -lon
	}
	if hemi.LatChar() == 'S' {
		lat = -lat
	}

	p := GeoPoint{Longitude: lon, Latitude: lat}
	if p.IsPolar() {
		return GeoPoint{}, 0, griderrors.UnsupportedPolar("decoded latitude is within the unsupported polar region")
	}
	return p, level, nil
}

// decodeFragment2D inverts encodeFragment2D, returning the raw (hemisphere-
// independent) 0-based cell indices the fragment encodes.
func decodeFragment2D(l Level, h Hemisphere, frag string) (lng, lat int, err error) {
	maxLng, maxLat := gridDivisions[l].Lon-1, gridDivisions[l].Lat-1
	if l == 4 || l == 5 {
		// decodeLevel4_5 in the original inverts against a fixed 14-14
		// bound regardless of level 4's 15x10 divisions; mirror encodeFragment2D.
		maxLng, maxLat = 14, 14
	}
	switch l {
	case 3:
		n, err := parseHexDigit(frag)
		if err != nil {
			return 0, 0, griderrors.InvalidCodef("level-3 fragment %q is not a single hex digit", frag)
		}
		return decodeZ3(h, n)
	case 6:
		n, err := parseHexDigit(frag)
		if err != nil {
			return 0, 0, griderrors.InvalidCodef("level-6 fragment %q is not a single hex digit", frag)
		}
		return decodeZ6(h, n)
	default:
		if len(frag) != 2 {
			return 0, 0, griderrors.InvalidCodef("level-%d fragment %q is not a hex pair", l, frag)
		}
		aLng, err := parseHexDigit(frag[0:1])
		if err != nil {
			return 0, 0, griderrors.InvalidCodef("level-%d fragment %q is not a hex pair", l, frag)
		}
		aLat, err := parseHexDigit(frag[1:2])
		if err != nil {
			return 0, 0, griderrors.InvalidCodef("level-%d fragment %q is not a hex pair", l, frag)
		}
		lng, lat = adjustCounts(h, aLng, aLat, maxLng, maxLat)
		return lng, lat, nil
	}
}

func parseHexDigit(s string) (int, error) {
	if len(s) != 1 {
		return 0, errInvalidDigit
	}
	return digitValue(s[0])
}
