package grid

import (
	"strings"

	"github.com/mohammed-shakir/h3-spatial-cache/internal/griderrors"
)

// Decode3D recovers the bottom corner of the cell a 3D code identifies that
// lies nearest the equator and prime meridian (see Decode2D), along with its
// level. Height is reconstructed via the
// logarithmic inverse (height.go), not the original implementation's linear
// GRID_SIZES_3D table — that table is kept only as a range-query
// pre-filter (§12 supplemented-features).
func Decode3D(code string) (GeoPoint, Level, error) {
	level, err := LevelFromCodeLength3D(len(code))
	if err != nil {
		return GeoPoint{}, 0, err
	}
	if len(code) < 2 {
		return GeoPoint{}, 0, griderrors.InvalidCodef("code %q is too short to carry a hemisphere and sign digit", code)
	}
	// A 3D code carries the height sign digit between the latitude letter and
	// the level-1 longitude digits, so skip it when classifying the hemisphere.
	hemi, err := HemisphereFromCode(code[0:1] + code[2:4])
	if err != nil {
		return GeoPoint{}, 0, err
	}
	signDigit := code[1]
	if signDigit != '0' && signDigit != '1' {
		return GeoPoint{}, 0, griderrors.InvalidCodef("code %q has an invalid height sign digit %q", code, signDigit)
	}

	pos := 2
	var lonSeconds, latSeconds float64
	var n uint32

	for l := MinLevel; l <= level; l++ {
		fragLen := code2DLength[l] - code2DLength[l-1]
		heightLen := heightFragmentLen(l)
		if pos+fragLen+heightLen > len(code) {
			return GeoPoint{}, 0, griderrors.InvalidCodef("code %q is too short at level %d", code, l)
		}
		frag2D := code[pos : pos+fragLen]
		pos += fragLen
		fragH := code[pos : pos+heightLen]
		pos += heightLen

		var lng, lat int
		if l == 1 {
			lng, lat, err = decodeLevel1Fragment(hemi, frag2D)
		} else {
			lng, lat, err = decodeFragment2D(l, hemi, frag2D)
		}
		if err != nil {
			return GeoPoint{}, 0, err
		}
		lonSeconds += float64(lng) * gridSizesSeconds[l][0]
		latSeconds += float64(lat) * gridSizesSeconds[l][1]

		hVal, err := parseHeightFragment(l, fragH)
		if err != nil {
			return GeoPoint{}, 0, err
		}
		n = setHeightFragment(n, l, hVal)
	}

	lon := lonSeconds / 3600.0
	lat := latSeconds / 3600.0
	if !hemi.IsEast() {
		lon = -lon
	}
	if hemi.LatChar() == 'S' {
		lat = -lat
	}
	height := nToHeight(n, signDigit)

	p := GeoPoint{Longitude: lon, Latitude: lat, Height: height}
	if p.IsPolar() {
		return GeoPoint{}, 0, griderrors.UnsupportedPolar("decoded latitude is within the unsupported polar region")
	}
	return p, level, nil
}

// decodeLevel1Fragment inverts encodeLevel1's "NN L" layout (two decimal
// digits, one letter) at the position it occupies in a 3D code.
func decodeLevel1Fragment(h Hemisphere, frag string) (lng, lat int, err error) {
	if len(frag) != 3 {
		return 0, 0, griderrors.InvalidCodef("level-1 fragment %q is not 3 characters", frag)
	}
	lngPart := int(frag[0]-'0')*10 + int(frag[1]-'0')
	if lngPart == 0 {
		return 0, 0, griderrors.UnsupportedPolar("level-1 longitude index 0 is reserved for the unsupported polar region")
	}
	if h.IsEast() {
		lng = lngPart - 31
	} else {
		lng = 30 - lngPart
	}
	if lng < 0 || lng > 59 {
		return 0, 0, griderrors.InvalidCodef("level-1 fragment %q has an out-of-range longitude digit", frag)
	}
	lat = int(frag[2] - 'A')
	if lat < 0 || lat > 21 {
		return 0, 0, griderrors.InvalidCodef("level-1 fragment %q has an out-of-range latitude letter", frag)
	}
	return lng, lat, nil
}

// Extract2DCode pulls the 2D sub-code a 3D code carries at level, without a
// full height decode (grounded on BeiDouGridDecoder.extract2DCode, §12).
func Extract2DCode(code3D string, level Level) (string, error) {
	maxLevel, err := LevelFromCodeLength3D(len(code3D))
	if err != nil {
		return "", err
	}
	if err := checkLevel(level); err != nil {
		return "", err
	}
	if level > maxLevel {
		return "", griderrors.InvalidArgumentf("level %d exceeds the code's own level %d", level, maxLevel)
	}
	if len(code3D) < 2 {
		return "", griderrors.InvalidCodef("code %q is too short to carry a hemisphere and sign digit", code3D)
	}

	var b strings.Builder
	b.WriteByte(code3D[0])

	pos := 2
	for l := MinLevel; l <= level; l++ {
		fragLen := code2DLength[l] - code2DLength[l-1]
		heightLen := heightFragmentLen(l)
		if pos+fragLen > len(code3D) {
			return "", griderrors.InvalidCodef("code %q is too short at level %d", code3D, l)
		}
		b.WriteString(code3D[pos : pos+fragLen])
		pos += fragLen + heightLen
	}
	return b.String(), nil
}
