package grid

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mohammed-shakir/h3-spatial-cache/internal/griderrors"
)

// Encode2D produces the 2D grid code for p at the given level (§4.2, §4.3).
// Points at or above 88 degrees latitude are rejected: the standard's
// per-level fan-outs do not cover the polar caps (§7).
func Encode2D(p GeoPoint, level Level) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	if err := checkLevel(level); err != nil {
		return "", err
	}
	if p.IsPolar() {
		return "", griderrors.UnsupportedPolar(fmt.Sprintf("latitude %g is within the unsupported polar region", p.Latitude))
	}

	hemi := HemisphereFromPoint(p)
	var b strings.Builder
	b.WriteByte(hemi.LatChar())

	lon := decimal.NewFromFloat(p.Longitude).Abs()
	lat := decimal.NewFromFloat(p.Latitude).Abs()

	for l := MinLevel; l <= level; l++ {
		size := gridSizesDegrees[l]
		lngCount := lon.Div(size.Lon).Floor()
		latCount := lat.Div(size.Lat).Floor()

		lngIdxInt := int(lngCount.IntPart())
		latIdxInt := int(latCount.IntPart())

		frag, err := encodeFragment2D(l, hemi, lngIdxInt, latIdxInt)
		if err != nil {
			return "", err
		}
		b.WriteString(frag)

		lon = lon.Sub(lngCount.Mul(size.Lon))
		lat = lat.Sub(latCount.Mul(size.Lat))
	}
	return b.String(), nil
}

// encodeFragment2D dispatches to the per-level encoding rule. lng/lat are
// the 0-based cell indices within the current level's fan-out, counted from
// the equator/prime-meridian side of the hemisphere (i.e. always
// non-negative magnitudes, not yet hemisphere-adjusted).
func encodeFragment2D(l Level, h Hemisphere, lng, lat int) (string, error) {
	switch l {
	case 1:
		return encodeLevel1(h, lng, lat)
	case 3:
		z, err := encodeZ3(h, lng, lat)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d", z), nil
	case 6:
		z, err := encodeZ6(h, lng, lat)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d", z), nil
	case 4, 5:
		// Levels 4 and 5 adjust against a fixed (14,14) bound, not
		// against their own fan-out minus one: encodeLevel4_5 in the
		// original hard-codes 14 regardless of level 4's 15x10 divisions.
		aLng, aLat := adjustCounts(h, lng, lat, 14, 14)
		return toHexPair(aLng, aLat)
	default:
		aLng, aLat := adjustCounts(h, lng, lat, gridDivisions[l].Lon-1, gridDivisions[l].Lat-1)
		return toHexPair(aLng, aLat)
	}
}

// encodeLevel1 is the 6x4-degree top level: longitude index is folded to a
// 1-60 "hour" value via the standard's lng+31 (east) / 30-lng (west) remap,
// rendered as two
// decimal digits, followed by a single letter A-V for the latitude band
// (§4.3, GLOSSARY "level-1 fragment").
func encodeLevel1(h Hemisphere, lng, lat int) (string, error) {
	var lp int
	if h.IsEast() {
		lp = lng + 31
	} else {
		lp = 30 - lng
	}
	if lp < 0 || lp > 60 {
		return "", griderrors.InvalidArgumentf("level-1 longitude index out of range: %d", lng)
	}
	if lat < 0 || lat > 21 {
		return "", griderrors.InvalidArgumentf("level-1 latitude index out of range: %d", lat)
	}
	letter := byte('A' + lat)
	return fmt.Sprintf("%02d%c", lp, letter), nil
}

// toHexPair renders two 0-15 indices as adjacent upper-case hex digits, used
// at levels 2, 4, 5 and 7-10 (§4.3).
func toHexPair(lng, lat int) (string, error) {
	if lng < 0 || lng > 15 || lat < 0 || lat > 15 {
		return "", griderrors.InvalidArgumentf("hex-pair indices out of range: lng=%d lat=%d", lng, lat)
	}
	return fmt.Sprintf("%X%X", lng, lat), nil
}
