package grid

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mohammed-shakir/h3-spatial-cache/internal/griderrors"
)

// Encode3D produces the 3D grid code for p at the given level: a 2D
// fragment immediately followed by a height fragment at every level, with a
// leading hemisphere character and height sign digit (§3, §4.5).
func Encode3D(p GeoPoint, level Level) (string, error) {
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
	n, signDigit := heightToN(p.Height)

	var b strings.Builder
	b.WriteByte(hemi.LatChar())
	b.WriteByte(signDigit)

	lon := decimal.NewFromFloat(p.Longitude).Abs()
	lat := decimal.NewFromFloat(p.Latitude).Abs()

	for l := MinLevel; l <= level; l++ {
		size := gridSizesDegrees[l]
		lngCount := lon.Div(size.Lon).Floor()
		latCount := lat.Div(size.Lat).Floor()
		lngIdx := int(lngCount.IntPart())
		latIdx := int(latCount.IntPart())

		frag, err := encodeFragment2D(l, hemi, lngIdx, latIdx)
		if err != nil {
			return "", err
		}
		b.WriteString(frag)
		b.WriteString(formatHeightFragment(l, heightFragmentValue(n, l)))

		lon = lon.Sub(lngCount.Mul(size.Lon))
		lat = lat.Sub(latCount.Mul(size.Lat))
	}
	return b.String(), nil
}
