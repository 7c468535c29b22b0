package grid

import (
	"github.com/mohammed-shakir/h3-spatial-cache/internal/griderrors"
)

// Children enumerates every level+1 cell nested inside the cell identified
// by code, by decoding the parent's origin-side corner (see Decode2D) and
// re-encoding the
// centre of each child in the parent's fan-out (grounded on
// BeiDouGrid2DRangeQuery.generateChildGrids2D, §12).
func Children(code string) ([]string, error) {
	parent, level, err := Decode2D(code)
	if err != nil {
		return nil, err
	}
	if level >= MaxLevel {
		return nil, griderrors.InvalidArgumentf("level %d has no finer children", level)
	}
	child := level + 1
	fanLng, fanLat, err := FanOut(child)
	if err != nil {
		return nil, err
	}
	childSizeLon, childSizeLat := gridSizesDegrees[child].Lon, gridSizesDegrees[child].Lat
	childLonF, _ := childSizeLon.Float64()
	childLatF, _ := childSizeLat.Float64()

	signLon, signLat := 1.0, 1.0
	if parent.Longitude < 0 {
		signLon = -1.0
	}
	if parent.Latitude < 0 {
		signLat = -1.0
	}

	codes := make([]string, 0, fanLng*fanLat)
	for j := 0; j < fanLat; j++ {
		for i := 0; i < fanLng; i++ {
			centerLon := parent.Longitude + signLon*(float64(i)+0.5)*childLonF
			centerLat := parent.Latitude + signLat*(float64(j)+0.5)*childLatF
			c, err := Encode2D(GeoPoint{Longitude: centerLon, Latitude: centerLat}, child)
			if err != nil {
				continue
			}
			codes = append(codes, c)
		}
	}
	return codes, nil
}

// Children3D is the height-aware variant of Children: it also iterates the
// vertical slabs nested inside the parent's height band at level+1.
func Children3D(code string) ([]string, error) {
	parent, level, err := Decode3D(code)
	if err != nil {
		return nil, err
	}
	if level >= MaxLevel {
		return nil, griderrors.InvalidArgumentf("level %d has no finer children", level)
	}
	child := level + 1

	flat2D, err := Children(extract2DOrSelf(code, level))
	if err != nil {
		return nil, err
	}

	// parent.Height is itself the bottom of its slab, so n's bits below the
	// child level's field are already zero; children only vary that field.
	n, _ := heightToN(parent.Height)
	slabBits := elevationEncoding[child].Bits
	slabCount := 1 << slabBits
	signDigit := heightSignDigit(parent.Height)

	codes := make([]string, 0, len(flat2D)*slabCount)
	for _, c2d := range flat2D {
		p2d, _, err := Decode2D(c2d)
		if err != nil {
			continue
		}
		for s := 0; s < slabCount; s++ {
			childN := setHeightFragment(n, child, s)
			h := nToHeight(childN, signDigit)
			full, err := Encode3D(GeoPoint{Longitude: p2d.Longitude, Latitude: p2d.Latitude, Height: h}, child)
			if err != nil {
				continue
			}
			codes = append(codes, full)
		}
	}
	return codes, nil
}

func heightSignDigit(h float64) byte {
	if h < 0 {
		return '1'
	}
	return '0'
}

func extract2DOrSelf(code3D string, level Level) string {
	s, err := Extract2DCode(code3D, level)
	if err != nil {
		return ""
	}
	return s
}
