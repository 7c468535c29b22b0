package grid

import (
	"math"

	"github.com/mohammed-shakir/h3-spatial-cache/internal/griderrors"
)

// GeoPoint is a geographic position: longitude and latitude in decimal
// degrees, and an optional ellipsoidal height in metres used by the 3D
// codec. Zero value is the origin (0,0,0), which lies in the NE hemisphere.
type GeoPoint struct {
	Longitude float64
	Latitude  float64
	Height    float64
}

// Validate enforces the GeoPoint invariants from the data model: longitude
// in [-180,180], latitude in [-90,90], both finite.
func (p GeoPoint) Validate() error {
	if math.IsNaN(p.Longitude) || math.IsInf(p.Longitude, 0) || p.Longitude < -180 || p.Longitude > 180 {
		return griderrors.InvalidArgumentf("longitude out of range [-180,180]: %v", p.Longitude)
	}
	if math.IsNaN(p.Latitude) || math.IsInf(p.Latitude, 0) || p.Latitude < -90 || p.Latitude > 90 {
		return griderrors.InvalidArgumentf("latitude out of range [-90,90]: %v", p.Latitude)
	}
	if math.IsNaN(p.Height) || math.IsInf(p.Height, 0) {
		return griderrors.InvalidArgumentf("height must be finite: %v", p.Height)
	}
	return nil
}

// IsPolar reports whether p falls in the band this standard leaves
// unimplemented (|lat| >= 88 degrees).
func (p GeoPoint) IsPolar() bool {
	return math.Abs(p.Latitude) >= 88
}
