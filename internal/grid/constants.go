// Package grid implements the GB/T 39409-2020 BeiDou Grid Location Code: a
// ten-level hierarchical encoding of rectangular cells (2D) and boxes (3D)
// over the Earth's surface.
package grid

import (
	"github.com/shopspring/decimal"

	"github.com/mohammed-shakir/h3-spatial-cache/internal/griderrors"
)

// Level is a refinement depth in [1,10]; higher is finer.
type Level int

const (
	MinLevel Level = 1
	MaxLevel Level = 10
)

// Valid reports whether l is a usable refinement depth.
func (l Level) Valid() bool { return l >= MinLevel && l <= MaxLevel }

func checkLevel(l Level) error {
	if !l.Valid() {
		return griderrors.InvalidArgumentf("level must be in [1,10], got %d", l)
	}
	return nil
}

// EarthRadius is the geocentric reference radius (metres) used by the
// height mapping in height.go.
const EarthRadius = 6378137.0

// EquatorCircumference is used only for the coarse metric cell widths in
// gridSizes3D, a fast pre-filter for 3D range queries (§3, §4.7).
const EquatorCircumference = 40075000.0

type degreeSize struct {
	Lon decimal.Decimal
	Lat decimal.Decimal
}

type division struct {
	Lon int
	Lat int
}

type elevationField struct {
	Bits  int
	Radix int
}

type bitRange struct {
	Lo int
	Hi int
}

// divRound10 divides two small positive integers with 10 fractional digits
// of precision, rounding down (FLOOR) at that scale, needed because repeated
// division by non-terminating decimals like 10/60 would otherwise accumulate
// multi-cell drift by level 7 (§9). Rounding down keeps every stored size at
// or below the exact one, so a decoded cell corner re-encodes into its own
// cell rather than the one before it.
func divRound10(num, den int64) decimal.Decimal {
	return decimal.NewFromInt(num).DivRound(decimal.NewFromInt(den), 16).Truncate(10)
}

// gridSizesDegrees holds the exact-decimal cell size per level; index 0 is
// an unused placeholder so level numbers index directly.
var gridSizesDegrees = [11]degreeSize{
	{},
	{Lon: decimal.NewFromInt(6), Lat: decimal.NewFromInt(4)},
	{Lon: decimal.NewFromFloat(0.5), Lat: decimal.NewFromFloat(0.5)},
	{Lon: decimal.NewFromFloat(0.25), Lat: divRound10(10, 60)},
	{Lon: divRound10(1, 60), Lat: divRound10(1, 60)},
	{Lon: divRound10(4, 3600), Lat: divRound10(4, 3600)},
	{Lon: divRound10(2, 3600), Lat: divRound10(2, 3600)},
	{Lon: divRound10(1, 4*3600), Lat: divRound10(1, 4*3600)},
	{Lon: divRound10(1, 32*3600), Lat: divRound10(1, 32*3600)},
	{Lon: divRound10(1, 256*3600), Lat: divRound10(1, 256*3600)},
	{Lon: divRound10(1, 2048*3600), Lat: divRound10(1, 2048*3600)},
}

// gridSizesSeconds is the same table in arc-seconds, stored as float64.
// Every value here is either a small integer or a negative power of two, so
// double accumulation across levels is exact (§9).
var gridSizesSeconds = [11][2]float64{
	{},
	{21600.0, 14400.0},
	{1800.0, 1800.0},
	{900.0, 600.0},
	{60.0, 60.0},
	{4.0, 4.0},
	{2.0, 2.0},
	{0.25, 0.25},
	{0.03125, 0.03125},
	{0.00390625, 0.00390625},
	{0.00048828125, 0.00048828125},
}

var gridDivisions = [11]division{
	{},
	{Lon: 60, Lat: 22},
	{Lon: 12, Lat: 8},
	{Lon: 2, Lat: 3},
	{Lon: 15, Lat: 10},
	{Lon: 15, Lat: 15},
	{Lon: 2, Lat: 2},
	{Lon: 8, Lat: 8},
	{Lon: 8, Lat: 8},
	{Lon: 8, Lat: 8},
	{Lon: 8, Lat: 8},
}

// code2DLength is the cumulative 2D code length through level i, including
// the leading hemisphere character (§3).
var code2DLength = [11]int{1, 4, 6, 7, 9, 11, 12, 14, 16, 18, 20}

// elevationEncoding gives the bit width and output radix of the height
// fragment at each level (§4.5).
var elevationEncoding = [11]elevationField{
	{},
	{Bits: 6, Radix: 10},
	{Bits: 3, Radix: 8},
	{Bits: 1, Radix: 2},
	{Bits: 4, Radix: 16},
	{Bits: 4, Radix: 16},
	{Bits: 1, Radix: 2},
	{Bits: 3, Radix: 8},
	{Bits: 3, Radix: 8},
	{Bits: 3, Radix: 8},
	{Bits: 3, Radix: 8},
}

// heightBitRanges gives the 1-indexed (low->high) bit range each level's
// height fragment occupies within the 32-bit magnitude buffer (§3, Annex C
// of the standard). heightSignBitRange is bit 32, the MSB.
var heightBitRanges = [11]bitRange{
	{},
	{Lo: 26, Hi: 31},
	{Lo: 23, Hi: 25},
	{Lo: 22, Hi: 22},
	{Lo: 18, Hi: 21},
	{Lo: 14, Hi: 17},
	{Lo: 13, Hi: 13},
	{Lo: 10, Hi: 12},
	{Lo: 7, Hi: 9},
	{Lo: 4, Hi: 6},
	{Lo: 1, Hi: 3},
}

var heightSignBitRange = bitRange{Lo: 32, Hi: 32}

// gridSizes3D gives each level's cell width as a coarse metre approximation
// derived from the equatorial circumference. It is used only as a fast
// pre-filter ahead of the logarithmic slab test in 3D range queries — the
// authoritative vertical geometry is always the logarithmic mapping (§3,
// §12 supplemented-features).
var gridSizes3D = computeGridSizes3D()

func computeGridSizes3D() [11]float64 {
	var out [11]float64
	for i := 1; i <= 10; i++ {
		lat, _ := gridSizesDegrees[i].Lat.Float64()
		out[i] = EquatorCircumference / 360.0 * lat
	}
	return out
}

// CellSizeDegrees returns the exact-decimal longitude/latitude size of a
// cell at level l.
func CellSizeDegrees(l Level) (decimal.Decimal, decimal.Decimal, error) {
	if err := checkLevel(l); err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	s := gridSizesDegrees[l]
	return s.Lon, s.Lat, nil
}

// CellSizeSeconds returns the longitude/latitude cell size in arc-seconds.
func CellSizeSeconds(l Level) (lon, lat float64, err error) {
	if err := checkLevel(l); err != nil {
		return 0, 0, err
	}
	s := gridSizesSeconds[l]
	return s[0], s[1], nil
}

// FanOut returns the longitude x latitude child count of level l.
func FanOut(l Level) (lon, lat int, err error) {
	if err := checkLevel(l); err != nil {
		return 0, 0, err
	}
	d := gridDivisions[l]
	return d.Lon, d.Lat, nil
}

// CodeLength2D returns the total 2D code length at level l, hemisphere
// character included.
func CodeLength2D(l Level) (int, error) {
	if err := checkLevel(l); err != nil {
		return 0, err
	}
	return code2DLength[l], nil
}

// LevelFromCodeLength2D inverts CodeLength2D, returning InvalidCode if no
// level has that exact length.
func LevelFromCodeLength2D(n int) (Level, error) {
	for l := MinLevel; l <= MaxLevel; l++ {
		if code2DLength[l] == n {
			return l, nil
		}
	}
	return 0, griderrors.InvalidCodef("no level has 2D code length %d", n)
}

// CodeLength3D returns the total 3D code length at level l: hemisphere
// character, height sign digit, then each level's 2D fragment immediately
// followed by its height fragment (§3).
func CodeLength3D(l Level) (int, error) {
	if err := checkLevel(l); err != nil {
		return 0, err
	}
	total := 2
	for i := MinLevel; i <= l; i++ {
		total += code2DLength[i] - code2DLength[i-1]
		total += heightFragmentLen(i)
	}
	return total, nil
}

// LevelFromCodeLength3D inverts CodeLength3D.
func LevelFromCodeLength3D(n int) (Level, error) {
	for l := MinLevel; l <= MaxLevel; l++ {
		got, _ := CodeLength3D(l)
		if got == n {
			return l, nil
		}
	}
	return 0, griderrors.InvalidCodef("no level has 3D code length %d", n)
}

func heightFragmentLen(l Level) int {
	if l == 1 {
		return 2
	}
	return 1
}
