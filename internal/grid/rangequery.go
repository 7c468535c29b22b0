package grid

import (
	"math"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog"

	"github.com/mohammed-shakir/h3-spatial-cache/internal/griderrors"
)

// Strategy selects how Find2D enumerates candidate cells before testing
// them against the query geometry (§12 supplemented-features).
type Strategy int

const (
	// StrategyRefine recursively refines from level-1 candidates, pruning
	// any branch whose own rectangle misses the geometry. Grounded on
	// BeiDouGrid2DRangeQuery.findGridCodesInRange.
	StrategyRefine Strategy = iota
	// StrategySweep walks the geometry's bounding box directly at the
	// target level. Grounded on
	// BeiDouGrid2DRangeQuery.find2DGridCodesInRange; cheaper for small
	// boxes at fine levels, wasteful for coarse levels over wide boxes.
	StrategySweep
)

// poolSize bounds the number of goroutines concurrently testing candidate
// cells against the query geometry during a single Find2D/Find3D call
// (§5's bounded concurrency; grounded on bitalostored's ants.Pool use in
// proxy/router/router.go). SetPoolSize lets the server apply its
// RANGE_WORKER_POOL_SIZE config at startup; the default matches an
// otherwise-unconfigured CLI invocation.
var poolSize = 64

// SetPoolSize adjusts the worker pool bound used by every subsequent
// Find2D/Find3D call. n<=0 is ignored.
func SetPoolSize(n int) {
	if n > 0 {
		poolSize = n
	}
}

// rangeLog is where Find2D/Find3D's per-candidate reject paths write at
// debug level (§7): a candidate failing to encode/decode is not a query
// failure, just a cell that gets dropped. Defaults to a no-op logger;
// SetLogger installs the server's own zerolog.Logger.
var rangeLog = zerolog.Nop()

func SetLogger(l zerolog.Logger) {
	rangeLog = l
}

// CellRect returns the rectangle a 2D code identifies.
func CellRect(code string) (Rect, error) {
	p, level, err := Decode2D(code)
	if err != nil {
		return Rect{}, err
	}
	lonF, latF, err := cellSizeFloat(level)
	if err != nil {
		return Rect{}, err
	}
	hemi, err := HemisphereFromCode(code)
	if err != nil {
		return Rect{}, err
	}
	r := Rect{MinLon: p.Longitude, MinLat: p.Latitude, MaxLon: p.Longitude + lonF, MaxLat: p.Latitude + latF}
	// Decode2D's corner is the one nearest the origin, so west and south
	// cells extend from it toward negative longitude/latitude.
	if !hemi.IsEast() {
		r.MinLon, r.MaxLon = p.Longitude-lonF, p.Longitude
	}
	if hemi.LatChar() == 'S' {
		r.MinLat, r.MaxLat = p.Latitude-latF, p.Latitude
	}
	return r, nil
}

func cellSizeFloat(level Level) (lon, lat float64, err error) {
	lonD, latD, err := CellSizeDegrees(level)
	if err != nil {
		return 0, 0, err
	}
	lonF, _ := lonD.Float64()
	latF, _ := latD.Float64()
	return lonF, latF, nil
}

// Find2D returns every level cell intersecting geom.
func Find2D(geom Geometry, level Level, strategy Strategy) ([]string, error) {
	if err := checkLevel(level); err != nil {
		return nil, err
	}
	switch strategy {
	case StrategySweep:
		return sweepFind2D(geom, level)
	default:
		return refineFind2D(geom, level)
	}
}

func sweepFind2D(geom Geometry, level Level) ([]string, error) {
	bounds := geom.Bounds()
	lonF, latF, err := cellSizeFloat(level)
	if err != nil {
		return nil, err
	}
	if lonF <= 0 || latF <= 0 {
		return nil, griderrors.InvalidArgumentf("level %d has a non-positive cell size", level)
	}

	var candidates []string
	seen := map[string]bool{}
	for lat := bounds.MinLat; lat < bounds.MaxLat+latF; lat += latF {
		for lon := bounds.MinLon; lon < bounds.MaxLon+lonF; lon += lonF {
			c, err := Encode2D(GeoPoint{Longitude: math.Min(lon, bounds.MaxLon), Latitude: math.Min(lat, bounds.MaxLat)}, level)
			if err != nil {
				rangeLog.Debug().Err(err).Float64("lon", lon).Float64("lat", lat).Msg("sweep candidate rejected")
				continue
			}
			if !seen[c] {
				seen[c] = true
				candidates = append(candidates, c)
			}
		}
	}
	return filterIntersecting(candidates, geom)
}

func refineFind2D(geom Geometry, level Level) ([]string, error) {
	bounds := geom.Bounds()
	lonF, latF, err := cellSizeFloat(MinLevel)
	if err != nil {
		return nil, err
	}

	var roots []string
	seen := map[string]bool{}
	for lat := bounds.MinLat; lat < bounds.MaxLat+latF; lat += latF {
		for lon := bounds.MinLon; lon < bounds.MaxLon+lonF; lon += lonF {
			c, err := Encode2D(GeoPoint{Longitude: math.Min(lon, bounds.MaxLon), Latitude: math.Min(lat, bounds.MaxLat)}, MinLevel)
			if err != nil {
				rangeLog.Debug().Err(err).Float64("lon", lon).Float64("lat", lat).Msg("refine root candidate rejected")
				continue
			}
			if !seen[c] {
				seen[c] = true
				roots = append(roots, c)
			}
		}
	}

	var out []string
	for _, root := range roots {
		codes, err := refine(root, MinLevel, level, geom)
		if err != nil {
			rangeLog.Debug().Err(err).Str("code", root).Msg("refine root rejected")
			continue
		}
		out = append(out, codes...)
	}
	return out, nil
}

// refine recursively descends from code (at the given level) toward target,
// discarding any branch whose rectangle does not intersect geom.
func refine(code string, level, target Level, geom Geometry) ([]string, error) {
	rect, err := CellRect(code)
	if err != nil {
		return nil, err
	}
	if !geom.IntersectsRect(rect) {
		return nil, nil
	}
	if level >= target {
		return []string{code}, nil
	}
	children, err := Children(code)
	if err != nil {
		return nil, err
	}
	return filterAndDescend(children, level+1, target, geom)
}

// filterAndDescend runs refine over children concurrently through a bounded
// worker pool, matching the teacher's ants.Pool fan-out shape.
func filterAndDescend(children []string, level, target Level, geom Geometry) ([]string, error) {
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		out []string
	)
	for _, c := range children {
		c := c
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			codes, err := refine(c, level, target, geom)
			if err != nil {
				rangeLog.Debug().Err(err).Str("code", c).Msg("refine candidate rejected")
				return
			}
			if len(codes) == 0 {
				return
			}
			mu.Lock()
			out = append(out, codes...)
			mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
		}
	}
	wg.Wait()
	return out, nil
}

func filterIntersecting(candidates []string, geom Geometry) ([]string, error) {
	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		out []string
	)
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	for _, c := range candidates {
		c := c
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			rect, err := CellRect(c)
			if err != nil {
				rangeLog.Debug().Err(err).Str("code", c).Msg("sweep candidate rejected")
				return
			}
			if !geom.IntersectsRect(rect) {
				return
			}
			mu.Lock()
			out = append(out, c)
			mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
		}
	}
	wg.Wait()
	return out, nil
}

// HeightBand is a [Min,Max) range of ellipsoidal height, metres.
type HeightBand struct{ Min, Max float64 }

// Find3D returns every level 3D cell whose 2D footprint intersects geom and
// whose height slab overlaps band. It pre-filters candidates by the coarse
// linear metre table before applying the authoritative logarithmic slab
// test, mirroring BeiDouGrid3DRangeQuery (§12 supplemented-features).
func Find3D(geom Geometry, level Level, band HeightBand, strategy Strategy) ([]string, error) {
	if band.Min > band.Max {
		return nil, griderrors.InvalidArgumentf("height band [%g,%g) is inverted", band.Min, band.Max)
	}
	flat, err := Find2D(geom, level, strategy)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, code2D := range flat {
		p, _, err := Decode2D(code2D)
		if err != nil {
			rangeLog.Debug().Err(err).Str("code", code2D).Msg("3D candidate rejected")
			continue
		}
		if !linearSlabOverlaps(level, band) {
			continue
		}
		lo, hi := logSlabBounds(level, band)
		for h := lo; h < hi; h++ {
			height := nToHeight(uint32(h), heightSignDigit(band.Min))
			code3D, err := Encode3D(GeoPoint{Longitude: p.Longitude, Latitude: p.Latitude, Height: height}, level)
			if err != nil {
				rangeLog.Debug().Err(err).Str("code2d", code2D).Float64("height", height).Msg("3D candidate rejected")
				continue
			}
			out = append(out, code3D)
		}
	}
	return out, nil
}

// linearSlabOverlaps is the fast pre-filter: does the band overlap the
// level's coarse metre cell height at all, ignoring sign.
func linearSlabOverlaps(level Level, band HeightBand) bool {
	cell := gridSizes3D[level]
	if cell <= 0 {
		return true
	}
	return band.Max-band.Min >= 0 && !(band.Max < -cell && band.Min < -cell) && !(band.Min > cell && band.Max > cell)
}

// logSlabBounds converts a height band into the [lo,hi) range of the target
// level's height-fragment values it spans, via the logarithmic mapping.
func logSlabBounds(level Level, band HeightBand) (lo, hi int) {
	nMin, _ := heightToN(band.Min)
	nMax, _ := heightToN(band.Max)
	loV, hiV := heightFragmentValue(nMin, level), heightFragmentValue(nMax, level)
	if loV > hiV {
		loV, hiV = hiV, loV
	}
	return loV, hiV + 1
}
